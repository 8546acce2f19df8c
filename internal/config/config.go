package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/timeline-viewer/internal/domain"
	applog "github.com/bnema/timeline-viewer/internal/log"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".tlv"
	envPrefix  = "TLV"

	KeyChargesName     = "charges.name"
	KeyChargesCapacity = "charges.capacity"
	KeyChargesRegen    = "charges.regen_interval"
	KeyLogLevel        = "log.level"
	KeyLogFormat       = "log.format"
	KeyLogFile         = "log.file"
	KeyLogSource       = "log.source"
	KeyStatusTTL       = "view.status_ttl"
)

type Config struct {
	Pool domain.PoolConfig
	Log  LogConfig
	View ViewConfig
}

type LogConfig struct {
	Level  string
	Format string
	File   string
	Source bool
}

type ViewConfig struct {
	StatusTTL time.Duration
}

// Options builds logger options; console output is decided by the caller.
func (c LogConfig) Options() applog.Options {
	return applog.Options{
		Level:     c.Level,
		Format:    c.Format,
		File:      c.File,
		AddSource: c.Source,
	}
}

// Load reads $HOME/.tlv/config.toml when present and applies TLV_* environment overrides.
func Load(cfg *viper.Viper) (Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	defaults := domain.DefaultPoolConfig()
	cfg.SetDefault(KeyChargesName, defaults.Name)
	cfg.SetDefault(KeyChargesCapacity, defaults.Capacity)
	cfg.SetDefault(KeyChargesRegen, defaults.RegenInterval)
	cfg.SetDefault(KeyLogLevel, "warn")
	cfg.SetDefault(KeyLogFormat, applog.FormatConsole)
	cfg.SetDefault(KeyLogFile, "")
	cfg.SetDefault(KeyLogSource, false)
	cfg.SetDefault(KeyStatusTTL, 3*time.Second)

	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	if homeDir, err := os.UserHomeDir(); err == nil {
		cfg.SetConfigName(configName)
		cfg.SetConfigType(configType)
		cfg.AddConfigPath(filepath.Join(homeDir, configDir))

		if err := cfg.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	pool := domain.PoolConfig{
		Name:          cfg.GetString(KeyChargesName),
		Capacity:      cfg.GetInt(KeyChargesCapacity),
		RegenInterval: cfg.GetFloat64(KeyChargesRegen),
	}
	if err := pool.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate charges config: %w", err)
	}

	ttl := cfg.GetDuration(KeyStatusTTL)
	if ttl <= 0 {
		ttl = 3 * time.Second
	}

	return Config{
		Pool: pool,
		Log: LogConfig{
			Level:  cfg.GetString(KeyLogLevel),
			Format: cfg.GetString(KeyLogFormat),
			File:   expandHome(cfg.GetString(KeyLogFile)),
			Source: cfg.GetBool(KeyLogSource),
		},
		View: ViewConfig{StatusTTL: ttl},
	}, nil
}

func expandHome(path string) string {
	path = strings.TrimSpace(path)
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}
