package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "Serpent Offering", cfg.Pool.Name)
	assert.Equal(t, 3, cfg.Pool.Capacity)
	assert.Equal(t, 30.0, cfg.Pool.RegenInterval)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Empty(t, cfg.Log.File)
	assert.Equal(t, 3*time.Second, cfg.View.StatusTTL)
}

func TestLoadReadsConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, writeConfig(home, `
[charges]
name = "Rattling Coil"
capacity = 2
regen_interval = 45.5

[log]
level = "debug"
file = "~/.tlv/tlv.log"

[view]
status_ttl = "5s"
`))

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "Rattling Coil", cfg.Pool.Name)
	assert.Equal(t, 2, cfg.Pool.Capacity)
	assert.Equal(t, 45.5, cfg.Pool.RegenInterval)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, filepath.Join(home, ".tlv", "tlv.log"), cfg.Log.File)
	assert.Equal(t, 5*time.Second, cfg.View.StatusTTL)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TLV_CHARGES_CAPACITY", "5")
	require.NoError(t, writeConfig(home, "[charges]\ncapacity = 2\n"))

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Pool.Capacity)
}

func TestLoadRejectsInvalidPool(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, writeConfig(home, "[charges]\ncapacity = 0\n"))

	_, err := Load(viper.New())
	require.Error(t, err)
	assert.ErrorContains(t, err, "validate charges config")
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, writeConfig(home, "[charges\ncapacity = "))

	_, err := Load(viper.New())
	require.Error(t, err)
	assert.ErrorContains(t, err, "read config file")
}

func writeConfig(home, body string) error {
	dir := filepath.Join(home, configDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.toml"), []byte(body), 0o644)
}
