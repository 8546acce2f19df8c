package report

import "fmt"

const currentSchemaVersion = 1

type reportSchema struct {
	Version     int         `toml:"version" json:"version"`
	Source      string      `toml:"source" json:"source"`
	GeneratedAt string      `toml:"generated_at" json:"generated_at"`
	Pool        poolSchema  `toml:"pool" json:"pool"`
	Rows        []rowSchema `toml:"rows" json:"rows"`
	Uses        []useSchema `toml:"uses" json:"uses"`
}

func (s *reportSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s reportSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported report schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type poolSchema struct {
	Name          string  `toml:"name" json:"name"`
	Capacity      int     `toml:"capacity" json:"capacity"`
	RegenInterval float64 `toml:"regen_interval" json:"regen_interval"`
}

type rowSchema struct {
	Time    float64      `toml:"time" json:"time"`
	Label   string       `toml:"label" json:"label"`
	Charges int          `toml:"charges" json:"charges"`
	Full    bool         `toml:"full" json:"full"`
	Regen   *regenSchema `toml:"regen,omitempty" json:"regen,omitempty"`
}

type regenSchema struct {
	Label     string  `toml:"label" json:"label"`
	Progress  float64 `toml:"progress" json:"progress"`
	Remaining float64 `toml:"remaining" json:"remaining"`
}

type useSchema struct {
	Time  float64 `toml:"time" json:"time"`
	Label string  `toml:"label" json:"label"`
}
