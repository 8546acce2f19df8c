package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPoolName      = "Serpent Offering"
	DefaultCapacity      = 3
	DefaultRegenInterval = 30.0
)

// ConsumptionEvent records that one charge was spent at Time, nominally to cast Label.
type ConsumptionEvent struct {
	Time  float64
	Label string
}

// PoolConfig is fixed for the lifetime of a session.
type PoolConfig struct {
	Name          string
	Capacity      int
	RegenInterval float64
}

func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		Name:          DefaultPoolName,
		Capacity:      DefaultCapacity,
		RegenInterval: DefaultRegenInterval,
	}
}

func (c PoolConfig) Validate() error {
	if c.Capacity < 1 {
		return fmt.Errorf("capacity must be at least 1, got %d", c.Capacity)
	}
	if math.IsNaN(c.RegenInterval) || math.IsInf(c.RegenInterval, 0) || c.RegenInterval <= 0 {
		return fmt.Errorf("regen interval must be a positive number of seconds, got %v", c.RegenInterval)
	}

	return nil
}

// Regeneration describes the soonest pending charge regeneration as seen from a query time.
type Regeneration struct {
	Label     string
	Progress  float64
	Remaining float64
}

// ParseOffset reads a user supplied offset in seconds. Anything that is not a finite number is 0.
func ParseOffset(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}

	return value
}

// FormatOffset renders an offset the way it is typed back into the offset field.
func FormatOffset(offset float64) string {
	if offset == 0 {
		return "0"
	}

	return strconv.FormatFloat(offset, 'f', -1, 64)
}
