// Package config holds the simulator configuration and its JSON form.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sarchlab/mipssim/cache"
)

// Trace output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// SimConfig holds run-time options for a simulation.
type SimConfig struct {
	// MaxCycles stops the run after this many cycles. 0 means no limit;
	// a program that never issues the exit syscall then runs forever.
	MaxCycles uint64 `json:"max_cycles"`

	// TraceFormat selects the trace sink: "text" or "json".
	TraceFormat string `json:"trace_format"`

	// ProfileCaches enables the instruction/data cache profiler.
	ProfileCaches bool `json:"profile_caches"`

	// ICache is the instruction cache geometry used when profiling.
	ICache cache.Config `json:"icache"`

	// DCache is the data cache geometry used when profiling.
	DCache cache.Config `json:"dcache"`
}

// DefaultSimConfig returns the configuration used when no file is given.
func DefaultSimConfig() *SimConfig {
	return &SimConfig{
		MaxCycles:     0,
		TraceFormat:   FormatText,
		ProfileCaches: false,
		ICache:        cache.DefaultICacheConfig(),
		DCache:        cache.DefaultDCacheConfig(),
	}
}

// LoadConfig loads a SimConfig from a JSON file. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (*SimConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultSimConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a SimConfig to a JSON file.
func (c *SimConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the trace format and, when profiling, the cache geometry.
func (c *SimConfig) Validate() error {
	if c.TraceFormat != FormatText && c.TraceFormat != FormatJSON {
		return fmt.Errorf("trace_format must be %q or %q, got %q",
			FormatText, FormatJSON, c.TraceFormat)
	}
	if !c.ProfileCaches {
		return nil
	}
	if err := c.ICache.Validate(); err != nil {
		return fmt.Errorf("icache: %w", err)
	}
	if err := c.DCache.Validate(); err != nil {
		return fmt.Errorf("dcache: %w", err)
	}
	return nil
}

// Clone returns a copy of the SimConfig.
func (c *SimConfig) Clone() *SimConfig {
	clone := *c
	return &clone
}
