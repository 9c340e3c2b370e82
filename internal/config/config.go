// Package config loads the replay tool's TOML configuration.
package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/g-m-twostay/probing/Sets/ProbeTable"
	"github.com/g-m-twostay/probing/internal/logutil"
)

type Config struct {
	Table TableConfig       `toml:"table"`
	Log   logutil.LogConfig `toml:"log"`
	Trace TraceConfig       `toml:"trace"`
}

// TableConfig holds the constructor arguments of the replayed table.
type TableConfig struct {
	Capacity  int     `toml:"capacity"`
	Threshold float64 `toml:"threshold"`
}

type TraceConfig struct {
	Verify     bool `toml:"verify"`      //mirror every operation on a reference multiset.
	DumpSorted bool `toml:"dump-sorted"` //dump prints values in ascending order instead of slot order.
}

func Default() Config {
	return Config{
		Table: TableConfig{Capacity: ProbeTable.DefaultCapacity, Threshold: ProbeTable.DefaultThreshold},
		Log:   logutil.DefaultLogConfig(),
		Trace: TraceConfig{Verify: true},
	}
}

// Load decodes the file at path over Default. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the table would silently replace.
func (c *Config) Validate() error {
	if c.Table.Capacity <= 0 {
		return fmt.Errorf("table capacity must be positive, got %d", c.Table.Capacity)
	}
	if math.IsNaN(c.Table.Threshold) || c.Table.Threshold <= 0 {
		return fmt.Errorf("table threshold must be positive, got %v", c.Table.Threshold)
	}
	return c.Log.Validate()
}
