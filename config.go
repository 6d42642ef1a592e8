package dramsim

import "github.com/behrlich/go-dramsim/internal/config"

// Config is every knob a simulation run can set, loaded from TOML or
// built up field by field from DefaultConfig. Aliased from
// internal/config so cmd/dramsim and embedding callers share one type.
type Config = config.Config

// DefaultConfig returns a runnable single-channel DDR3 baseline.
func DefaultConfig() Config { return config.DefaultConfig() }

// LoadConfig decodes a TOML file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return Config{}, WrapError("LoadConfig", err)
	}
	return cfg, nil
}
