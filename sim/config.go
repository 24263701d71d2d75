package sim

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds the five configuration integers the simulator is tuned
// with: CDB/retire width R, per-type functional-unit counts K0/K1/K2, and
// fetch width F.
type Config struct {
	// R is the CDB broadcast / retire-promotion width. A stored value of
	// 0 is treated as 1 by Normalize.
	R uint64 `json:"r"`
	// K0, K1, K2 are the functional-unit counts for each of the three
	// FU types.
	K0 uint64 `json:"k0"`
	K1 uint64 `json:"k1"`
	K2 uint64 `json:"k2"`
	// F is the fetch width: the maximum instructions fetched per cycle.
	F uint64 `json:"f"`
}

// DefaultConfig returns a modest single-issue-per-type configuration,
// useful as a starting point before overriding from flags or a file.
func DefaultConfig() Config {
	return Config{R: 1, K0: 1, K1: 1, K2: 1, F: 1}
}

// Normalize applies the spec rule that R == 0 is treated as R == 1.
func (c Config) Normalize() Config {
	if c.R == 0 {
		c.R = 1
	}
	return c
}

// RSCapacity returns the reservation-station capacity, 2*(K0+K1+K2).
func (c Config) RSCapacity() uint64 {
	return 2 * (c.K0 + c.K1 + c.K2)
}

// Validate rejects configurations with no functional units of any type,
// which would leave every fetched instruction stalled forever: the
// lookahead projection (sim.FunctionalUnitPool.ProjectFree) can never
// grant a free unit of a type that does not exist in the pool.
func (c Config) Validate() error {
	if c.K0 == 0 && c.K1 == 0 && c.K2 == 0 {
		return fmt.Errorf("sim: config has no functional units of any type (k0=k1=k2=0)")
	}
	return nil
}

// LoadConfig loads a Config from a JSON file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("sim: failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("sim: failed to parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes c to path as indented JSON.
func (c Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("sim: failed to serialize config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("sim: failed to write config file: %w", err)
	}
	return nil
}
