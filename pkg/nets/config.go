package nets

import "strconv"

// Config holds the tunables shared by the built-in programs.
type Config struct {
	// Depth is the height of the constructor trees built by the tree programs.
	Depth int
	// Agents is the number of agents of the random program.
	Agents int
	Seed   int64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{Depth: 3, Agents: 24, Seed: 42}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["depth"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Depth = parsed
		}
	}
	if v, ok := cfg["agents"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Agents = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	return c
}
