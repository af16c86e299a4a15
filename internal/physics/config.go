package physics

// Config holds the force and integration constants of the layout.
type Config struct {
	// DT is the integration step used when Relax is called with dt <= 0.
	DT float64 `yaml:"dt" mapstructure:"dt"`
	// Substeps is the number of integration steps per Relax call.
	Substeps int     `yaml:"substeps" mapstructure:"substeps"`
	Mass     float64 `yaml:"mass" mapstructure:"mass"`
	// Damping multiplies every velocity once per substep.
	Damping float64 `yaml:"damping" mapstructure:"damping"`

	Spring     float64 `yaml:"spring" mapstructure:"spring"`
	RestLength float64 `yaml:"rest_length" mapstructure:"rest_length"`
	// ActiveRestLength is the rest length of wires joining two principal
	// ports, so that active pairs visibly close in on each other.
	ActiveRestLength float64 `yaml:"active_rest_length" mapstructure:"active_rest_length"`

	Repulsion float64 `yaml:"repulsion" mapstructure:"repulsion"`
	// MinDistance clamps the repulsion distance from below.
	MinDistance float64 `yaml:"min_distance" mapstructure:"min_distance"`
	// Cutoff disables repulsion beyond this distance. Zero means no cutoff.
	Cutoff  float64 `yaml:"cutoff" mapstructure:"cutoff"`
	Gravity float64 `yaml:"gravity" mapstructure:"gravity"`

	// Jitter is the radius of the random offset given to new bodies.
	Jitter float64 `yaml:"jitter" mapstructure:"jitter"`
	// Workers > 1 computes forces on that many goroutines.
	Workers int   `yaml:"workers" mapstructure:"workers"`
	Seed    int64 `yaml:"seed" mapstructure:"seed"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		DT:               0.1,
		Substeps:         4,
		Mass:             1,
		Damping:          0.85,
		Spring:           0.6,
		RestLength:       2,
		ActiveRestLength: 0.6,
		Repulsion:        2,
		MinDistance:      0.3,
		Cutoff:           12,
		Gravity:          0.02,
		Jitter:           0.5,
		Workers:          1,
		Seed:             1,
	}
}

// sanitized replaces values that would make the integration blow up.
func (c Config) sanitized() Config {
	d := DefaultConfig()
	if c.DT <= 0 {
		c.DT = d.DT
	}
	if c.Substeps < 1 {
		c.Substeps = 1
	}
	if c.Mass <= 0 {
		c.Mass = d.Mass
	}
	if c.Damping <= 0 || c.Damping > 1 {
		c.Damping = d.Damping
	}
	if c.MinDistance <= 0 {
		c.MinDistance = d.MinDistance
	}
	if c.Cutoff < 0 {
		c.Cutoff = 0
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	return c
}
