// Package config holds the settings of a visualizer run. Values come from
// defaults, an optional YAML file and command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"strings"

	"lafont/internal/engine"
	"lafont/internal/logging"
	"lafont/internal/physics"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config represents the parameters of a run.
type Config struct {
	Program string `yaml:"program" mapstructure:"program"`
	// Params are passed to the program factory, e.g. depth or agents.
	Params map[string]string `yaml:"params" mapstructure:"params"`
	Seed   int64             `yaml:"seed" mapstructure:"seed"`

	Skip      int    `yaml:"skip" mapstructure:"skip"`
	ShowEdges bool   `yaml:"show_edges" mapstructure:"show_edges"`
	Strategy  string `yaml:"strategy" mapstructure:"strategy"`
	// CheckNet validates the whole net after every rewrite.
	CheckNet bool `yaml:"validate" mapstructure:"validate"`

	TPS      int  `yaml:"tps" mapstructure:"tps"`
	Width    int  `yaml:"width" mapstructure:"width"`
	Height   int  `yaml:"height" mapstructure:"height"`
	Headless bool `yaml:"headless" mapstructure:"headless"`
	// Frames bounds a headless run. Zero runs until interrupted.
	Frames int `yaml:"frames" mapstructure:"frames"`

	LogLevel    string `yaml:"log_level" mapstructure:"log_level"`
	LogJSON     string `yaml:"log_json" mapstructure:"log_json"`
	MetricsAddr string `yaml:"metrics_addr" mapstructure:"metrics_addr"`

	Physics physics.Config `yaml:"physics" mapstructure:"physics"`
}

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Program:  "lafont",
		Seed:     42,
		Skip:     1,
		Strategy: engine.StrategyPriority.String(),
		TPS:      30,
		Width:    960,
		Height:   720,
		LogLevel: "info",
		Physics:  physics.DefaultConfig(),
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&c.Program, "program", c.Program, "net to reduce (see the programs command)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for random programs and layout jitter")
	fs.IntVarP(&c.Skip, "skip", "n", c.Skip, "rewrites per frame")
	fs.BoolVarP(&c.ShowEdges, "edges", "v", c.ShowEdges, "draw wires between agents")
	fs.StringVar(&c.Strategy, "strategy", c.Strategy, "active pair order: priority, lowest or highest")
	fs.BoolVar(&c.CheckNet, "validate", c.CheckNet, "check the whole net after every rewrite")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")
	fs.IntVar(&c.Width, "width", c.Width, "window width")
	fs.IntVar(&c.Height, "height", c.Height, "window height")
	fs.BoolVar(&c.Headless, "headless", c.Headless, "run without a window and log frames")
	fs.IntVar(&c.Frames, "frames", c.Frames, "frames to run headless, 0 for no limit")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.StringVar(&c.LogJSON, "log-json", c.LogJSON, "also write JSON logs to this file")
	fs.StringVar(&c.MetricsAddr, "metrics-addr", c.MetricsAddr, "serve Prometheus metrics on this address")
	fs.IntVar(&c.Physics.Substeps, "substeps", c.Physics.Substeps, "layout integration steps per frame")
	fs.IntVar(&c.Physics.Workers, "workers", c.Physics.Workers, "goroutines computing layout forces")
	fs.StringToStringVar(&c.Params, "param", c.Params, "program option, e.g. --param depth=4")
}

// LoadFile decodes the YAML file at path over c. Flags of fs that were set on
// the command line keep their values; --param entries are merged with the
// file's params and win on equal keys.
func (c *Config) LoadFile(path string, fs *pflag.FlagSet) error {
	var (
		changed = map[string]string{}
		params  map[string]string
	)
	if fs != nil {
		fs.Visit(func(f *pflag.Flag) {
			if f.Value.Type() == "stringToString" {
				params = maps.Clone(c.Params)
				return
			}
			changed[f.Name] = f.Value.String()
		})
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := c.decode(raw); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}

	for name, v := range changed {
		if err := fs.Set(name, v); err != nil {
			return err
		}
	}
	if len(params) > 0 {
		if c.Params == nil {
			c.Params = make(map[string]string, len(params))
		}
		maps.Copy(c.Params, params)
	}
	return nil
}

// FromMap overrides fields from flat key/value pairs. Keys of the physics
// section are written as "physics.spring".
func (c *Config) FromMap(m map[string]string) error {
	raw := map[string]any{}
	nested := map[string]any{}
	for k, v := range m {
		if sub, ok := strings.CutPrefix(k, "physics."); ok {
			nested[sub] = v
			continue
		}
		raw[k] = v
	}
	if len(nested) > 0 {
		raw["physics"] = nested
	}
	return c.decode(raw)
}

func (c *Config) decode(raw map[string]any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           c,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Program == "" {
		errs = append(errs, errors.New("program must be set"))
	}
	if c.Skip < 1 {
		errs = append(errs, fmt.Errorf("skip must be at least 1, got %d", c.Skip))
	}
	if _, err := engine.ParseStrategy(c.Strategy); err != nil {
		errs = append(errs, err)
	}
	if c.TPS < 0 {
		errs = append(errs, fmt.Errorf("tps must not be negative, got %d", c.TPS))
	}
	if c.Frames < 0 {
		errs = append(errs, fmt.Errorf("frames must not be negative, got %d", c.Frames))
	}
	if !c.Headless && (c.Width <= 0 || c.Height <= 0) {
		errs = append(errs, fmt.Errorf("window size %dx%d is empty", c.Width, c.Height))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
