// Package config reads and writes the plexus run configuration.
//
// Files are TOML, or YAML when the name ends in .yaml or .yml.
// Keys left out keep their default value; unknown keys are errors.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/olivierh59500/plexus-go/proximity"
)

// Config holds the parameters of a plexus run.
type Config struct {
	// Output is the path of a headless JSON lines recording,
	// "-" for stdout, or empty for the interactive viewer.
	Output string `toml:"output" yaml:"output"`
	Steps  int    `toml:"steps" yaml:"steps"` // ticks to record (headless only)
	Seed   uint64 `toml:"seed" yaml:"seed"`   // 0 seeds from the clock

	// Swarm
	ParticleCount int       `toml:"particle_count" yaml:"particle_count"`
	HalfExtent    float64   `toml:"half_extent" yaml:"half_extent"` // cube half-size, or x half-size with segments
	Segments      []Segment `toml:"segments,omitempty" yaml:"segments,omitempty"`

	// Connections
	MinDistance      float64 `toml:"min_distance" yaml:"min_distance"`
	LimitConnections bool    `toml:"limit_connections" yaml:"limit_connections"`
	MaxConnections   int     `toml:"max_connections" yaml:"max_connections"`
	CapMode          string  `toml:"cap_mode" yaml:"cap_mode"` // strict or first-once

	// Viewer
	ShowDots  bool `toml:"show_dots" yaml:"show_dots"`
	ShowLines bool `toml:"show_lines" yaml:"show_lines"`
	Width     int  `toml:"width" yaml:"width"`
	Height    int  `toml:"height" yaml:"height"`
	TPS       int  `toml:"tps" yaml:"tps"`
}

// Segment is the y/z half-extent of one x slab of a segmented box.
type Segment struct {
	Y float64 `toml:"y" yaml:"y"`
	Z float64 `toml:"z" yaml:"z"`
}

// Default returns the default parameters.
func Default() *Config {
	return &Config{
		Steps:          1000,
		ParticleCount:  500,
		HalfExtent:     350,
		MinDistance:    150,
		MaxConnections: 20,
		CapMode:        proximity.CapStrict.String(),
		ShowDots:       true,
		ShowLines:      true,
		Width:          1280,
		Height:         720,
		TPS:            60,
	}
}

// Load reads the config file at path on top of the defaults.
func Load(path string) (*Config, error) {
	conf := Default()
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(path, conf)
	default:
		err = decodeTOML(path, conf)
	}
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := conf.Check(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return conf, nil
}

func decodeTOML(path string, conf *Config) error {
	md, err := toml.DecodeFile(path, conf)
	if err != nil {
		return err
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		sort.Strings(names)
		return fmt.Errorf("unknown keys %s", strings.Join(names, ", "))
	}
	return nil
}

func decodeYAML(path string, conf *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(conf); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Save writes c to path, as YAML or TOML depending on the extension.
func (c *Config) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		enc := yaml.NewEncoder(f)
		err = enc.Encode(c)
		if cerr := enc.Close(); err == nil {
			err = cerr
		}
	default:
		err = toml.NewEncoder(f).Encode(c)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// Check validates the parameters that only the command uses.
// Simulation parameters are validated by Simulation.
func (c *Config) Check() error {
	switch {
	case c.Steps < 0:
		return fmt.Errorf("steps must be non-negative, got %d", c.Steps)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height)
	case c.TPS <= 0:
		return fmt.Errorf("tps must be positive, got %d", c.TPS)
	case c.Seed > math.MaxInt64:
		// TOML integers are signed 64-bit, so a larger seed could not be saved
		return fmt.Errorf("seed must be at most %d, got %d", int64(math.MaxInt64), c.Seed)
	}
	_, err := c.Simulation()
	return err
}

// Bounds returns the box described by HalfExtent and Segments.
func (c *Config) Bounds() proximity.Bounds {
	if len(c.Segments) == 0 {
		return proximity.Cube{Half: c.HalfExtent}
	}
	seg := make([]proximity.Extent, len(c.Segments))
	for i, s := range c.Segments {
		seg[i] = proximity.Extent{Y: s.Y, Z: s.Z}
	}
	return proximity.Segmented{HalfX: c.HalfExtent, Segments: seg}
}

// Simulation returns the validated simulator configuration.
func (c *Config) Simulation() (proximity.Config, error) {
	mode, err := proximity.ParseCapMode(c.CapMode)
	if err != nil {
		return proximity.Config{}, err
	}
	pc := proximity.Config{
		Count:            c.ParticleCount,
		Bounds:           c.Bounds(),
		MinDistance:      c.MinDistance,
		LimitConnections: c.LimitConnections,
		MaxConnections:   c.MaxConnections,
		Cap:              mode,
		Seed:             c.Seed,
	}
	return pc, pc.Validate()
}

// NewSimulator builds a simulator from c.
func (c *Config) NewSimulator() (*proximity.Simulator, error) {
	pc, err := c.Simulation()
	if err != nil {
		return nil, err
	}
	return proximity.New(pc)
}
