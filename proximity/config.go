package proximity

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrConfig is wrapped by every configuration error.
	ErrConfig = errors.New("proximity: invalid config")

	// ErrBounds is wrapped by errors about malformed bounds.
	ErrBounds = fmt.Errorf("%w: bounds", ErrConfig)
)

// CapMode selects how the per-particle connection cap is enforced.
type CapMode int

const (
	// CapStrict checks both members of every candidate pair,
	// so no particle ends a tick with more than MaxConnections edges.
	CapStrict CapMode = iota

	// CapFirstOnce checks the first member of a pair only once, before its
	// candidates are scanned. A particle can then collect more than
	// MaxConnections edges in the pass where it is the first member.
	CapFirstOnce
)

// String returns the name used in config files.
func (m CapMode) String() string {
	switch m {
	case CapStrict:
		return "strict"
	case CapFirstOnce:
		return "first-once"
	}
	return fmt.Sprintf("CapMode(%d)", int(m))
}

// ParseCapMode is the inverse of CapMode.String. The empty string is CapStrict.
func ParseCapMode(s string) (CapMode, error) {
	switch s {
	case "", "strict":
		return CapStrict, nil
	case "first-once":
		return CapFirstOnce, nil
	}
	return 0, fmt.Errorf("%w: unknown cap mode %q", ErrConfig, s)
}

// Config holds the parameters of a simulator. It is copied at construction
// and never changes afterwards.
type Config struct {
	Count  int    // number of particles
	Bounds Bounds // box the particles bounce in

	// MinDistance is the distance under which two particles are connected.
	// Zero or negative values never connect anything.
	MinDistance float64

	// The connection cap applies only when LimitConnections is set
	// and MaxConnections is positive.
	LimitConnections bool
	MaxConnections   int
	Cap              CapMode

	// Seed of the random source drawing the initial state.
	Seed uint64
}

// Validate reports the first problem that would stop c from being simulated.
func (c Config) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("%w: negative particle count %d", ErrConfig, c.Count)
	}
	if c.Bounds == nil {
		return fmt.Errorf("%w: no bounds", ErrBounds)
	}
	if err := c.Bounds.Validate(); err != nil {
		return err
	}
	if math.IsNaN(c.MinDistance) {
		return fmt.Errorf("%w: min distance is NaN", ErrConfig)
	}
	if c.MaxConnections < 0 {
		return fmt.Errorf("%w: negative max connections %d", ErrConfig, c.MaxConnections)
	}
	if c.Cap != CapStrict && c.Cap != CapFirstOnce {
		return fmt.Errorf("%w: unknown cap mode %d", ErrConfig, int(c.Cap))
	}
	return nil
}

// capped reports whether the connection cap is enforced.
func (c Config) capped() bool {
	return c.LimitConnections && c.MaxConnections > 0
}
