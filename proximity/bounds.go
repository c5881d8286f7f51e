package proximity

import (
	"fmt"
	"math"
)

// Bounds describes the box particles bounce around in.
// All boxes are centered on the origin.
type Bounds interface {
	// HalfExtents returns the half-extent of each axis for a particle
	// whose x coordinate is x. The X component must not depend on x.
	HalfExtents(x float64) Vec3

	// Validate reports whether the bounds can be simulated.
	Validate() error
}

// Cube is a symmetric cube: every axis shares the same half-extent.
type Cube struct {
	Half float64
}

// HalfExtents implements Bounds.
func (c Cube) HalfExtents(float64) Vec3 {
	return Vec3{c.Half, c.Half, c.Half}
}

// Validate implements Bounds.
func (c Cube) Validate() error {
	if !positive(c.Half) {
		return fmt.Errorf("%w: cube half-extent %g", ErrBounds, c.Half)
	}
	return nil
}

// Extent is the y/z half-extent of one segment of a Segmented box.
type Extent struct {
	Y, Z float64
}

// Segmented splits [-HalfX, HalfX] into len(Segments) slabs of equal width
// along x. Each slab has its own y/z half-extent; x always uses HalfX.
type Segmented struct {
	HalfX    float64
	Segments []Extent
}

// HalfExtents implements Bounds.
func (s Segmented) HalfExtents(x float64) Vec3 {
	e := s.Segments[s.Index(x)]
	return Vec3{s.HalfX, e.Y, e.Z}
}

// Index returns the segment holding x. Positions outside the box, which
// happen for one tick after a particle crosses a wall, map to the nearest
// end segment.
func (s Segmented) Index(x float64) int {
	n := len(s.Segments)
	i := int(math.Floor((x + s.HalfX) / (2 * s.HalfX) * float64(n)))
	switch {
	case i < 0:
		return 0
	case i >= n:
		return n - 1
	}
	return i
}

// Validate implements Bounds.
func (s Segmented) Validate() error {
	if !positive(s.HalfX) {
		return fmt.Errorf("%w: x half-extent %g", ErrBounds, s.HalfX)
	}
	if len(s.Segments) == 0 {
		return fmt.Errorf("%w: empty segment table", ErrBounds)
	}
	for i, e := range s.Segments {
		if !positive(e.Y) || !positive(e.Z) {
			return fmt.Errorf("%w: segment %d has extent (%g, %g)", ErrBounds, i, e.Y, e.Z)
		}
	}
	return nil
}

// Reflect returns the velocity along one axis after checking the position
// against a wall at ±half. A particle past a wall and still heading out
// turns around; one already heading back keeps its velocity. The position
// itself is left to come back on the following steps.
func Reflect(pos, vel, half float64) float64 {
	if (pos > half && vel > 0) || (pos < -half && vel < 0) {
		return -vel
	}
	return vel
}

func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 0)
}
