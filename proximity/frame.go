package proximity

// Frame is the output of one tick.
type Frame struct {
	Tick uint64 `json:"tick"`

	// Positions holds x, y, z for every particle, in particle order.
	Positions []float64 `json:"positions"`

	Edges []Edge `json:"edges"`
}

// Len returns the number of particles in the frame.
func (f Frame) Len() int { return len(f.Positions) / 3 }

// Position returns the position of particle i.
func (f Frame) Position(i int) Vec3 {
	return Vec3{f.Positions[3*i], f.Positions[3*i+1], f.Positions[3*i+2]}
}

// Segment is an edge reduced to its drawn line.
type Segment struct {
	A, B  Vec3
	Alpha float64
}

// Segments returns the line of every edge of the frame. The ends are the
// positions the edge was measured at, which is not always where Positions
// puts the particles after the tick.
func (f Frame) Segments() []Segment {
	out := make([]Segment, len(f.Edges))
	for k, e := range f.Edges {
		out[k] = Segment{A: e.A, B: e.B, Alpha: e.Alpha}
	}
	return out
}
