// Package proximity simulates a swarm of particles drifting in a box and
// the links between particles that come close to each other.
//
// Every tick each particle moves by its velocity, bounces off the walls,
// and is compared with every particle after it. Pairs closer than
// Config.MinDistance become edges whose alpha fades linearly from 1 at
// distance 0 to 0 at MinDistance. Drawing is left to the caller.
//
// A Simulator is not safe for concurrent use.
package proximity

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Particle is the state of a single particle.
type Particle struct {
	Pos Vec3
	Vel Vec3

	// Connections counts the edges of the particle in the last tick.
	Connections int
}

// Edge links particles I and J, with I < J.
//
// A and B are the positions the pair was measured at. Particle J had not
// moved yet when the pair was compared, so B can differ from its position
// at the end of the tick.
type Edge struct {
	I     int     `json:"i"`
	J     int     `json:"j"`
	A     Vec3    `json:"a"`
	B     Vec3    `json:"b"`
	Alpha float64 `json:"alpha"`
}

// Simulator owns the particles of one swarm.
type Simulator struct {
	cfg       Config
	particles []Particle
	edges     []Edge
	ticks     uint64
}

// New creates a simulator with cfg.Count particles drawn uniformly inside
// cfg.Bounds, each velocity component uniform in [-1, 1).
func New(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Simulator{cfg: cfg}
	s.Reset()
	return s, nil
}

// NewWithParticles creates a simulator starting from the given particles.
// The slice is copied and its length must be cfg.Count.
func NewWithParticles(cfg Config, particles []Particle) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(particles) != cfg.Count {
		return nil, fmt.Errorf("%w: %d particles given for a count of %d", ErrConfig, len(particles), cfg.Count)
	}
	s := &Simulator{cfg: cfg, particles: make([]Particle, len(particles))}
	copy(s.particles, particles)
	return s, nil
}

// Reset redraws the initial state from the configured seed,
// so a reset simulator replays the same run.
func (s *Simulator) Reset() {
	rng := rand.New(rand.NewSource(s.cfg.Seed))
	uniform := func(h float64) float64 { return rng.Float64()*2*h - h }

	s.particles = make([]Particle, s.cfg.Count)
	s.edges = nil
	s.ticks = 0
	for i := range s.particles {
		p := &s.particles[i]
		p.Pos.X = uniform(s.cfg.Bounds.HalfExtents(0).X)
		h := s.cfg.Bounds.HalfExtents(p.Pos.X)
		p.Pos.Y = uniform(h.Y)
		p.Pos.Z = uniform(h.Z)
		p.Vel = Vec3{uniform(1), uniform(1), uniform(1)}
	}
}

// Tick advances the swarm by one step and returns the new frame.
//
// Particles are processed in index order. Particle i is moved and bounced,
// then compared with every j > i. Those have not moved yet in this tick,
// so the comparison uses their previous position.
func (s *Simulator) Tick() Frame {
	ps := s.particles
	for i := range ps {
		ps[i].Connections = 0
	}

	capped := s.cfg.capped()
	limit := s.cfg.MaxConnections
	strict := s.cfg.Cap == CapStrict
	minDist := s.cfg.MinDistance

	edges := make([]Edge, 0, len(s.edges))
	for i := range ps {
		p := &ps[i]
		p.Pos = p.Pos.Add(p.Vel)
		h := s.cfg.Bounds.HalfExtents(p.Pos.X)
		p.Vel.X = Reflect(p.Pos.X, p.Vel.X, h.X)
		p.Vel.Y = Reflect(p.Pos.Y, p.Vel.Y, h.Y)
		p.Vel.Z = Reflect(p.Pos.Z, p.Vel.Z, h.Z)

		if capped && p.Connections >= limit {
			continue
		}
		for j := i + 1; j < len(ps); j++ {
			if capped && strict && p.Connections >= limit {
				break
			}
			q := &ps[j]
			if capped && q.Connections >= limit {
				continue
			}
			d := p.Pos.Dist(q.Pos)
			if d < minDist {
				p.Connections++
				q.Connections++
				edges = append(edges, Edge{I: i, J: j, A: p.Pos, B: q.Pos, Alpha: 1 - d/minDist})
			}
		}
	}

	s.edges = edges
	s.ticks++
	return s.frame()
}

func (s *Simulator) frame() Frame {
	return Frame{
		Tick:      s.ticks,
		Positions: s.AppendPositions(make([]float64, 0, 3*len(s.particles))),
		Edges:     s.edges,
	}
}

// Frame returns the current state without advancing it.
func (s *Simulator) Frame() Frame {
	return s.frame()
}

// Config returns the configuration the simulator was built with.
func (s *Simulator) Config() Config { return s.cfg }

// Len returns the number of particles.
func (s *Simulator) Len() int { return len(s.particles) }

// Ticks returns the number of ticks since construction or the last Reset.
func (s *Simulator) Ticks() uint64 { return s.ticks }

// Particle returns particle i.
func (s *Simulator) Particle(i int) Particle { return s.particles[i] }

// Particles returns a copy of all particles.
func (s *Simulator) Particles() []Particle {
	out := make([]Particle, len(s.particles))
	copy(out, s.particles)
	return out
}

// Edges returns the edges found by the last tick.
// The slice is replaced, not modified, by the next tick.
func (s *Simulator) Edges() []Edge { return s.edges }

// AppendPositions appends x, y, z of every particle to dst.
func (s *Simulator) AppendPositions(dst []float64) []float64 {
	for _, p := range s.particles {
		dst = append(dst, p.Pos.X, p.Pos.Y, p.Pos.Z)
	}
	return dst
}
