// Package record runs a simulator without a window and writes its frames
// as JSON lines.
package record

import (
	"bufio"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/olivierh59500/plexus-go/proximity"
)

// Summary describes a recorded run.
type Summary struct {
	Ticks          int
	MinEdges       int
	MaxEdges       int
	TotalEdges     int
	MaxConnections int // highest connection count seen on one particle
}

// MeanEdges returns the average number of edges per tick.
func (s Summary) MeanEdges() float64 {
	if s.Ticks == 0 {
		return 0
	}
	return float64(s.TotalEdges) / float64(s.Ticks)
}

// LogValue implements slog.LogValuer.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("ticks", s.Ticks),
		slog.Int("min_edges", s.MinEdges),
		slog.Int("max_edges", s.MaxEdges),
		slog.Float64("mean_edges", math.Round(s.MeanEdges()*100)/100),
		slog.Int("max_connections", s.MaxConnections),
	)
}

func (s *Summary) add(f proximity.Frame, sim *proximity.Simulator) {
	n := len(f.Edges)
	if s.Ticks == 0 || n < s.MinEdges {
		s.MinEdges = n
	}
	if n > s.MaxEdges {
		s.MaxEdges = n
	}
	s.TotalEdges += n
	s.Ticks++
	for i := 0; i < sim.Len(); i++ {
		if c := sim.Particle(i).Connections; c > s.MaxConnections {
			s.MaxConnections = c
		}
	}
}

// Record advances sim by steps ticks and writes every frame to w,
// one JSON object per line.
func Record(w io.Writer, sim *proximity.Simulator, steps int) (Summary, error) {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	var sum Summary
	for k := 0; k < steps; k++ {
		f := sim.Tick()
		if err := enc.Encode(f); err != nil {
			return sum, err
		}
		sum.add(f, sim)
	}
	return sum, bw.Flush()
}

// ToFile records into the file at path, creating parent directories.
// The path "-" writes to stdout.
func ToFile(path string, sim *proximity.Simulator, steps int) (Summary, error) {
	if path == "-" {
		return Record(os.Stdout, sim, steps)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Summary{}, err
	}
	f, err := os.Create(path)
	if err != nil {
		return Summary{}, err
	}
	sum, err := Record(f, sim, steps)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return sum, err
}
