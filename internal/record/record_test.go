package record

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olivierh59500/plexus-go/proximity"
)

func newSim(t *testing.T) *proximity.Simulator {
	t.Helper()
	sim, err := proximity.New(proximity.Config{
		Count:       30,
		Bounds:      proximity.Cube{Half: 40},
		MinDistance: 25,
		Seed:        11,
	})
	require.NoError(t, err)
	return sim
}

func TestRecord(t *testing.T) {
	var buf bytes.Buffer
	sum, err := Record(&buf, newSim(t), 8)
	require.NoError(t, err)

	replay := newSim(t)
	dec := json.NewDecoder(&buf)
	total := 0
	for k := 0; k < 8; k++ {
		var got proximity.Frame
		require.NoError(t, dec.Decode(&got))
		want := replay.Tick()
		assert.Equal(t, want.Tick, got.Tick)
		assert.Equal(t, want.Positions, got.Positions)
		assert.ElementsMatch(t, want.Edges, got.Edges)
		total += len(want.Edges)
	}
	var extra proximity.Frame
	assert.ErrorIs(t, dec.Decode(&extra), io.EOF)

	assert.Equal(t, 8, sum.Ticks)
	assert.Equal(t, total, sum.TotalEdges)
	assert.LessOrEqual(t, sum.MinEdges, sum.MaxEdges)
	assert.InDelta(t, float64(total)/8, sum.MeanEdges(), 1e-12)
	assert.Positive(t, sum.MaxConnections)
}

func TestRecordNoSteps(t *testing.T) {
	var buf bytes.Buffer
	sum, err := Record(&buf, newSim(t), 0)
	require.NoError(t, err)
	assert.Zero(t, buf.Len())
	assert.Zero(t, sum.MeanEdges())
}

func TestSummaryMinMax(t *testing.T) {
	sim := newSim(t)
	var s Summary
	s.add(proximity.Frame{Edges: make([]proximity.Edge, 5)}, sim)
	s.add(proximity.Frame{Edges: make([]proximity.Edge, 2)}, sim)
	s.add(proximity.Frame{Edges: make([]proximity.Edge, 9)}, sim)
	assert.Equal(t, 2, s.MinEdges)
	assert.Equal(t, 9, s.MaxEdges)
	assert.Equal(t, 16, s.TotalEdges)
}

func TestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "run.jsonl")
	sum, err := ToFile(path, newSim(t), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Ticks)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, bytes.Count(data, []byte("\n")))
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, os.ErrClosed }

func TestRecordWriteError(t *testing.T) {
	_, err := Record(failWriter{}, newSim(t), 2)
	assert.ErrorIs(t, err, os.ErrClosed)
}
