package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/olivierh59500/plexus-go/proximity"
)

func TestProjectCenter(t *testing.T) {
	v := NewCamera(1).View(800, 600)
	x, y, ok := v.Project(proximity.Vec3{})
	assert.True(t, ok)
	assert.InDelta(t, 400, x, 1e-3)
	assert.InDelta(t, 300, y, 1e-3)
}

func TestProjectDirections(t *testing.T) {
	v := NewCamera(1).View(800, 600)

	x, _, ok := v.Project(proximity.Vec3{X: 100})
	assert.True(t, ok)
	assert.Greater(t, x, float32(400))

	// screen y grows downwards
	_, y, ok := v.Project(proximity.Vec3{Y: 100})
	assert.True(t, ok)
	assert.Less(t, y, float32(300))
}

func TestProjectClipsDepth(t *testing.T) {
	v := NewCamera(1).View(800, 600)
	_, _, ok := v.Project(proximity.Vec3{Z: 2000})
	assert.False(t, ok, "behind the camera")
	_, _, ok = v.Project(proximity.Vec3{Z: -3000})
	assert.False(t, ok, "past the far plane")
}

func TestCameraControls(t *testing.T) {
	c := NewCamera(1)
	assert.InDelta(t, 1750, c.Eye().Z(), 1e-3)

	c.Zoom(100)
	assert.Equal(t, float32(MinDistance), c.Distance)
	c.Zoom(-1000)
	assert.Equal(t, float32(MaxDistance), c.Distance)

	c.Orbit(0, 1e6)
	assert.Equal(t, float32(maxPitch), c.Pitch)
	c.Orbit(100, 0)
	assert.InDelta(t, -0.5, c.Yaw, 1e-6)
}

func TestCameraDrift(t *testing.T) {
	c := NewCamera(5)
	c.Advance()
	assert.Zero(t, c.Yaw)

	c.Drift = true
	for i := 0; i < 10; i++ {
		c.Advance()
	}
	assert.NotZero(t, c.Yaw)
	assert.LessOrEqual(t, c.Pitch, float32(maxPitch))
}

func TestHSV(t *testing.T) {
	tests := []struct {
		h       float64
		r, g, b float64
	}{
		{0, 1, 0, 0},
		{120, 0, 1, 0},
		{240, 0, 0, 1},
		{360, 1, 0, 0},
		{-120, 0, 0, 1},
	}
	for _, tt := range tests {
		r, g, b := hsvToRGB(tt.h, 1, 1)
		assert.InDelta(t, tt.r, r, 1e-9, "h=%g", tt.h)
		assert.InDelta(t, tt.g, g, 1e-9, "h=%g", tt.h)
		assert.InDelta(t, tt.b, b, 1e-9, "h=%g", tt.h)
	}
}

func TestDotColor(t *testing.T) {
	lonely := DotColor(0)
	assert.Greater(t, lonely.B, lonely.R)
	busy := DotColor(100)
	assert.Greater(t, busy.R, busy.B)
	assert.Equal(t, DotColor(15), busy)
}

func TestLineColor(t *testing.T) {
	assert.Equal(t, color.RGBA{128, 128, 128, 255}, LineColor(0.5))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, LineColor(2))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, LineColor(-1))
}

func TestBoxEdges(t *testing.T) {
	edges := BoxEdges(proximity.Cube{Half: 10})
	assert.Len(t, edges, 12)
	for _, e := range edges {
		d := e[1].Sub(e[0])
		assert.Equal(t, 20.0, d.Len())
	}

	seg := proximity.Segmented{HalfX: 30, Segments: []proximity.Extent{{Y: 1, Z: 2}, {Y: 3, Z: 4}, {Y: 5, Z: 6}}}
	edges = BoxEdges(seg)
	assert.Len(t, edges, 36)
	assert.Equal(t, -30.0, edges[0][0].X)
	assert.Equal(t, 30.0, edges[len(edges)-1][1].X)
}
