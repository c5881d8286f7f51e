// Package render holds the screen-space math of the viewer: an orbiting
// perspective camera, colours, and the wireframe of the bounds.
package render

import (
	"github.com/aquilax/go-perlin"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/olivierh59500/plexus-go/proximity"
)

// Camera limits
const (
	MinDistance = 100
	MaxDistance = 3900
	maxPitch    = math32.Pi/2 - 0.01
	orbitSpeed  = 0.005 // radians per dragged pixel
	driftStep   = 1.0 / 60
)

// Camera orbits the origin, always looking at it.
type Camera struct {
	Distance   float32 // from the origin
	Yaw, Pitch float32 // radians; zero looks down -z
	FOV        float32 // vertical field of view in degrees
	Near, Far  float32

	// Drift slowly wanders the camera around when set.
	Drift bool
	noise *perlin.Perlin
	t     float64
}

// NewCamera returns a camera 1750 units down the z axis.
func NewCamera(seed int64) *Camera {
	return &Camera{
		Distance: 1750,
		FOV:      45,
		Near:     1,
		Far:      4000,
		noise:    perlin.NewPerlin(2, 2, 3, seed),
	}
}

// Eye returns the position of the camera.
func (c *Camera) Eye() mgl32.Vec3 {
	cp := math32.Cos(c.Pitch)
	return mgl32.Vec3{
		c.Distance * cp * math32.Sin(c.Yaw),
		c.Distance * math32.Sin(c.Pitch),
		c.Distance * cp * math32.Cos(c.Yaw),
	}
}

// Orbit turns the camera by a mouse drag of (dx, dy) pixels.
func (c *Camera) Orbit(dx, dy float32) {
	c.Yaw -= dx * orbitSpeed
	c.Pitch = clamp(c.Pitch+dy*orbitSpeed, -maxPitch, maxPitch)
}

// Zoom moves the camera in for positive steps and out for negative ones.
func (c *Camera) Zoom(steps float64) {
	c.Distance = clamp(c.Distance*(1-0.1*float32(steps)), MinDistance, MaxDistance)
}

// Advance moves a drifting camera by one frame.
func (c *Camera) Advance() {
	if !c.Drift {
		return
	}
	c.t += driftStep
	c.Yaw += 0.002 + 0.004*float32(c.noise.Noise1D(c.t*0.1))
	c.Pitch = clamp(c.Pitch+0.003*float32(c.noise.Noise1D(c.t*0.05+100)), -maxPitch, maxPitch)
}

// View is a camera frozen for one frame at a given screen size.
type View struct {
	mv, proj      mgl32.Mat4
	width, height int
}

// View returns the projection for a width×height screen.
func (c *Camera) View(width, height int) View {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	return View{
		mv:     mgl32.LookAtV(c.Eye(), mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}),
		proj:   mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far),
		width:  width,
		height: height,
	}
}

// Project returns the screen position of p, with y pointing down.
// ok is false when p lies outside the depth range of the camera.
func (v View) Project(p proximity.Vec3) (x, y float32, ok bool) {
	obj := mgl32.Vec3{float32(p.X), float32(p.Y), float32(p.Z)}
	win := mgl32.Project(obj, v.mv, v.proj, 0, 0, v.width, v.height)
	if win.Z() < 0 || win.Z() > 1 {
		return 0, 0, false
	}
	return win.X(), float32(v.height) - win.Y(), true
}

func clamp(x, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, x))
}
