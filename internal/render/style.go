package render

import (
	"image/color"
	"math"

	"github.com/olivierh59500/plexus-go/proximity"
)

// Scene colours
var (
	Background = color.RGBA{0x10, 0x2a, 0x43, 0xff}
	BoxColor   = color.RGBA{0x24, 0x3b, 0x53, 0xff}
)

// dodger blue
const dotHue = 210.0

// DotColor returns the colour of a particle with n connections.
// Lonely particles are dodger blue; busy ones warm up towards orange.
func DotColor(n int) color.RGBA {
	h := dotHue - 12*math.Min(float64(n), 15)
	r, g, b := hsvToRGB(h, 0.88, 1)
	return color.RGBA{uint8(r * 255), uint8(g * 255), uint8(b * 255), 255}
}

// LineColor returns the grey level of an edge. Lines are meant to be
// blended additively, so alpha is baked into the grey.
func LineColor(alpha float64) color.RGBA {
	v := uint8(math.Round(255 * math.Max(0, math.Min(1, alpha))))
	return color.RGBA{v, v, v, 255}
}

// hsvToRGB converts a colour from HSV, with h in degrees, to RGB in [0, 1].
func hsvToRGB(h, s, v float64) (float64, float64, float64) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return r + m, g + m, b + m
}

// BoxEdges returns the wireframe of b as pairs of corners.
// A segmented box yields one box per slab.
func BoxEdges(b proximity.Bounds) [][2]proximity.Vec3 {
	if s, ok := b.(proximity.Segmented); ok {
		n := len(s.Segments)
		w := 2 * s.HalfX / float64(n)
		var out [][2]proximity.Vec3
		for i, e := range s.Segments {
			x0 := -s.HalfX + float64(i)*w
			out = append(out, boxEdges(x0, x0+w, e.Y, e.Z)...)
		}
		return out
	}
	h := b.HalfExtents(0)
	return boxEdges(-h.X, h.X, h.Y, h.Z)
}

func boxEdges(x0, x1, hy, hz float64) [][2]proximity.Vec3 {
	c := func(i int) proximity.Vec3 {
		p := proximity.Vec3{X: x0, Y: -hy, Z: -hz}
		if i&1 != 0 {
			p.X = x1
		}
		if i&2 != 0 {
			p.Y = hy
		}
		if i&4 != 0 {
			p.Z = hz
		}
		return p
	}
	// corners differing by exactly one bit share an edge
	var out [][2]proximity.Vec3
	for i := 0; i < 8; i++ {
		for _, bit := range []int{1, 2, 4} {
			if i&bit == 0 {
				out = append(out, [2]proximity.Vec3{c(i), c(i | bit)})
			}
		}
	}
	return out
}
