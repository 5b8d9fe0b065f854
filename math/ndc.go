package math

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ToNDC maps a pixel position (origin top-left, y down) into normalized
// device coordinates for a viewport of the given size.
// A zero sized viewport maps everything to the origin.
func ToNDC(p Vec2, viewportW, viewportH float32) Vec2 {
	if viewportW == 0 || viewportH == 0 {
		return Vec2Zero
	}
	return Vec2{
		X: p.X/(viewportW*0.5) - 1,
		Y: 1 - p.Y/(viewportH*0.5),
	}
}

// Rotate turns p around origin by angle degrees, clockwise on screen.
func Rotate(p, origin Vec2, angleDeg float32) Vec2 {
	if angleDeg == 0 {
		return p
	}
	rot := mgl32.Rotate2D(mgl32.DegToRad(angleDeg))
	d := rot.Mul2x1(mgl32.Vec2{p.X - origin.X, p.Y - origin.Y})
	return Vec2{X: d.X() + origin.X, Y: d.Y() + origin.Y}
}

// Clamp limits v to [lo, hi]. When hi < lo, lo wins.
func Clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(v, hi))
}
