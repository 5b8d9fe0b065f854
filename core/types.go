package core

import (
	"render2d/math"
)

// Color is a non-premultiplied RGBA colour with components in [0,1].
type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}
	ColorRed         = Color{1, 0, 0, 1}
	ColorGreen       = Color{0, 1, 0, 1}
	ColorBlue        = Color{0, 0, 1, 1}
	ColorYellow      = Color{1, 1, 0, 1}
	ColorTransparent = Color{}
)

// ColorRGBA builds a Color from 8-bit channels.
func ColorRGBA(r, g, b, a uint8) Color {
	return Color{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
		A: float32(a) / 255,
	}
}

// IsEmpty reports whether every channel is zero.
func (c Color) IsEmpty() bool {
	return c == Color{}
}

// Vec4 returns the colour as an RGBA vector, the layout the shaders consume.
func (c Color) Vec4() math.Vec4 {
	return math.Vec4{X: c.R, Y: c.G, Z: c.B, W: c.A}
}

// Rect is an axis aligned rectangle in pixel space.
type Rect struct {
	X, Y, Width, Height float32
}

func (r Rect) IsEmpty() bool {
	return r == Rect{}
}

// Texture is a GPU resident image. Loading pixel data is the job of the
// content layer; the renderers only need the handle and dimensions.
type Texture struct {
	ID     uint32
	Name   string
	Width  uint32
	Height uint32
}

// CornerRadius holds an independent radius per rectangle corner.
type CornerRadius struct {
	TopLeft, BottomLeft, BottomRight, TopRight float32
}

// UniformCornerRadius uses r for all four corners.
func UniformCornerRadius(r float32) CornerRadius {
	return CornerRadius{TopLeft: r, BottomLeft: r, BottomRight: r, TopRight: r}
}

func (c CornerRadius) IsEmpty() bool {
	return c == CornerRadius{}
}

// ColorGradient selects how a rectangle's fill is blended across its quad.
type ColorGradient int

const (
	GradientNone ColorGradient = iota
	GradientHorizontal
	GradientVertical
)

func (g ColorGradient) String() string {
	switch g {
	case GradientNone:
		return "none"
	case GradientHorizontal:
		return "horizontal"
	case GradientVertical:
		return "vertical"
	}
	return "unknown"
}

// RenderEffects is a set of texture flip flags.
type RenderEffects uint8

const (
	EffectNone           RenderEffects = 0
	EffectFlipHorizontal RenderEffects = 1
	EffectFlipVertical   RenderEffects = 2
)

func (e RenderEffects) Has(flag RenderEffects) bool {
	return e&flag != 0
}
