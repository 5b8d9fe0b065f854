// Package gpudata defines the fixed vertex records uploaded for each batch
// item type. Field order is the attribute order the shaders declare, and
// every record flattens to tightly packed float32 values.
package gpudata

import "render2d/math"

const floatSize = 4

// Vertices per quad. Order: top-left, bottom-left, top-right, bottom-right.
const QuadVertices = 4

const (
	TopLeft = iota
	BottomLeft
	TopRight
	BottomRight
)

// TextureVertex is one corner of a textured quad.
type TextureVertex struct {
	Pos  math.Vec2
	UV   math.Vec2
	Tint math.Vec4
}

// TextureFloats is the number of float32 values in a TextureVertex.
const (
	TextureFloats = 2 + 2 + 4
	TextureStride = TextureFloats * floatSize
)

func (v TextureVertex) AppendTo(dst []float32) []float32 {
	return append(dst,
		v.Pos.X, v.Pos.Y,
		v.UV.X, v.UV.Y,
		v.Tint.X, v.Tint.Y, v.Tint.Z, v.Tint.W,
	)
}

// GlyphVertex shares the texture layout; glyphs sample a font atlas.
type GlyphVertex = TextureVertex

const (
	GlyphFloats = TextureFloats
	GlyphStride = TextureStride
)

// RectVertex is one corner of a rectangle quad. Rect holds the pixel space
// center and size the fragment shader evaluates the rounded shape against.
type RectVertex struct {
	Pos               math.Vec2
	Rect              math.Vec4
	Color             math.Vec4
	IsSolid           float32
	BorderThickness   float32
	TopLeftRadius     float32
	BottomLeftRadius  float32
	BottomRightRadius float32
	TopRightRadius    float32
}

const (
	RectFloats = 2 + 4 + 4 + 1 + 1 + 4
	RectStride = RectFloats * floatSize
)

func (v RectVertex) AppendTo(dst []float32) []float32 {
	return append(dst,
		v.Pos.X, v.Pos.Y,
		v.Rect.X, v.Rect.Y, v.Rect.Z, v.Rect.W,
		v.Color.X, v.Color.Y, v.Color.Z, v.Color.W,
		v.IsSolid,
		v.BorderThickness,
		v.TopLeftRadius,
		v.BottomLeftRadius,
		v.BottomRightRadius,
		v.TopRightRadius,
	)
}

// LineVertex is one corner of the quad a line segment is expanded into.
type LineVertex struct {
	Pos   math.Vec2
	Color math.Vec4
}

const (
	LineFloats = 2 + 4
	LineStride = LineFloats * floatSize
)

func (v LineVertex) AppendTo(dst []float32) []float32 {
	return append(dst, v.Pos.X, v.Pos.Y, v.Color.X, v.Color.Y, v.Color.Z, v.Color.W)
}

// Vertex is implemented by every vertex record.
type Vertex interface {
	AppendTo(dst []float32) []float32
}

// Quad is the four vertices uploaded for one batch item.
type Quad[V Vertex] [QuadVertices]V

// ToArray flattens the quad in vertex order.
func (q Quad[V]) ToArray() []float32 {
	var out []float32
	for _, v := range q {
		out = v.AppendTo(out)
	}
	return out
}
