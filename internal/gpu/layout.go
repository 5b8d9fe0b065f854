package gpu

import (
	"fmt"

	"render2d/core"
	"render2d/internal/batching"
	"render2d/internal/gpudata"
	"render2d/internal/reactable"
	"render2d/math"
)

// Attribute is one float vertex attribute. Offsets are derived from the
// attribute order.
type Attribute struct {
	Name string
	Size int32 // float components
}

// Viewport is the pixel size NDC conversion is computed against.
type Viewport struct {
	Width, Height float32
}

func (v Viewport) ndc(p math.Vec2) math.Vec2 {
	return math.ToNDC(p, v.Width, v.Height)
}

// Layout describes how items of type T are laid out in a vertex buffer.
type Layout[T batching.Item] interface {
	Name() string
	BatchType() reactable.BatchType
	// VertexStride is the byte size of one vertex.
	VertexStride() int
	Attributes() []Attribute
	// Vertices returns the four serialized vertices for item.
	Vertices(item T, vp Viewport) ([]float32, error)
}

// AttributeOffsets returns the byte offset of each attribute in attrs.
func AttributeOffsets(attrs []Attribute) []int {
	offsets := make([]int, len(attrs))
	off := 0
	for i, a := range attrs {
		offsets[i] = off
		off += int(a.Size) * 4
	}
	return offsets
}

var textureAttributes = []Attribute{
	{Name: "vertexPos", Size: 2},
	{Name: "texCoord", Size: 2},
	{Name: "tintColor", Size: 4},
}

// TextureLayout lays out textured quads.
type TextureLayout struct{}

func (TextureLayout) Name() string                   { return "texture" }
func (TextureLayout) BatchType() reactable.BatchType { return reactable.TextureBatch }
func (TextureLayout) VertexStride() int              { return gpudata.TextureStride }
func (TextureLayout) Attributes() []Attribute        { return textureAttributes }
func (TextureLayout) Vertices(item batching.TextureItem, vp Viewport) ([]float32, error) {
	return textureQuad(item, vp).ToArray(), nil
}

// GlyphLayout lays out font glyph quads sampled from an atlas.
type GlyphLayout struct{}

func (GlyphLayout) Name() string                   { return "font" }
func (GlyphLayout) BatchType() reactable.BatchType { return reactable.FontBatch }
func (GlyphLayout) VertexStride() int              { return gpudata.GlyphStride }
func (GlyphLayout) Attributes() []Attribute        { return textureAttributes }
func (GlyphLayout) Vertices(item batching.GlyphItem, vp Viewport) ([]float32, error) {
	return textureQuad(item.TextureItem, vp).ToArray(), nil
}

func textureQuad(item batching.TextureItem, vp Viewport) gpudata.Quad[gpudata.TextureVertex] {
	center := math.NewVec2(item.Dest.X, item.Dest.Y)
	halfW := item.Dest.Width * item.Size / 2
	halfH := item.Dest.Height * item.Size / 2

	corners := [gpudata.QuadVertices]math.Vec2{
		gpudata.TopLeft:     {X: center.X - halfW, Y: center.Y - halfH},
		gpudata.BottomLeft:  {X: center.X - halfW, Y: center.Y + halfH},
		gpudata.TopRight:    {X: center.X + halfW, Y: center.Y - halfH},
		gpudata.BottomRight: {X: center.X + halfW, Y: center.Y + halfH},
	}

	var left, right, top, bottom float32
	if item.TextureWidth > 0 && item.TextureHeight > 0 {
		left = item.Src.X / item.TextureWidth
		right = (item.Src.X + item.Src.Width) / item.TextureWidth
		top = item.Src.Y / item.TextureHeight
		bottom = (item.Src.Y + item.Src.Height) / item.TextureHeight
	}
	if item.Effects.Has(core.EffectFlipHorizontal) {
		left, right = right, left
	}
	if item.Effects.Has(core.EffectFlipVertical) {
		top, bottom = bottom, top
	}
	uvs := [gpudata.QuadVertices]math.Vec2{
		gpudata.TopLeft:     {X: left, Y: top},
		gpudata.BottomLeft:  {X: left, Y: bottom},
		gpudata.TopRight:    {X: right, Y: top},
		gpudata.BottomRight: {X: right, Y: bottom},
	}

	tint := item.Tint.Vec4()
	var q gpudata.Quad[gpudata.TextureVertex]
	for i := range q {
		p := math.Rotate(corners[i], center, item.Angle)
		q[i] = gpudata.TextureVertex{Pos: vp.ndc(p), UV: uvs[i], Tint: tint}
	}
	return q
}

// RectLayout lays out rounded, optionally bordered rectangles.
type RectLayout struct{}

func (RectLayout) Name() string                   { return "rect" }
func (RectLayout) BatchType() reactable.BatchType { return reactable.RectBatch }
func (RectLayout) VertexStride() int              { return gpudata.RectStride }
func (RectLayout) Attributes() []Attribute {
	return []Attribute{
		{Name: "vertexPos", Size: 2},
		{Name: "rectangle", Size: 4},
		{Name: "color", Size: 4},
		{Name: "isSolid", Size: 1},
		{Name: "borderThickness", Size: 1},
		{Name: "topLeftRadius", Size: 1},
		{Name: "bottomLeftRadius", Size: 1},
		{Name: "bottomRightRadius", Size: 1},
		{Name: "topRightRadius", Size: 1},
	}
}

func (RectLayout) Vertices(item batching.RectItem, vp Viewport) ([]float32, error) {
	colors, err := GradientColors(item)
	if err != nil {
		return nil, err
	}

	item = ClampRect(item)
	halfW, halfH := item.Width/2, item.Height/2
	c := item.Position
	corners := [gpudata.QuadVertices]math.Vec2{
		gpudata.TopLeft:     {X: c.X - halfW, Y: c.Y - halfH},
		gpudata.BottomLeft:  {X: c.X - halfW, Y: c.Y + halfH},
		gpudata.TopRight:    {X: c.X + halfW, Y: c.Y - halfH},
		gpudata.BottomRight: {X: c.X + halfW, Y: c.Y + halfH},
	}

	// The fragment shader works in window coordinates, which put the origin
	// at the bottom left.
	rect := math.NewVec4(c.X, vp.Height-c.Y, item.Width, item.Height)
	var solid float32
	if item.IsSolid {
		solid = 1
	}

	var q gpudata.Quad[gpudata.RectVertex]
	for i := range q {
		q[i] = gpudata.RectVertex{
			Pos:               vp.ndc(corners[i]),
			Rect:              rect,
			Color:             colors[i].Vec4(),
			IsSolid:           solid,
			BorderThickness:   item.BorderThickness,
			TopLeftRadius:     item.CornerRadius.TopLeft,
			BottomLeftRadius:  item.CornerRadius.BottomLeft,
			BottomRightRadius: item.CornerRadius.BottomRight,
			TopRightRadius:    item.CornerRadius.TopRight,
		}
	}
	return q.ToArray(), nil
}

// ClampRect limits the border thickness to [1, min(w,h)/2] and every corner
// radius to [0, min(w,h)/2] so the shape never folds over itself.
func ClampRect(item batching.RectItem) batching.RectItem {
	limit := min(item.Width, item.Height) / 2
	item.BorderThickness = math.Clamp(item.BorderThickness, 1, limit)
	r := &item.CornerRadius
	r.TopLeft = math.Clamp(r.TopLeft, 0, limit)
	r.BottomLeft = math.Clamp(r.BottomLeft, 0, limit)
	r.BottomRight = math.Clamp(r.BottomRight, 0, limit)
	r.TopRight = math.Clamp(r.TopRight, 0, limit)
	return item
}

// GradientColors returns the colour of each quad vertex, indexed like
// gpudata.TopLeft.
func GradientColors(item batching.RectItem) ([gpudata.QuadVertices]core.Color, error) {
	var colors [gpudata.QuadVertices]core.Color
	switch item.Gradient {
	case core.GradientNone:
		colors = [gpudata.QuadVertices]core.Color{item.Color, item.Color, item.Color, item.Color}
	case core.GradientHorizontal:
		colors[gpudata.TopLeft] = item.GradientStart
		colors[gpudata.BottomLeft] = item.GradientStart
		colors[gpudata.TopRight] = item.GradientStop
		colors[gpudata.BottomRight] = item.GradientStop
	case core.GradientVertical:
		colors[gpudata.BottomLeft] = item.GradientStart
		colors[gpudata.BottomRight] = item.GradientStart
		colors[gpudata.TopLeft] = item.GradientStop
		colors[gpudata.TopRight] = item.GradientStop
	default:
		return colors, fmt.Errorf("%w: %d", ErrInvalidGradient, int(item.Gradient))
	}
	return colors, nil
}

// LineLayout expands line segments into quads.
type LineLayout struct{}

func (LineLayout) Name() string                   { return "line" }
func (LineLayout) BatchType() reactable.BatchType { return reactable.LineBatch }
func (LineLayout) VertexStride() int              { return gpudata.LineStride }
func (LineLayout) Attributes() []Attribute {
	return []Attribute{
		{Name: "vertexPos", Size: 2},
		{Name: "color", Size: 4},
	}
}

func (LineLayout) Vertices(item batching.LineItem, vp Viewport) ([]float32, error) {
	thickness := max(item.Thickness, 1)
	dir := item.P2.Sub(item.P1).Normalize()
	if dir == math.Vec2Zero {
		dir = math.NewVec2(1, 0)
	}
	n := dir.Perp().Mul(thickness / 2)

	corners := [gpudata.QuadVertices]math.Vec2{
		gpudata.TopLeft:     item.P1.Sub(n),
		gpudata.BottomLeft:  item.P1.Add(n),
		gpudata.TopRight:    item.P2.Sub(n),
		gpudata.BottomRight: item.P2.Add(n),
	}

	color := item.Color.Vec4()
	var q gpudata.Quad[gpudata.LineVertex]
	for i := range q {
		q[i] = gpudata.LineVertex{Pos: vp.ndc(corners[i]), Color: color}
	}
	return q.ToArray(), nil
}
