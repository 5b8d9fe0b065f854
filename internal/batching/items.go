package batching

import (
	"render2d/core"
	"render2d/math"
)

// Item is a single drawable unit held by a batch.
type Item interface {
	RenderLayer() int
	IsEmpty() bool
}

// TextureItem draws a region of a texture. Dest X/Y is the quad center; the
// quad spans Dest.Width*Size by Dest.Height*Size and is rotated Angle degrees
// clockwise around its center.
type TextureItem struct {
	Src, Dest     core.Rect
	Size          float32
	Angle         float32
	Tint          core.Color
	Effects       core.RenderEffects
	TextureID     uint32
	TextureWidth  float32
	TextureHeight float32
	Layer         int
}

func (t TextureItem) RenderLayer() int { return t.Layer }

func (t TextureItem) IsEmpty() bool {
	return t.Src.IsEmpty() &&
		t.Dest.IsEmpty() &&
		t.Size == 0 &&
		t.Angle == 0 &&
		t.Tint.IsEmpty() &&
		t.Effects == core.EffectNone &&
		t.TextureID == 0 &&
		t.TextureWidth == 0 &&
		t.TextureHeight == 0 &&
		t.Layer == 0
}

// GlyphItem draws one character from a font atlas texture.
type GlyphItem struct {
	TextureItem
	Glyph rune
}

func (g GlyphItem) IsEmpty() bool {
	return g.Glyph == 0 && g.TextureItem.IsEmpty()
}

// RectItem draws a solid or outlined rectangle with rounded corners.
// Position is the rectangle center.
type RectItem struct {
	Position        math.Vec2
	Width, Height   float32
	Color           core.Color
	IsSolid         bool
	BorderThickness float32
	CornerRadius    core.CornerRadius
	Gradient        core.ColorGradient
	GradientStart   core.Color
	GradientStop    core.Color
	Layer           int
}

func (r RectItem) RenderLayer() int { return r.Layer }

func (r RectItem) IsEmpty() bool {
	return r.Position == math.Vec2Zero &&
		r.Width == 0 &&
		r.Height == 0 &&
		r.Color.IsEmpty() &&
		!r.IsSolid &&
		r.BorderThickness == 0 &&
		r.CornerRadius.IsEmpty() &&
		r.Gradient == core.GradientNone &&
		r.GradientStart.IsEmpty() &&
		r.GradientStop.IsEmpty() &&
		r.Layer == 0
}

// LineItem draws a segment from P1 to P2.
type LineItem struct {
	P1, P2    math.Vec2
	Color     core.Color
	Thickness float32
	Layer     int
}

func (l LineItem) RenderLayer() int { return l.Layer }

func (l LineItem) IsEmpty() bool {
	return l.P1 == math.Vec2Zero &&
		l.P2 == math.Vec2Zero &&
		l.Color.IsEmpty() &&
		l.Thickness == 0 &&
		l.Layer == 0
}

// TextureKey batches textures by the texture they sample.
func TextureKey(t TextureItem) uint32 { return t.TextureID }

// GlyphKey batches glyphs by their atlas texture.
func GlyphKey(g GlyphItem) uint32 { return g.TextureID }
