package renderer

import (
	"render2d/core"
	"render2d/internal/batching"
	"render2d/internal/gpu"
	"render2d/math"
)

// FallbackGlyph is drawn in place of characters a font has no metrics for.
const FallbackGlyph = '?'

// GlyphMetrics locates one character in a font atlas. Bearings and advance
// are in unscaled pixels; BearingY is the distance from the baseline up to
// the top of the glyph bounds.
type GlyphMetrics struct {
	Glyph       rune
	AtlasBounds core.Rect
	BearingX    float32
	BearingY    float32
	Advance     float32
}

// Font is a rasterized font: an atlas texture plus per-glyph metrics.
type Font interface {
	Atlas() *core.Texture
	Metrics(r rune) (GlyphMetrics, bool)
	LineHeight() float32
}

// TextParams controls how text is drawn.
type TextParams struct {
	// Size scales the font. Zero means 1.
	Size float32
	// Angle rotates the whole text clockwise around its origin, in degrees.
	Angle float32
	// Tint colors the glyphs. The zero value means white.
	Tint  core.Color
	Layer int
}

// FontRenderer draws text from font atlases, one batch per atlas.
type FontRenderer struct {
	p *pipeline[batching.GlyphItem]
}

func NewFontRenderer(s *Services, batcher *Batcher) (*FontRenderer, error) {
	p, err := newPipeline[batching.GlyphItem](s, batcher, gpu.GlyphLayout{}, gpu.FontShader,
		map[string]int32{gpu.MainTextureSampler: 0}, batching.GlyphKey)
	if err != nil {
		return nil, err
	}
	p.beforeDraw = func(first batching.GlyphItem) { bindTexture(s.GL, first.TextureID) }
	return &FontRenderer{p: p}, nil
}

// Render draws text with its first baseline starting at (x, y). A newline
// moves the pen back to x, one line height down.
func (r *FontRenderer) Render(font Font, text string, x, y float32, params TextParams) error {
	if !r.p.batcher.HasBegun() {
		return ErrBatchNotBegun
	}
	if font == nil {
		return ErrNilFont
	}
	atlas := font.Atlas()
	if atlas == nil {
		return ErrNilTexture
	}
	for _, item := range LayoutText(font, text, x, y, params) {
		if err := r.p.add(item); err != nil {
			return err
		}
	}
	return nil
}

// Err returns the first flush error since the last Begin.
func (r *FontRenderer) Err() error { return r.p.Err() }

func (r *FontRenderer) release() { r.p.release() }

// LayoutText positions the glyphs of text. Characters without metrics use
// FallbackGlyph, or are skipped when the font lacks that too. Glyphs with
// empty bounds only advance the pen.
func LayoutText(font Font, text string, x, y float32, params TextParams) []batching.GlyphItem {
	if params.Size == 0 {
		params.Size = 1
	}
	if params.Tint.IsEmpty() {
		params.Tint = core.ColorWhite
	}
	atlas := font.Atlas()
	origin := math.NewVec2(x, y)
	size := params.Size

	items := make([]batching.GlyphItem, 0, len(text))
	penX, baseline := x, y
	for _, ch := range text {
		if ch == '\n' {
			penX = x
			baseline += font.LineHeight() * size
			continue
		}
		m, ok := font.Metrics(ch)
		if !ok {
			if m, ok = font.Metrics(FallbackGlyph); !ok {
				continue
			}
		}
		bounds := m.AtlasBounds
		if bounds.Width > 0 && bounds.Height > 0 {
			left := penX + m.BearingX*size
			top := baseline - m.BearingY*size
			center := math.NewVec2(left+bounds.Width*size/2, top+bounds.Height*size/2)
			center = math.Rotate(center, origin, params.Angle)

			items = append(items, batching.GlyphItem{
				TextureItem: batching.TextureItem{
					Src:           bounds,
					Dest:          core.Rect{X: center.X, Y: center.Y, Width: bounds.Width, Height: bounds.Height},
					Size:          size,
					Angle:         params.Angle,
					Tint:          params.Tint,
					TextureID:     atlas.ID,
					TextureWidth:  float32(atlas.Width),
					TextureHeight: float32(atlas.Height),
					Layer:         params.Layer,
				},
				Glyph: m.Glyph,
			})
		}
		penX += m.Advance * size
	}
	return items
}
