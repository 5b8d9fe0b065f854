package renderer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"render2d/core"
	"render2d/renderer"
)

type stubFont struct {
	atlas   *core.Texture
	metrics map[rune]renderer.GlyphMetrics
}

func (f stubFont) Atlas() *core.Texture { return f.atlas }
func (f stubFont) LineHeight() float32  { return 12 }
func (f stubFont) Metrics(r rune) (renderer.GlyphMetrics, bool) {
	m, ok := f.metrics[r]
	return m, ok
}

func newStubFont(withFallback bool) stubFont {
	f := stubFont{
		atlas: &core.Texture{ID: 11, Width: 64, Height: 32},
		metrics: map[rune]renderer.GlyphMetrics{
			'A': {Glyph: 'A', AtlasBounds: core.Rect{X: 0, Y: 0, Width: 8, Height: 10}, BearingY: 10, Advance: 9},
			'B': {Glyph: 'B', AtlasBounds: core.Rect{X: 8, Y: 0, Width: 8, Height: 10}, BearingY: 10, Advance: 9},
			' ': {Glyph: ' ', Advance: 4},
		},
	}
	if withFallback {
		f.metrics['?'] = renderer.GlyphMetrics{Glyph: '?', AtlasBounds: core.Rect{X: 16, Width: 6, Height: 10}, BearingY: 10, Advance: 7}
	}
	return f
}

func TestLayoutTextPositions(t *testing.T) {
	items := renderer.LayoutText(newStubFont(false), "AB\nA", 100, 50, renderer.TextParams{Layer: 2})
	require.Len(t, items, 3)

	assert.Equal(t, 'A', items[0].Glyph)
	assert.Equal(t, core.Rect{X: 104, Y: 45, Width: 8, Height: 10}, items[0].Dest)
	assert.Equal(t, core.Rect{X: 113, Y: 45, Width: 8, Height: 10}, items[1].Dest)
	assert.Equal(t, core.Rect{X: 104, Y: 57, Width: 8, Height: 10}, items[2].Dest)

	for _, it := range items {
		assert.Equal(t, uint32(11), it.TextureID)
		assert.Equal(t, float32(64), it.TextureWidth)
		assert.Equal(t, float32(1), it.Size)
		assert.Equal(t, core.ColorWhite, it.Tint)
		assert.Equal(t, 2, it.Layer)
	}
	assert.Equal(t, core.Rect{X: 8, Width: 8, Height: 10}, items[1].Src)
}

func TestLayoutTextSpacesAndScale(t *testing.T) {
	items := renderer.LayoutText(newStubFont(false), "A A", 0, 20, renderer.TextParams{Size: 2})
	require.Len(t, items, 2)
	// Second glyph starts after (9 + 4) * 2 pixels.
	assert.Equal(t, float32(26+8), items[1].Dest.X)
	assert.Equal(t, float32(10), items[1].Dest.Y)
}

func TestLayoutTextFallbackGlyph(t *testing.T) {
	items := renderer.LayoutText(newStubFont(true), "AZ", 0, 10, renderer.TextParams{})
	require.Len(t, items, 2)
	assert.Equal(t, renderer.FallbackGlyph, items[1].Glyph)

	items = renderer.LayoutText(newStubFont(false), "AZB", 0, 10, renderer.TextParams{})
	require.Len(t, items, 2)
	assert.Equal(t, 'B', items[1].Glyph)
	// Unknown characters without a fallback take no space.
	assert.Equal(t, float32(13), items[1].Dest.X)
}

func TestFontRendererBindsAtlas(t *testing.T) {
	r, gl, _ := setup(t, true)

	r.Batcher.Begin()
	require.NoError(t, r.Font.Render(newStubFont(false), "AB", 0, 20, renderer.TextParams{}))
	require.NoError(t, r.Batcher.End())

	require.Len(t, gl.Draws, 1)
	assert.Equal(t, int32(12), gl.Draws[0].Count)
	binds := gl.Named("BindTexture")
	require.Len(t, binds, 1)
	assert.Equal(t, uint32(11), binds[0].Args[1])
}

func TestFontRenderRequiresBeginForEmptyText(t *testing.T) {
	r, _, _ := setup(t, true)
	font := newStubFont(false)

	require.ErrorIs(t, r.Font.Render(font, "", 0, 0, renderer.TextParams{}), renderer.ErrBatchNotBegun)
	require.ErrorIs(t, r.Font.Render(font, "   ", 0, 0, renderer.TextParams{}), renderer.ErrBatchNotBegun)

	r.Batcher.Begin()
	require.NoError(t, r.Font.Render(font, "", 0, 0, renderer.TextParams{}))
	require.NoError(t, r.Batcher.End())
}
