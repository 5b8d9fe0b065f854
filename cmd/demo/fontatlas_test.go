package main

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"

	"render2d/core"
)

func fakeUpload(uploaded *[]string) uploadFunc {
	return func(name string, img image.Image) (*core.Texture, error) {
		*uploaded = append(*uploaded, name)
		b := img.Bounds()
		return &core.Texture{ID: uint32(len(*uploaded)), Name: name, Width: uint32(b.Dx()), Height: uint32(b.Dy())}, nil
	}
}

func TestRasterizeMetrics(t *testing.T) {
	img, glyphs, err := Rasterize(basicfont.Face7x13, []rune("AB"), 64, 64)
	require.NoError(t, err)
	require.Len(t, glyphs, 2)

	a := glyphs['A']
	assert.Equal(t, core.Rect{X: 0, Y: 0, Width: 6, Height: 13}, a.AtlasBounds)
	assert.Equal(t, float32(11), a.BearingY)
	assert.Equal(t, float32(7), a.Advance)

	b := glyphs['B']
	assert.Equal(t, float32(6+glyphPadding), b.AtlasBounds.X)

	covered := false
	for y := 0; y < 13 && !covered; y++ {
		for x := 0; x < 6; x++ {
			if img.RGBAAt(x, y).R > 0 {
				covered = true
				break
			}
		}
	}
	assert.True(t, covered, "glyph A left no coverage in the atlas")
}

func TestRasterizeAtlasFull(t *testing.T) {
	_, _, err := Rasterize(basicfont.Face7x13, ASCII(), 16, 16)
	require.ErrorIs(t, err, ErrAtlasFull)
}

func TestNewAtlasGrowsToFit(t *testing.T) {
	var uploaded []string
	atlas, err := DefaultAtlas(fakeUpload(&uploaded))
	require.NoError(t, err)
	assert.Equal(t, uint32(128), atlas.Atlas().Width)
	assert.Equal(t, float32(13), atlas.LineHeight())
	assert.Len(t, atlas.glyphs, len(ASCII()))

	_, ok := atlas.Metrics('~')
	assert.True(t, ok)
	_, ok = atlas.Metrics('é')
	assert.False(t, ok)

	assert.Equal(t, []string{"basicfont-7x13"}, uploaded)
}

func TestNewAtlasNilArguments(t *testing.T) {
	_, err := NewAtlas("x", nil, ASCII(), fakeUpload(new([]string)))
	require.ErrorIs(t, err, core.ErrNilArgument)
	_, err = NewAtlas("x", basicfont.Face7x13, ASCII(), nil)
	require.ErrorIs(t, err, core.ErrNilArgument)
}

func TestShelfPacker(t *testing.T) {
	p := newShelfPacker(10, 10)
	x, y, ok := p.pack(6, 4)
	require.True(t, ok)
	assert.Equal(t, [2]int{0, 0}, [2]int{x, y})

	x, y, ok = p.pack(6, 3)
	require.True(t, ok)
	assert.Equal(t, [2]int{0, 4}, [2]int{x, y})

	_, _, ok = p.pack(6, 4)
	assert.False(t, ok)
	_, _, ok = p.pack(11, 1)
	assert.False(t, ok)
}

func TestChecker(t *testing.T) {
	a := color.RGBA{R: 1, A: 255}
	b := color.RGBA{B: 1, A: 255}
	img := checker(16, a, b)
	assert.Equal(t, a, img.RGBAAt(0, 0))
	assert.Equal(t, b, img.RGBAAt(2, 0))
	assert.Equal(t, a, img.RGBAAt(2, 2))
}
