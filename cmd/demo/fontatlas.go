package main

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"render2d/core"
	"render2d/renderer"
)

// ErrAtlasFull is returned when the glyphs do not fit the largest atlas.
var ErrAtlasFull = errors.New("glyphs do not fit the font atlas")

const (
	minAtlasSize = 64
	maxAtlasSize = 4096
	glyphPadding = 1
)

// uploadFunc moves an image to the GPU.
type uploadFunc func(name string, img image.Image) (*core.Texture, error)

// Atlas is a rasterized font face uploaded as one texture.
type Atlas struct {
	texture    *core.Texture
	image      *image.RGBA
	glyphs     map[rune]renderer.GlyphMetrics
	lineHeight float32
}

var _ renderer.Font = (*Atlas)(nil)

// ASCII returns the printable ASCII characters.
func ASCII() []rune {
	runes := make([]rune, 0, '~'-' '+1)
	for r := ' '; r <= '~'; r++ {
		runes = append(runes, r)
	}
	return runes
}

// NewAtlas rasterizes runes of face into the smallest square atlas that
// holds them and uploads it under name.
func NewAtlas(name string, face xfont.Face, runes []rune, upload uploadFunc) (*Atlas, error) {
	if face == nil {
		return nil, core.NilArgument("face")
	}
	if upload == nil {
		return nil, core.NilArgument("upload")
	}

	var (
		img    *image.RGBA
		glyphs map[rune]renderer.GlyphMetrics
		err    error
	)
	for size := minAtlasSize; size <= maxAtlasSize; size *= 2 {
		img, glyphs, err = Rasterize(face, runes, size, size)
		if !errors.Is(err, ErrAtlasFull) {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("font %q: %w", name, err)
	}

	tex, err := upload(name, img)
	if err != nil {
		return nil, fmt.Errorf("font %q: %w", name, err)
	}
	return &Atlas{
		texture:    tex,
		image:      img,
		glyphs:     glyphs,
		lineHeight: fixedToFloat(face.Metrics().Height),
	}, nil
}

// DefaultAtlas builds an ASCII atlas from the built in 7x13 bitmap face.
func DefaultAtlas(upload uploadFunc) (*Atlas, error) {
	return NewAtlas("basicfont-7x13", basicfont.Face7x13, ASCII(), upload)
}

func (a *Atlas) Atlas() *core.Texture { return a.texture }

func (a *Atlas) Metrics(r rune) (renderer.GlyphMetrics, bool) {
	m, ok := a.glyphs[r]
	return m, ok
}

func (a *Atlas) LineHeight() float32 { return a.lineHeight }

// Image is the CPU copy of the atlas.
func (a *Atlas) Image() *image.RGBA { return a.image }

// Rasterize draws each rune of face into a width x height image, packed in
// rows. Coverage is written to every channel. Runes the face cannot draw
// are left out of the metrics.
func Rasterize(face xfont.Face, runes []rune, width, height int) (*image.RGBA, map[rune]renderer.GlyphMetrics, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	glyphs := make(map[rune]renderer.GlyphMetrics, len(runes))
	packer := newShelfPacker(width, height)

	for _, r := range runes {
		if _, dup := glyphs[r]; dup {
			continue
		}
		bounds, advance, ok := face.GlyphBounds(r)
		if !ok {
			continue
		}
		minX, minY := bounds.Min.X.Floor(), bounds.Min.Y.Floor()
		w, h := bounds.Max.X.Ceil()-minX, bounds.Max.Y.Ceil()-minY

		m := renderer.GlyphMetrics{
			Glyph:    r,
			BearingX: float32(minX),
			BearingY: float32(-minY),
			Advance:  fixedToFloat(advance),
		}
		if w <= 0 || h <= 0 {
			glyphs[r] = m
			continue
		}

		x, y, ok := packer.pack(w+glyphPadding, h+glyphPadding)
		if !ok {
			return nil, nil, fmt.Errorf("%dx%d atlas at %q: %w", width, height, r, ErrAtlasFull)
		}
		dot := fixed.P(x-minX, y-minY)
		dr, mask, maskp, _, ok := face.Glyph(dot, r)
		if !ok {
			continue
		}
		draw.DrawMask(img, dr, image.White, image.Point{}, mask, maskp, draw.Over)

		m.AtlasBounds = core.Rect{X: float32(x), Y: float32(y), Width: float32(w), Height: float32(h)}
		glyphs[r] = m
	}
	return img, glyphs, nil
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

// shelfPacker places rectangles left to right in rows.
type shelfPacker struct {
	w, h int
	x, y int
	rowH int
}

func newShelfPacker(w, h int) *shelfPacker { return &shelfPacker{w: w, h: h} }

func (s *shelfPacker) pack(w, h int) (int, int, bool) {
	if w > s.w || h > s.h {
		return 0, 0, false
	}
	if s.x+w > s.w {
		s.x = 0
		s.y += s.rowH
		s.rowH = 0
	}
	if s.y+h > s.h {
		return 0, 0, false
	}
	s.rowH = max(s.rowH, h)
	x, y := s.x, s.y
	s.x += w
	return x, y, true
}
