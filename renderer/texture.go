package renderer

import (
	"render2d/core"
	"render2d/internal/batching"
	"render2d/internal/gpu"
)

// TextureParams controls how a texture region is drawn.
type TextureParams struct {
	// Src is the region of the texture to sample, in texture pixels.
	Src core.Rect
	// Dest X/Y is the center of the drawn quad; Width/Height its unscaled size.
	Dest core.Rect
	// Size scales Dest. Zero means 1.
	Size float32
	// Angle rotates the quad clockwise around its center, in degrees.
	Angle float32
	// Tint multiplies the sampled color. The zero value means white.
	Tint    core.Color
	Effects core.RenderEffects
	Layer   int
}

// TextureRenderer draws textured quads, one batch per texture.
type TextureRenderer struct {
	p *pipeline[batching.TextureItem]
}

func NewTextureRenderer(s *Services, batcher *Batcher) (*TextureRenderer, error) {
	p, err := newPipeline[batching.TextureItem](s, batcher, gpu.TextureLayout{}, gpu.TextureShader,
		map[string]int32{gpu.MainTextureSampler: 0}, batching.TextureKey)
	if err != nil {
		return nil, err
	}
	p.beforeDraw = func(first batching.TextureItem) { bindTexture(s.GL, first.TextureID) }
	return &TextureRenderer{p: p}, nil
}

// Render draws the whole texture centered on (x, y).
func (r *TextureRenderer) Render(tex *core.Texture, x, y float32, layer int) error {
	if tex == nil {
		return ErrNilTexture
	}
	w, h := float32(tex.Width), float32(tex.Height)
	return r.RenderRegion(tex, TextureParams{
		Src:   core.Rect{Width: w, Height: h},
		Dest:  core.Rect{X: x, Y: y, Width: w, Height: h},
		Layer: layer,
	})
}

// RenderRegion draws part of a texture.
func (r *TextureRenderer) RenderRegion(tex *core.Texture, params TextureParams) error {
	if tex == nil {
		return ErrNilTexture
	}
	return r.p.add(textureItem(tex, params))
}

// Err returns the first flush error since the last Begin.
func (r *TextureRenderer) Err() error { return r.p.Err() }

func (r *TextureRenderer) release() { r.p.release() }

func textureItem(tex *core.Texture, params TextureParams) batching.TextureItem {
	if params.Size == 0 {
		params.Size = 1
	}
	if params.Tint.IsEmpty() {
		params.Tint = core.ColorWhite
	}
	return batching.TextureItem{
		Src:           params.Src,
		Dest:          params.Dest,
		Size:          params.Size,
		Angle:         params.Angle,
		Tint:          params.Tint,
		Effects:       params.Effects,
		TextureID:     tex.ID,
		TextureWidth:  float32(tex.Width),
		TextureHeight: float32(tex.Height),
		Layer:         params.Layer,
	}
}

func bindTexture(g gpu.GL, id uint32) {
	g.ActiveTexture(gpu.Texture0)
	g.BindTexture(gpu.Texture2D, id)
}
