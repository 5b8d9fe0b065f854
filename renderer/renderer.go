package renderer

import "render2d/core"

// Renderers is the full set of renderers sharing one Batcher.
type Renderers struct {
	Batcher *Batcher
	Texture *TextureRenderer
	Font    *FontRenderer
	Rect    *RectangleRenderer
	Line    *LineRenderer
}

// New builds every renderer on s. Batch sizes default to
// batching.DefaultBatchSize until a BatchSizeChanged notification arrives,
// and nothing touches the GPU before GLContextCreated.
//
// Renderers flush at End in the reverse of their construction order, so
// textures are drawn first, then rectangles, lines and text last.
func New(s *Services) (*Renderers, error) {
	if s == nil {
		return nil, core.NilArgument("services")
	}
	r := &Renderers{Batcher: NewBatcher(s)}
	built := []func(){r.Batcher.dispose}
	fail := func(err error) (*Renderers, error) {
		for i := len(built) - 1; i >= 0; i-- {
			built[i]()
		}
		return nil, err
	}

	var err error
	if r.Font, err = NewFontRenderer(s, r.Batcher); err != nil {
		return fail(err)
	}
	built = append(built, r.Font.release)
	if r.Line, err = NewLineRenderer(s, r.Batcher); err != nil {
		return fail(err)
	}
	built = append(built, r.Line.release)
	if r.Rect, err = NewRectangleRenderer(s, r.Batcher); err != nil {
		return fail(err)
	}
	built = append(built, r.Rect.release)
	if r.Texture, err = NewTextureRenderer(s, r.Batcher); err != nil {
		return fail(err)
	}
	return r, nil
}
