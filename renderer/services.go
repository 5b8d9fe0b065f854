// Package renderer is the entry point applications draw through: one
// renderer per item type plus the Batcher that frames each frame.
package renderer

import (
	"errors"
	"log/slog"

	"render2d/core"
	"render2d/internal/gpu"
	"render2d/internal/reactable"
)

var (
	ErrBatchNotBegun   = errors.New("Begin must be called before rendering")
	ErrNilTexture      = errors.New("texture is nil")
	ErrNilFont         = errors.New("font is nil")
	ErrLayerOutOfRange = errors.New("render layer out of range")
)

// Services is the context every renderer component is built from. The
// application owns it; nothing in the renderers is package level state.
type Services struct {
	GL     gpu.GL
	Bus    *reactable.Bus
	Logger *slog.Logger
}

func NewServices(gl gpu.GL, bus *reactable.Bus, logger *slog.Logger) (*Services, error) {
	switch {
	case gl == nil:
		return nil, core.NilArgument("gl")
	case bus == nil:
		return nil, core.NilArgument("bus")
	case logger == nil:
		return nil, core.NilArgument("logger")
	}
	return &Services{GL: gl, Bus: bus, Logger: logger}, nil
}
