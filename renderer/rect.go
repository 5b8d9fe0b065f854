package renderer

import (
	"render2d/core"
	"render2d/internal/batching"
	"render2d/internal/gpu"
	"render2d/math"
)

// RectShape is a rectangle to draw. Position is its center.
type RectShape struct {
	Position      math.Vec2
	Width, Height float32
	Color         core.Color
	// IsSolid fills the shape; otherwise only a border of BorderThickness
	// is drawn.
	IsSolid         bool
	BorderThickness float32
	CornerRadius    core.CornerRadius
	Gradient        core.ColorGradient
	GradientStart   core.Color
	GradientStop    core.Color
}

// RectangleRenderer draws rounded, optionally bordered rectangles.
type RectangleRenderer struct {
	p *pipeline[batching.RectItem]
}

func NewRectangleRenderer(s *Services, batcher *Batcher) (*RectangleRenderer, error) {
	p, err := newPipeline[batching.RectItem](s, batcher, gpu.RectLayout{}, gpu.RectShader, nil, nil)
	if err != nil {
		return nil, err
	}
	return &RectangleRenderer{p: p}, nil
}

// Render queues shape. An unknown Gradient is rejected before it is queued.
func (r *RectangleRenderer) Render(shape RectShape, layer int) error {
	item := batching.RectItem{
		Position:        shape.Position,
		Width:           shape.Width,
		Height:          shape.Height,
		Color:           shape.Color,
		IsSolid:         shape.IsSolid,
		BorderThickness: shape.BorderThickness,
		CornerRadius:    shape.CornerRadius,
		Gradient:        shape.Gradient,
		GradientStart:   shape.GradientStart,
		GradientStop:    shape.GradientStop,
		Layer:           layer,
	}
	if _, err := gpu.GradientColors(item); err != nil {
		return err
	}
	return r.p.add(item)
}

// Err returns the first flush error since the last Begin.
func (r *RectangleRenderer) Err() error { return r.p.Err() }

func (r *RectangleRenderer) release() { r.p.release() }
