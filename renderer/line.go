package renderer

import (
	"render2d/core"
	"render2d/internal/batching"
	"render2d/internal/gpu"
	"render2d/math"
)

// Line is a segment to draw. Thickness below 1 is drawn as 1.
type Line struct {
	P1, P2    math.Vec2
	Color     core.Color
	Thickness float32
}

// LineRenderer draws thick line segments.
type LineRenderer struct {
	p *pipeline[batching.LineItem]
}

func NewLineRenderer(s *Services, batcher *Batcher) (*LineRenderer, error) {
	p, err := newPipeline[batching.LineItem](s, batcher, gpu.LineLayout{}, gpu.LineShader, nil, nil)
	if err != nil {
		return nil, err
	}
	return &LineRenderer{p: p}, nil
}

func (r *LineRenderer) Render(line Line, layer int) error {
	return r.p.add(batching.LineItem{
		P1:        line.P1,
		P2:        line.P2,
		Color:     line.Color,
		Thickness: line.Thickness,
		Layer:     layer,
	})
}

func (r *LineRenderer) RenderLine(p1, p2 math.Vec2, color core.Color, thickness float32, layer int) error {
	return r.Render(Line{P1: p1, P2: p2, Color: color, Thickness: thickness}, layer)
}

// Err returns the first flush error since the last Begin.
func (r *LineRenderer) Err() error { return r.p.Err() }

func (r *LineRenderer) release() { r.p.release() }
