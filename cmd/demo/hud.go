package main

import (
	"fmt"
	"strings"

	"render2d/core"
	"render2d/math"
	"render2d/renderer"
)

// DebugOverlay collects lines of debug text for one frame.
type DebugOverlay struct {
	lines []string
}

func (do *DebugOverlay) AddLine(format string, args ...any) {
	do.lines = append(do.lines, fmt.Sprintf(format, args...))
}

func (do *DebugOverlay) Clear() {
	do.lines = do.lines[:0]
}

func (do *DebugOverlay) Text() string {
	return strings.Join(do.lines, "\n")
}

// Draw renders the overlay on a translucent panel in the top left corner.
func (do *DebugOverlay) Draw(r *renderer.Renderers, font renderer.Font, layer int) error {
	if len(do.lines) == 0 {
		return nil
	}
	const (
		margin  = 8
		padding = 6
	)
	width := float32(0)
	for _, l := range do.lines {
		width = max(width, float32(len(l)))
	}
	m, _ := font.Metrics('M')
	width = width*m.Advance + 2*padding
	height := float32(len(do.lines))*font.LineHeight() + 2*padding

	err := r.Rect.Render(renderer.RectShape{
		Position:     math.NewVec2(margin+width/2, margin+height/2),
		Width:        width,
		Height:       height,
		Color:        core.Color{A: 0.55},
		IsSolid:      true,
		CornerRadius: core.UniformCornerRadius(4),
	}, layer)
	if err != nil {
		return err
	}
	return r.Font.Render(font, do.Text(), margin+padding, margin+padding+m.BearingY, renderer.TextParams{
		Tint:  core.ColorWhite,
		Layer: layer + 1,
	})
}
