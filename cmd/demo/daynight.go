package main

import (
	"fmt"

	"github.com/chewxy/math32"

	"render2d/core"
	"render2d/math"
	"render2d/renderer"
)

// dayPalette holds the sky colours for one key time of day.
type dayPalette struct {
	t       float32 // normalised time 0..1
	zenith  core.Color
	horizon core.Color
	sun     core.Color
}

// palettes is ordered by t and wraps (0 == 1).
var palettes = []dayPalette{
	{ // noon
		t:       0.00,
		zenith:  core.Color{R: 0.20, G: 0.42, B: 0.90, A: 1},
		horizon: core.Color{R: 0.58, G: 0.75, B: 0.95, A: 1},
		sun:     core.Color{R: 1.00, G: 0.98, B: 0.92, A: 1},
	},
	{ // golden hour
		t:       0.22,
		zenith:  core.Color{R: 0.14, G: 0.20, B: 0.60, A: 1},
		horizon: core.Color{R: 0.90, G: 0.52, B: 0.18, A: 1},
		sun:     core.Color{R: 1.00, G: 0.65, B: 0.25, A: 1},
	},
	{ // dusk
		t:       0.30,
		zenith:  core.Color{R: 0.08, G: 0.10, B: 0.28, A: 1},
		horizon: core.Color{R: 0.50, G: 0.22, B: 0.28, A: 1},
		sun:     core.Color{R: 0.70, G: 0.40, B: 0.55, A: 1},
	},
	{ // midnight
		t:       0.50,
		zenith:  core.Color{R: 0.02, G: 0.03, B: 0.10, A: 1},
		horizon: core.Color{R: 0.04, G: 0.04, B: 0.08, A: 1},
		sun:     core.Color{R: 0.40, G: 0.45, B: 0.65, A: 1}, // moon
	},
	{ // dawn
		t:       0.78,
		zenith:  core.Color{R: 0.12, G: 0.18, B: 0.55, A: 1},
		horizon: core.Color{R: 0.88, G: 0.45, B: 0.22, A: 1},
		sun:     core.Color{R: 1.00, G: 0.60, B: 0.28, A: 1},
	},
}

// DayNight drives the animated sky behind the demo scene.
type DayNight struct {
	Time   float32 // 0..1: 0=noon, 0.25=sunset, 0.5=midnight, 0.75=sunrise
	Speed  float32 // full-cycle duration in seconds
	Active bool
}

func NewDayNight() *DayNight {
	return &DayNight{Speed: 60, Active: true}
}

func (dn *DayNight) Update(dt float32) {
	if !dn.Active {
		return
	}
	dn.Time += dt / dn.Speed
	if dn.Time >= 1 {
		dn.Time -= 1
	}
}

func lerpColor(a, b core.Color, t float32) core.Color {
	return core.Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: 1,
	}
}

// samplePalette interpolates between the keyframes around t.
func samplePalette(t float32) dayPalette {
	n := len(palettes)
	for i := range palettes {
		a, b := palettes[i], palettes[(i+1)%n]
		tb := b.t
		if i == n-1 {
			tb = 1
		}
		if t < a.t || t >= tb {
			continue
		}
		localT := (t - a.t) / (tb - a.t)
		return dayPalette{
			t:       t,
			zenith:  lerpColor(a.zenith, b.zenith, localT),
			horizon: lerpColor(a.horizon, b.horizon, localT),
			sun:     lerpColor(a.sun, b.sun, localT),
		}
	}
	return palettes[0]
}

// Draw renders the sky gradient and the sun (or moon) arcing across a
// width x height viewport.
func (dn *DayNight) Draw(r *renderer.Renderers, width, height float32, layer int) error {
	p := samplePalette(dn.Time)
	r.Batcher.ClearColor = p.horizon

	err := r.Rect.Render(renderer.RectShape{
		Position:      math.NewVec2(width/2, height/2),
		Width:         width,
		Height:        height,
		IsSolid:       true,
		Gradient:      core.GradientVertical,
		GradientStart: p.horizon,
		GradientStop:  p.zenith,
	}, layer)
	if err != nil {
		return err
	}

	// Noon is overhead; the body sets at 0.25 and rises again at 0.75.
	angle := dn.Time * 2 * math32.Pi
	center := math.NewVec2(width/2, height*0.9)
	pos := center.Add(math.NewVec2(math32.Sin(angle), -math32.Cos(angle)).Mul(height * 0.7))
	const size = 48
	return r.Rect.Render(renderer.RectShape{
		Position:     pos,
		Width:        size,
		Height:       size,
		Color:        p.sun,
		IsSolid:      true,
		CornerRadius: core.UniformCornerRadius(size / 2),
	}, layer+1)
}

// TimeOfDayStr returns a human-readable time label.
func (dn *DayNight) TimeOfDayStr() string {
	hours := dn.Time*24 + 12
	h := int(hours) % 24
	m := int((hours - float32(int(hours))) * 60)
	period := "AM"
	displayH := h
	switch {
	case h == 0:
		displayH = 12
	case h == 12:
		period = "PM"
	case h > 12:
		displayH = h - 12
		period = "PM"
	}
	return fmt.Sprintf("%02d:%02d %s", displayH, m, period)
}
