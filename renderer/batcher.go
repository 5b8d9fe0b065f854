package renderer

import (
	"errors"

	"render2d/core"
	"render2d/internal/gpu"
	"render2d/internal/reactable"
)

// Batcher frames a frame of rendering. Renderers accept items only between
// Begin and End; End flushes every renderer.
type Batcher struct {
	gl  gpu.GL
	bus *reactable.Bus

	ClearColor core.Color

	hasBegun  bool
	reporters []func() error
	subs      []*reactable.Subscription
}

// NewBatcher creates a Batcher that also keeps the GL viewport in step
// with ViewportSizeChanged.
func NewBatcher(s *Services) *Batcher {
	b := &Batcher{
		gl:         s.GL,
		bus:        s.Bus,
		ClearColor: core.ColorBlack,
	}
	b.subs = append(b.subs,
		s.Bus.Viewport.Subscribe(reactable.Reactor[reactable.ViewportSizeData]{
			ID:   reactable.ViewportSizeChanged,
			Name: "batcher",
			OnReceive: func(d reactable.ViewportSizeData) {
				b.gl.Viewport(0, 0, int32(d.Width), int32(d.Height))
			},
		}),
		s.Bus.Push.Subscribe(reactable.Reactor[struct{}]{
			ID:        reactable.SystemShuttingDown,
			Name:      "batcher",
			OnReceive: func(struct{}) { b.dispose() },
		}),
	)
	return b
}

// Begin starts a frame.
func (b *Batcher) Begin() {
	b.hasBegun = true
	b.bus.Signal(reactable.BatchHasBegun)
}

// End flushes every renderer and returns the errors they hit during the
// frame.
func (b *Batcher) End() error {
	b.bus.Signal(reactable.BatchHasEnded)
	b.hasBegun = false

	var errs []error
	for _, report := range b.reporters {
		if err := report(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Clear fills the framebuffer with ClearColor.
func (b *Batcher) Clear() {
	c := b.ClearColor
	b.gl.ClearColor(c.R, c.G, c.B, c.A)
	b.gl.Clear(gpu.ColorBufferBit)
}

func (b *Batcher) HasBegun() bool { return b.hasBegun }

func (b *Batcher) addReporter(fn func() error) {
	b.reporters = append(b.reporters, fn)
}

func (b *Batcher) dispose() {
	for _, sub := range b.subs {
		sub.Unsubscribe()
	}
	b.subs = nil
}
