package reactable

// Bus groups the reactables a render context shares between its components.
// It is built once by the application root and handed to every component
// that needs it.
type Bus struct {
	// Push carries payload-free signals: GLContextCreated, BatchHasBegun,
	// BatchHasEnded and SystemShuttingDown.
	Push      *Reactable[struct{}]
	BatchSize *Reactable[BatchSizeData]
	Viewport  *Reactable[ViewportSizeData]

	shutdown bool
}

func NewBus() *Bus {
	return &Bus{
		Push:      New[struct{}](),
		BatchSize: New[BatchSizeData](),
		Viewport:  New[ViewportSizeData](),
	}
}

// Signal pushes a payload-free notification.
func (b *Bus) Signal(id ID) {
	b.Push.Push(id, struct{}{})
}

// ContextCreated announces the GL context once; the reactors are dropped
// after delivery.
func (b *Bus) ContextCreated() {
	b.Push.PushAndUnsubscribe(GLContextCreated, struct{}{})
}

// SetBatchSize pushes a BatchSizeChanged notification for one batch type.
func (b *Bus) SetBatchSize(t BatchType, size uint32) {
	b.BatchSize.Push(BatchSizeChanged, BatchSizeData{Size: size, TypeOfBatch: t})
}

// SetViewport pushes a ViewportSizeChanged notification.
func (b *Bus) SetViewport(width, height uint32) {
	b.Viewport.Push(ViewportSizeChanged, ViewportSizeData{Width: width, Height: height})
}

// Shutdown pushes SystemShuttingDown and completes every reactable.
// Only the first call has any effect.
func (b *Bus) Shutdown() {
	if b.shutdown {
		return
	}
	b.shutdown = true
	b.Signal(SystemShuttingDown)
	b.Push.Complete()
	b.BatchSize.Complete()
	b.Viewport.Complete()
}
