package renderer

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"render2d/internal/batching"
	"render2d/internal/gpu"
	"render2d/internal/reactable"
)

// pipeline ties the batch, GPU buffer and shader of one item type together
// and owns the flush sequence.
type pipeline[T batching.Item] struct {
	name    string
	gl      gpu.GL
	logger  *slog.Logger
	batcher *Batcher

	service *batching.Service[T]
	buffer  *gpu.Buffer[T]
	shader  *gpu.ShaderProgram

	// beforeDraw binds per batch state such as the sampled texture.
	beforeDraw func(first T)

	err  error
	subs []*reactable.Subscription
}

func newPipeline[T batching.Item](
	s *Services,
	batcher *Batcher,
	layout gpu.Layout[T],
	source gpu.ShaderSource,
	samplers map[string]int32,
	key batching.KeyFunc[T],
) (*pipeline[T], error) {
	name := layout.Name()
	service, err := batching.NewService(s.Bus, layout.BatchType(), key, s.Logger)
	if err != nil {
		return nil, fmt.Errorf("%s batch: %w", name, err)
	}
	buffer, err := gpu.NewBuffer(s.GL, s.Bus, layout, s.Logger)
	if err != nil {
		service.Dispose()
		return nil, fmt.Errorf("%s buffer: %w", name, err)
	}
	shader, err := gpu.NewShaderProgram(s.GL, s.Bus, name, layout.BatchType(), source, samplers, s.Logger)
	if err != nil {
		service.Dispose()
		buffer.Dispose()
		return nil, fmt.Errorf("%s shader: %w", name, err)
	}

	p := &pipeline[T]{
		name:    name,
		gl:      s.GL,
		logger:  s.Logger.With("renderer", name),
		batcher: batcher,
		service: service,
		buffer:  buffer,
		shader:  shader,
	}
	service.OnReadyForRendering(func() { p.record(p.flush()) })

	reactorName := name + "-renderer"
	p.subs = append(p.subs,
		s.Bus.Push.Subscribe(reactable.Reactor[struct{}]{
			ID:        reactable.BatchHasBegun,
			Name:      reactorName,
			OnReceive: func(struct{}) { p.err = nil },
		}),
		s.Bus.Push.Subscribe(reactable.Reactor[struct{}]{
			ID:   reactable.BatchHasEnded,
			Name: reactorName,
			OnReceive: func(struct{}) {
				if p.service.HasReady() {
					p.record(p.flush())
				}
			},
		}),
		s.Bus.Push.Subscribe(reactable.Reactor[struct{}]{
			ID:        reactable.SystemShuttingDown,
			Name:      reactorName,
			OnReceive: func(struct{}) { p.dispose() },
		}),
	)
	batcher.addReporter(p.Err)
	return p, nil
}

func (p *pipeline[T]) add(item T) error {
	if !p.batcher.HasBegun() {
		return ErrBatchNotBegun
	}
	if layer := item.RenderLayer(); layer < math.MinInt32 || layer > math.MaxInt32 {
		return fmt.Errorf("%w: %d", ErrLayerOutOfRange, layer)
	}
	return p.service.Add(item)
}

// flush uploads every ready item, draws them back to front by layer and
// empties the batch. The batch is emptied even when the GPU side fails so
// the renderer keeps accepting items.
func (p *pipeline[T]) flush() error {
	items := p.service.ReadyItems()
	if len(items) == 0 {
		return nil
	}
	defer p.service.EmptyBatch()

	batching.SortByLayer(items)

	p.gl.PushDebugGroup(p.name + " batch")
	defer p.gl.PopDebugGroup()

	if err := p.buffer.Bind(); err != nil {
		return err
	}
	defer p.buffer.Unbind()

	for i, item := range items {
		if err := p.buffer.UploadVertexData(item, uint32(i)); err != nil {
			return fmt.Errorf("upload %s item %d: %w", p.name, i, err)
		}
	}

	if err := p.shader.Use(); err != nil {
		return err
	}
	if p.beforeDraw != nil {
		p.beforeDraw(items[0])
	}

	for _, g := range batching.GroupByLayer(items) {
		p.gl.PushDebugGroup(fmt.Sprintf("%s layer %d", p.name, g.Layer))
		p.gl.DrawElements(
			gpu.Triangles,
			int32(g.Len()*gpu.IndicesPerItem),
			gpu.UnsignedInt,
			g.Start*gpu.IndicesPerItem*4,
		)
		p.gl.PopDebugGroup()
	}

	p.logger.Log(context.Background(), levelTrace, "flushed batch", "items", len(items))
	return nil
}

// record keeps the first flush error of the frame.
func (p *pipeline[T]) record(err error) {
	if err == nil {
		return
	}
	p.logger.Error("flush failed", "err", err)
	if p.err == nil {
		p.err = fmt.Errorf("%s renderer: %w", p.name, err)
	}
}

// Err returns the first flush error since the last Begin.
func (p *pipeline[T]) Err() error { return p.err }

func (p *pipeline[T]) dispose() {
	for _, sub := range p.subs {
		sub.Unsubscribe()
	}
	p.subs = nil
}

// release tears down the pipeline and everything it owns without a
// shutdown notification.
func (p *pipeline[T]) release() {
	p.dispose()
	p.service.Dispose()
	p.buffer.Dispose()
	p.shader.Dispose()
}

const levelTrace = slog.LevelDebug - 4
