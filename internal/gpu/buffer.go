package gpu

import (
	"fmt"
	"log/slog"

	"render2d/core"
	"render2d/internal/batching"
	"render2d/internal/gpudata"
	"render2d/internal/reactable"
)

// indexPattern is the two triangles of a quad relative to its first vertex.
var indexPattern = [6]uint32{0, 1, 2, 2, 1, 3}

// IndicesPerItem is the number of element indices drawn per batch item.
const IndicesPerItem = len(indexPattern)

// Buffer owns the vertex array, vertex buffer and index buffer of one item
// type. It initializes itself when the GL context is created and follows
// batch size and viewport notifications.
type Buffer[T batching.Item] struct {
	gl     GL
	layout Layout[T]
	logger *slog.Logger

	vao, vbo, ebo uint32
	initialized   bool
	batchSize     uint32
	viewport      Viewport

	subs []*reactable.Subscription
}

// NewBuffer creates a buffer for layout. No GL call is made until the
// GLContextCreated notification is pushed on bus.
func NewBuffer[T batching.Item](gl GL, bus *reactable.Bus, layout Layout[T], logger *slog.Logger) (*Buffer[T], error) {
	switch {
	case gl == nil:
		return nil, core.NilArgument("gl")
	case bus == nil:
		return nil, core.NilArgument("bus")
	case layout == nil:
		return nil, core.NilArgument("layout")
	case logger == nil:
		return nil, core.NilArgument("logger")
	}

	b := &Buffer[T]{
		gl:        gl,
		layout:    layout,
		logger:    logger.With("buffer", layout.Name()),
		batchSize: batching.DefaultBatchSize,
	}
	name := layout.Name() + "-gpu-buffer"
	b.subs = append(b.subs,
		bus.Push.Subscribe(reactable.Reactor[struct{}]{
			ID:   reactable.GLContextCreated,
			Name: name,
			OnReceive: func(struct{}) {
				b.Init()
			},
		}),
		bus.Push.Subscribe(reactable.Reactor[struct{}]{
			ID:        reactable.SystemShuttingDown,
			Name:      name,
			OnReceive: func(struct{}) { b.Dispose() },
		}),
		bus.BatchSize.Subscribe(reactable.Reactor[reactable.BatchSizeData]{
			ID:        reactable.BatchSizeChanged,
			Name:      name,
			OnReceive: b.onBatchSize,
		}),
		bus.Viewport.Subscribe(reactable.Reactor[reactable.ViewportSizeData]{
			ID:   reactable.ViewportSizeChanged,
			Name: name,
			OnReceive: func(d reactable.ViewportSizeData) {
				b.viewport = Viewport{Width: float32(d.Width), Height: float32(d.Height)}
			},
		}),
	)
	return b, nil
}

// Init creates the GL objects and uploads the default data. Calling it on an
// initialized buffer does nothing.
func (b *Buffer[T]) Init() {
	if b.initialized {
		return
	}

	b.vao = b.gl.GenVertexArray()
	b.vbo = b.gl.GenBuffer()
	b.ebo = b.gl.GenBuffer()
	b.initialized = true

	name := b.layout.Name()
	b.gl.BindVertexArray(b.vao)
	b.gl.ObjectLabel(LabelVertexArray, b.vao, name+" VAO")
	b.gl.BindBuffer(ArrayBuffer, b.vbo)
	b.gl.ObjectLabel(LabelBuffer, b.vbo, name+" VBO")
	b.gl.BindBuffer(ElementArrayBuffer, b.ebo)
	b.gl.ObjectLabel(LabelBuffer, b.ebo, name+" EBO")

	b.upload()
	b.Unbind()

	b.logger.Debug("gpu buffer initialized",
		"vao", b.vao, "vbo", b.vbo, "ebo", b.ebo, "batchSize", b.batchSize)
}

// upload fills the bound buffers for the current batch size.
func (b *Buffer[T]) upload() {
	b.gl.BufferDataF32(ArrayBuffer, b.GenerateData(), DynamicDraw)
	b.gl.BufferDataU32(ElementArrayBuffer, b.GenerateIndices(), StaticDraw)
	// Cannot fail: initialized is set before upload runs.
	_ = b.SetupVAO()
}

// SetupVAO defines the vertex attribute pointers of the bound vertex array.
func (b *Buffer[T]) SetupVAO() error {
	if !b.initialized {
		return fmt.Errorf("%s: setup vertex array: %w", b.layout.Name(), ErrBufferNotInitialized)
	}

	stride := int32(b.layout.VertexStride())
	attrs := b.layout.Attributes()
	for i, off := range AttributeOffsets(attrs) {
		b.gl.EnableVertexAttribArray(uint32(i))
		b.gl.VertexAttribPointer(uint32(i), attrs[i].Size, Float, false, stride, off)
	}
	return nil
}

// GenerateData returns zeroed vertex data for the whole batch.
func (b *Buffer[T]) GenerateData() []float32 {
	floatsPerQuad := b.layout.VertexStride() / 4 * gpudata.QuadVertices
	return make([]float32, int(b.batchSize)*floatsPerQuad)
}

// GenerateIndices returns the element indices for the whole batch.
func (b *Buffer[T]) GenerateIndices() []uint32 {
	return GenerateIndices(b.batchSize)
}

// GenerateIndices returns 6*batchSize indices repeating 0,1,2,2,1,3 offset by
// four vertices per item.
func GenerateIndices(batchSize uint32) []uint32 {
	indices := make([]uint32, 0, int(batchSize)*IndicesPerItem)
	for i := uint32(0); i < batchSize; i++ {
		base := i * gpudata.QuadVertices
		for _, idx := range indexPattern {
			indices = append(indices, base+idx)
		}
	}
	return indices
}

// UploadVertexData writes item into batch slot batchIndex of the bound
// vertex buffer.
func (b *Buffer[T]) UploadVertexData(item T, batchIndex uint32) error {
	if !b.initialized {
		return fmt.Errorf("%s: upload vertex data: %w", b.layout.Name(), ErrBufferNotInitialized)
	}
	if batchIndex >= b.batchSize {
		return fmt.Errorf("%s: index %d of %d: %w", b.layout.Name(), batchIndex, b.batchSize, ErrIndexOutOfRange)
	}

	data, err := b.layout.Vertices(item, b.viewport)
	if err != nil {
		return fmt.Errorf("%s: upload vertex data: %w", b.layout.Name(), err)
	}
	b.gl.BufferSubDataF32(ArrayBuffer, b.QuadBytes()*int(batchIndex), data)
	return nil
}

// QuadBytes is the byte size of one batch slot.
func (b *Buffer[T]) QuadBytes() int {
	return b.layout.VertexStride() * gpudata.QuadVertices
}

func (b *Buffer[T]) Bind() error {
	if !b.initialized {
		return fmt.Errorf("%s: bind: %w", b.layout.Name(), ErrBufferNotInitialized)
	}
	b.gl.BindVertexArray(b.vao)
	b.gl.BindBuffer(ArrayBuffer, b.vbo)
	return nil
}

func (b *Buffer[T]) Unbind() {
	b.gl.BindVertexArray(0)
	b.gl.BindBuffer(ArrayBuffer, 0)
}

func (b *Buffer[T]) Initialized() bool  { return b.initialized }
func (b *Buffer[T]) BatchSize() uint32  { return b.batchSize }
func (b *Buffer[T]) Viewport() Viewport { return b.viewport }
func (b *Buffer[T]) Name() string       { return b.layout.Name() }

// Handles returns the vertex array, vertex buffer and index buffer handles.
func (b *Buffer[T]) Handles() (vao, vbo, ebo uint32) {
	return b.vao, b.vbo, b.ebo
}

// SetViewport overrides the size used for NDC conversion.
func (b *Buffer[T]) SetViewport(vp Viewport) { b.viewport = vp }

// Dispose deletes the GL objects and drops every subscription. Safe to call
// more than once.
func (b *Buffer[T]) Dispose() {
	for _, sub := range b.subs {
		sub.Unsubscribe()
	}
	b.subs = nil

	if !b.initialized {
		return
	}
	b.gl.DeleteVertexArray(b.vao)
	b.gl.DeleteBuffer(b.vbo)
	b.gl.DeleteBuffer(b.ebo)
	b.vao, b.vbo, b.ebo = 0, 0, 0
	b.initialized = false
	b.logger.Debug("gpu buffer disposed")
}

func (b *Buffer[T]) onBatchSize(d reactable.BatchSizeData) {
	if d.TypeOfBatch != b.layout.BatchType() {
		return
	}
	b.batchSize = d.Size
	if !b.initialized {
		return
	}

	b.gl.BindVertexArray(b.vao)
	b.gl.BindBuffer(ArrayBuffer, b.vbo)
	b.gl.BindBuffer(ElementArrayBuffer, b.ebo)
	b.upload()
	b.Unbind()
	b.logger.Info("gpu buffer resized", "batchSize", d.Size)
}
