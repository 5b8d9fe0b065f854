package renderer_test

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"render2d/core"
	"render2d/internal/gpu"
	"render2d/internal/gpu/gputest"
	"render2d/internal/gpudata"
	"render2d/internal/reactable"
	rmath "render2d/math"
	"render2d/renderer"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setup(t *testing.T, contextCreated bool) (*renderer.Renderers, *gputest.GL, *reactable.Bus) {
	t.Helper()
	gl := gputest.New()
	bus := reactable.NewBus()
	s, err := renderer.NewServices(gl, bus, discardLogger())
	require.NoError(t, err)
	r, err := renderer.New(s)
	require.NoError(t, err)

	bus.SetViewport(800, 600)
	if contextCreated {
		bus.ContextCreated()
	}
	gl.Reset()
	return r, gl, bus
}

func TestNewServicesNilArguments(t *testing.T) {
	_, err := renderer.NewServices(nil, reactable.NewBus(), discardLogger())
	require.ErrorIs(t, err, core.ErrNilArgument)
	_, err = renderer.NewServices(gputest.New(), nil, discardLogger())
	require.ErrorIs(t, err, core.ErrNilArgument)
	_, err = renderer.NewServices(gputest.New(), reactable.NewBus(), nil)
	require.ErrorIs(t, err, core.ErrNilArgument)

	_, err = renderer.New(nil)
	require.ErrorIs(t, err, core.ErrNilArgument)
}

func TestRenderRequiresBegin(t *testing.T) {
	r, gl, _ := setup(t, true)

	err := r.Line.RenderLine(rmath.NewVec2(0, 0), rmath.NewVec2(10, 10), core.ColorRed, 2, 0)
	require.ErrorIs(t, err, renderer.ErrBatchNotBegun)

	r.Batcher.Begin()
	require.NoError(t, r.Line.RenderLine(rmath.NewVec2(0, 0), rmath.NewVec2(10, 10), core.ColorRed, 2, 0))
	require.NoError(t, r.Batcher.End())
	assert.Len(t, gl.Draws, 1)

	err = r.Rect.Render(renderer.RectShape{Width: 1, Height: 1}, 0)
	require.ErrorIs(t, err, renderer.ErrBatchNotBegun)
}

func TestEndDrawsInLayerOrder(t *testing.T) {
	r, gl, _ := setup(t, true)

	// The red channel identifies the submission order.
	layers := []int{5, -3, 0, -3}
	r.Batcher.Begin()
	for i, layer := range layers {
		line := renderer.Line{
			P1:        rmath.NewVec2(0, 0),
			P2:        rmath.NewVec2(100, 0),
			Color:     core.Color{R: float32(i+1) / 10, A: 1},
			Thickness: 1,
		}
		require.NoError(t, r.Line.Render(line, layer))
	}
	require.NoError(t, r.Batcher.End())

	require.Len(t, gl.SubData, 4)
	var order []float32
	for i, sd := range gl.SubData {
		assert.Equal(t, i*gpudata.LineStride*gpudata.QuadVertices, sd.Offset)
		order = append(order, sd.Data[2])
	}
	assert.InDeltaSlice(t, []float32{0.2, 0.4, 0.3, 0.1}, order, 1e-6)

	assert.Equal(t, []gputest.Draw{
		{Mode: gpu.Triangles, Count: 12, Type: gpu.UnsignedInt, Offset: 0},
		{Mode: gpu.Triangles, Count: 6, Type: gpu.UnsignedInt, Offset: 48},
		{Mode: gpu.Triangles, Count: 6, Type: gpu.UnsignedInt, Offset: 72},
	}, gl.Draws)
	assert.Zero(t, gl.DebugDepth())
	assert.Equal(t, 2, gl.MaxDebugDepth)
}

func TestFullBatchFlushesBeforeAccepting(t *testing.T) {
	r, gl, bus := setup(t, true)
	bus.SetBatchSize(reactable.LineBatch, 2)
	gl.Reset()

	r.Batcher.Begin()
	for i := 0; i < 5; i++ {
		require.NoError(t, r.Line.RenderLine(rmath.NewVec2(0, 0), rmath.NewVec2(float32(i+1), 0), core.ColorWhite, 1, 0))
	}
	assert.Len(t, gl.Draws, 2)

	require.NoError(t, r.Batcher.End())
	require.Len(t, gl.Draws, 3)
	assert.Equal(t, int32(12), gl.Draws[0].Count)
	assert.Equal(t, int32(12), gl.Draws[1].Count)
	assert.Equal(t, int32(6), gl.Draws[2].Count)
}

func TestTextureChangeFlushes(t *testing.T) {
	r, gl, _ := setup(t, true)
	a := &core.Texture{ID: 7, Width: 32, Height: 32}
	b := &core.Texture{ID: 9, Width: 16, Height: 16}

	r.Batcher.Begin()
	require.NoError(t, r.Texture.Render(a, 10, 10, 0))
	require.NoError(t, r.Texture.Render(a, 50, 10, 0))
	assert.Empty(t, gl.Draws)

	require.NoError(t, r.Texture.Render(b, 90, 10, 0))
	require.Len(t, gl.Draws, 1)
	assert.Equal(t, int32(12), gl.Draws[0].Count)

	require.NoError(t, r.Batcher.End())
	require.Len(t, gl.Draws, 2)
	assert.Equal(t, int32(6), gl.Draws[1].Count)

	binds := gl.Named("BindTexture")
	require.Len(t, binds, 2)
	assert.Equal(t, []any{gpu.Texture2D, uint32(7)}, binds[0].Args)
	assert.Equal(t, []any{gpu.Texture2D, uint32(9)}, binds[1].Args)
	assert.Equal(t, 2, gl.Count("ActiveTexture"))
}

func TestRenderRegionDefaults(t *testing.T) {
	r, gl, _ := setup(t, true)
	tex := &core.Texture{ID: 3, Width: 64, Height: 64}

	r.Batcher.Begin()
	require.NoError(t, r.Texture.RenderRegion(tex, renderer.TextureParams{
		Src:  core.Rect{Width: 32, Height: 64},
		Dest: core.Rect{X: 400, Y: 300, Width: 32, Height: 64},
	}))
	require.NoError(t, r.Batcher.End())

	require.Len(t, gl.SubData, 1)
	data := gl.SubData[0].Data
	// Top left vertex: position, UV, white tint.
	assert.InDeltaSlice(t, []float32{-0.04, 0.10666667, 0, 0, 1, 1, 1, 1}, data[:gpudata.TextureFloats], 1e-5)
	// Top right UV reaches half the texture width.
	assert.InDelta(t, 0.5, data[2*gpudata.TextureFloats+2], 1e-6)
}

func TestNilTexture(t *testing.T) {
	r, _, _ := setup(t, true)
	r.Batcher.Begin()
	require.ErrorIs(t, r.Texture.Render(nil, 0, 0, 0), renderer.ErrNilTexture)
	require.ErrorIs(t, r.Texture.RenderRegion(nil, renderer.TextureParams{}), renderer.ErrNilTexture)
	require.ErrorIs(t, r.Font.Render(nil, "x", 0, 0, renderer.TextParams{}), renderer.ErrNilFont)
	require.NoError(t, r.Batcher.End())
}

func TestLayerOutOfRange(t *testing.T) {
	if math.MaxInt == math.MaxInt32 {
		t.Skip("int is 32 bits")
	}
	r, _, _ := setup(t, true)
	layer := math.MaxInt32
	layer++

	r.Batcher.Begin()
	err := r.Rect.Render(renderer.RectShape{Width: 10, Height: 10, IsSolid: true}, layer)
	require.ErrorIs(t, err, renderer.ErrLayerOutOfRange)
	require.NoError(t, r.Batcher.End())
}

func TestEndReportsFlushErrors(t *testing.T) {
	r, gl, bus := setup(t, false)

	r.Batcher.Begin()
	require.NoError(t, r.Rect.Render(renderer.RectShape{Width: 10, Height: 10, IsSolid: true}, 0))
	err := r.Batcher.End()
	require.ErrorIs(t, err, gpu.ErrBufferNotInitialized)
	assert.Empty(t, gl.Draws)
	assert.Zero(t, gl.DebugDepth())

	// Errors are per frame, and the failed batch was dropped.
	bus.ContextCreated()
	r.Batcher.Begin()
	require.NoError(t, r.Batcher.End())
	assert.NoError(t, r.Rect.Err())
}

func TestClear(t *testing.T) {
	r, gl, _ := setup(t, true)
	r.Batcher.ClearColor = core.ColorBlue
	r.Batcher.Clear()

	assert.Equal(t, []any{float32(0), float32(0), float32(1), float32(1)}, gl.Named("ClearColor")[0].Args)
	assert.Equal(t, []any{gpu.ColorBufferBit}, gl.Named("Clear")[0].Args)
}

func TestShutdownReleasesGPUObjects(t *testing.T) {
	r, gl, bus := setup(t, true)
	bus.Shutdown()

	assert.Equal(t, 4, gl.Count("DeleteProgram"))
	assert.Equal(t, 4, gl.Count("DeleteVertexArray"))
	assert.Equal(t, 8, gl.Count("DeleteBuffer"))
	assert.Empty(t, bus.Push.Subscriptions())
	assert.Empty(t, bus.BatchSize.Subscriptions())
	assert.Empty(t, bus.Viewport.Subscriptions())

	// Renderers no longer flush once shut down.
	r.Batcher.Begin()
	require.NoError(t, r.Rect.Render(renderer.RectShape{Width: 10, Height: 10, IsSolid: true}, 0))
	require.NoError(t, r.Batcher.End())
	assert.Empty(t, gl.Draws)
}

func TestViewportFollowsNotifications(t *testing.T) {
	_, gl, bus := setup(t, true)
	bus.SetViewport(1024, 768)

	calls := gl.Named("Viewport")
	require.Len(t, calls, 1)
	assert.Equal(t, []any{int32(0), int32(0), int32(1024), int32(768)}, calls[0].Args)
}

func TestInvalidGradientRejectedAtRender(t *testing.T) {
	r, gl, _ := setup(t, true)

	r.Batcher.Begin()
	require.NoError(t, r.Rect.Render(renderer.RectShape{
		Position: rmath.NewVec2(50, 50),
		Width:    20,
		Height:   20,
		Color:    core.ColorRed,
		IsSolid:  true,
	}, 0))
	err := r.Rect.Render(renderer.RectShape{
		Width:    20,
		Height:   20,
		IsSolid:  true,
		Gradient: core.ColorGradient(99),
	}, 0)
	require.ErrorIs(t, err, gpu.ErrInvalidGradient)
	require.NoError(t, r.Batcher.End())

	require.Len(t, gl.SubData, 1)
	assert.Equal(t, []gputest.Draw{
		{Mode: gpu.Triangles, Count: 6, Type: gpu.UnsignedInt, Offset: 0},
	}, gl.Draws)
}

func TestNewReleasesPartialRenderers(t *testing.T) {
	bus := reactable.NewBus()
	s := &renderer.Services{GL: gputest.New(), Bus: bus}

	_, err := renderer.New(s)
	require.ErrorIs(t, err, core.ErrNilArgument)
	assert.Empty(t, bus.Push.Subscriptions())
	assert.Empty(t, bus.BatchSize.Subscriptions())
	assert.Empty(t, bus.Viewport.Subscriptions())
}
