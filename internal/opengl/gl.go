package opengl

import (
	"context"
	"fmt"
	"log/slog"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"render2d/internal/gpu"
)

var _ gpu.GL = (*GL)(nil)

// GL forwards gpu.GL calls to the OpenGL 4.1 core profile.
type GL struct {
	logger *slog.Logger
}

// Init loads the OpenGL function pointers.
// Must be called after the GLFW window context is made current.
func Init(logger *slog.Logger) (*GL, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	logger.Info("OpenGL initialized", "version", version)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)

	return &GL{logger: logger}, nil
}

func (*GL) GenVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (*GL) GenBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (*GL) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (*GL) BindBuffer(target, buffer uint32) { gl.BindBuffer(target, buffer) }

func (*GL) BufferDataF32(target uint32, data []float32, usage uint32) {
	gl.BufferData(target, len(data)*4, ptr(data), usage)
}

func (*GL) BufferDataU32(target uint32, data []uint32, usage uint32) {
	gl.BufferData(target, len(data)*4, ptr(data), usage)
}

func (*GL) BufferSubDataF32(target uint32, offset int, data []float32) {
	if len(data) == 0 {
		return
	}
	gl.BufferSubData(target, offset, len(data)*4, gl.Ptr(data))
}

func (*GL) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (*GL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, xtype, normalized, stride, gl.PtrOffset(offset))
}

func (*GL) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (*GL) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (*GL) CreateProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	return newProgram(vertexSrc, fragmentSrc)
}

func (*GL) UseProgram(program uint32) { gl.UseProgram(program) }

func (*GL) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (*GL) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (*GL) Uniform1i(location, v int32) { gl.Uniform1i(location, v) }

func (*GL) ActiveTexture(unit uint32) { gl.ActiveTexture(unit) }

func (*GL) BindTexture(target, texture uint32) { gl.BindTexture(target, texture) }

func (*GL) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	gl.DrawElements(mode, count, xtype, gl.PtrOffset(offset))
}

func (*GL) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (*GL) Clear(mask uint32) { gl.Clear(mask) }

func (*GL) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

// KHR_debug is not part of the 4.1 core profile, so debug groups and object
// labels are only traced.

func (g *GL) PushDebugGroup(name string) {
	g.logger.Log(context.Background(), levelTrace, "debug group", "name", name)
}

func (*GL) PopDebugGroup() {}

func (g *GL) ObjectLabel(identifier, name uint32, label string) {
	g.logger.Debug("object label", "kind", identifier, "id", name, "label", label)
}

const levelTrace = slog.LevelDebug - 4

func ptr[T float32 | uint32](data []T) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return gl.Ptr(data)
}
