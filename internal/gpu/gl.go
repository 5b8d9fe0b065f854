// Package gpu owns the GPU side of the batching pipeline: vertex buffers,
// shader programs and the narrow set of GL calls they need.
package gpu

import "errors"

// Enum values mirror the OpenGL constants of the same name so that an
// implementation can forward them untouched.
const (
	ArrayBuffer        uint32 = 0x8892
	ElementArrayBuffer uint32 = 0x8893
	DynamicDraw        uint32 = 0x88E8
	StaticDraw         uint32 = 0x88E4
	Float              uint32 = 0x1406
	UnsignedInt        uint32 = 0x1405
	Triangles          uint32 = 0x0004
	Texture2D          uint32 = 0x0DE1
	Texture0           uint32 = 0x84C0
	ColorBufferBit     uint32 = 0x00004000

	// Object label namespaces.
	LabelBuffer      uint32 = 0x82E0
	LabelProgram     uint32 = 0x82E2
	LabelVertexArray uint32 = 0x8074
)

var (
	ErrBufferNotInitialized = errors.New("gpu buffer not initialized")
	ErrShaderNotInitialized = errors.New("shader program not initialized")
	ErrInvalidGradient      = errors.New("invalid color gradient")
	ErrIndexOutOfRange      = errors.New("batch index out of range")
)

// GL is the set of GPU operations the rendering core invokes. Every call
// must be made from the goroutine that owns the GL context.
type GL interface {
	GenVertexArray() uint32
	GenBuffer() uint32
	BindVertexArray(vao uint32)
	BindBuffer(target, buffer uint32)
	BufferDataF32(target uint32, data []float32, usage uint32)
	BufferDataU32(target uint32, data []uint32, usage uint32)
	// BufferSubDataF32 writes data at a byte offset of the bound buffer.
	BufferSubDataF32(target uint32, offset int, data []float32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int)
	DeleteVertexArray(vao uint32)
	DeleteBuffer(buffer uint32)

	// CreateProgram compiles and links a vertex/fragment pair.
	CreateProgram(vertexSrc, fragmentSrc string) (uint32, error)
	UseProgram(program uint32)
	DeleteProgram(program uint32)
	GetUniformLocation(program uint32, name string) int32
	Uniform1i(location, v int32)

	ActiveTexture(unit uint32)
	BindTexture(target, texture uint32)
	// DrawElements draws count indices starting at a byte offset of the
	// bound element buffer.
	DrawElements(mode uint32, count int32, xtype uint32, offset int)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	Viewport(x, y, width, height int32)

	PushDebugGroup(name string)
	PopDebugGroup()
	ObjectLabel(identifier, name uint32, label string)
}
