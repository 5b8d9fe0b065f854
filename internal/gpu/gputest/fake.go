// Package gputest provides a recording gpu.GL for tests.
package gputest

import (
	"fmt"
	"strings"

	"render2d/internal/gpu"
)

var _ gpu.GL = (*GL)(nil)

// Call is one recorded GL invocation.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = fmt.Sprint(a)
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}

// SubData is a recorded BufferSubDataF32 call.
type SubData struct {
	Target uint32
	Offset int
	Data   []float32
}

// Draw is a recorded DrawElements call.
type Draw struct {
	Mode   uint32
	Count  int32
	Type   uint32
	Offset int
}

// GL records every call and hands out increasing object handles.
type GL struct {
	Calls []Call

	BufferF32 map[uint32][]float32
	BufferU32 map[uint32][]uint32
	SubData   []SubData
	Draws     []Draw
	Deleted   []uint32

	// ProgramErr, when set, is returned by CreateProgram.
	ProgramErr error

	// MaxDebugDepth is the deepest debug group nesting seen.
	MaxDebugDepth int

	next       uint32
	boundArray uint32
	boundElem  uint32
	debugDepth int
}

func New() *GL {
	return &GL{
		BufferF32: make(map[uint32][]float32),
		BufferU32: make(map[uint32][]uint32),
	}
}

func (g *GL) record(name string, args ...any) {
	g.Calls = append(g.Calls, Call{Name: name, Args: args})
}

func (g *GL) handle() uint32 {
	g.next++
	return g.next
}

// Count returns how many times name was called.
func (g *GL) Count(name string) int {
	n := 0
	for _, c := range g.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Named returns the recorded calls named name, in order.
func (g *GL) Named(name string) []Call {
	var out []Call
	for _, c := range g.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Reset forgets recorded calls but keeps buffer contents and handles.
func (g *GL) Reset() {
	g.Calls = nil
	g.SubData = nil
	g.Draws = nil
}

// DebugDepth is the current debug group nesting.
func (g *GL) DebugDepth() int { return g.debugDepth }

func (g *GL) GenVertexArray() uint32 {
	h := g.handle()
	g.record("GenVertexArray", h)
	return h
}

func (g *GL) GenBuffer() uint32 {
	h := g.handle()
	g.record("GenBuffer", h)
	return h
}

func (g *GL) BindVertexArray(vao uint32) { g.record("BindVertexArray", vao) }

func (g *GL) BindBuffer(target, buffer uint32) {
	g.record("BindBuffer", target, buffer)
	switch target {
	case gpu.ArrayBuffer:
		g.boundArray = buffer
	case gpu.ElementArrayBuffer:
		g.boundElem = buffer
	}
}

func (g *GL) BufferDataF32(target uint32, data []float32, usage uint32) {
	g.record("BufferDataF32", target, len(data), usage)
	g.BufferF32[g.bound(target)] = append([]float32(nil), data...)
}

func (g *GL) BufferDataU32(target uint32, data []uint32, usage uint32) {
	g.record("BufferDataU32", target, len(data), usage)
	g.BufferU32[g.bound(target)] = append([]uint32(nil), data...)
}

func (g *GL) BufferSubDataF32(target uint32, offset int, data []float32) {
	g.record("BufferSubDataF32", target, offset, len(data))
	g.SubData = append(g.SubData, SubData{Target: target, Offset: offset, Data: append([]float32(nil), data...)})
	buf := g.BufferF32[g.bound(target)]
	start := offset / 4
	if start+len(data) <= len(buf) {
		copy(buf[start:], data)
	}
}

func (g *GL) bound(target uint32) uint32 {
	if target == gpu.ElementArrayBuffer {
		return g.boundElem
	}
	return g.boundArray
}

func (g *GL) EnableVertexAttribArray(index uint32) { g.record("EnableVertexAttribArray", index) }

func (g *GL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	g.record("VertexAttribPointer", index, size, xtype, normalized, stride, offset)
}

func (g *GL) DeleteVertexArray(vao uint32) {
	g.record("DeleteVertexArray", vao)
	g.Deleted = append(g.Deleted, vao)
}

func (g *GL) DeleteBuffer(buffer uint32) {
	g.record("DeleteBuffer", buffer)
	g.Deleted = append(g.Deleted, buffer)
}

func (g *GL) CreateProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	if g.ProgramErr != nil {
		g.record("CreateProgram", 0)
		return 0, g.ProgramErr
	}
	h := g.handle()
	g.record("CreateProgram", h)
	return h, nil
}

func (g *GL) UseProgram(program uint32) { g.record("UseProgram", program) }

func (g *GL) DeleteProgram(program uint32) {
	g.record("DeleteProgram", program)
	g.Deleted = append(g.Deleted, program)
}

func (g *GL) GetUniformLocation(program uint32, name string) int32 {
	g.record("GetUniformLocation", program, name)
	return int32(len(name))
}

func (g *GL) Uniform1i(location, v int32) { g.record("Uniform1i", location, v) }

func (g *GL) ActiveTexture(unit uint32) { g.record("ActiveTexture", unit) }

func (g *GL) BindTexture(target, texture uint32) { g.record("BindTexture", target, texture) }

func (g *GL) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	g.record("DrawElements", mode, count, xtype, offset)
	g.Draws = append(g.Draws, Draw{Mode: mode, Count: count, Type: xtype, Offset: offset})
}

func (g *GL) ClearColor(r, gr, b, a float32) { g.record("ClearColor", r, gr, b, a) }

func (g *GL) Clear(mask uint32) { g.record("Clear", mask) }

func (g *GL) Viewport(x, y, width, height int32) { g.record("Viewport", x, y, width, height) }

func (g *GL) PushDebugGroup(name string) {
	g.record("PushDebugGroup", name)
	g.debugDepth++
	g.MaxDebugDepth = max(g.MaxDebugDepth, g.debugDepth)
}

func (g *GL) PopDebugGroup() {
	g.record("PopDebugGroup")
	g.debugDepth--
}

func (g *GL) ObjectLabel(identifier, name uint32, label string) {
	g.record("ObjectLabel", identifier, name, label)
}
