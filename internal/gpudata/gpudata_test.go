package gpudata

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"

	"render2d/math"
)

func TestStridesMatchStructSize(t *testing.T) {
	assert.Equal(t, 32, TextureStride)
	assert.Equal(t, 64, RectStride)
	assert.Equal(t, 24, LineStride)

	assert.EqualValues(t, TextureStride, unsafe.Sizeof(TextureVertex{}))
	assert.EqualValues(t, RectStride, unsafe.Sizeof(RectVertex{}))
	assert.EqualValues(t, LineStride, unsafe.Sizeof(LineVertex{}))
}

func TestTextureVertexOrder(t *testing.T) {
	v := TextureVertex{
		Pos:  math.NewVec2(1, 2),
		UV:   math.NewVec2(3, 4),
		Tint: math.NewVec4(5, 6, 7, 8),
	}
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6, 7, 8}, v.AppendTo(nil))
}

func TestRectVertexOrder(t *testing.T) {
	v := RectVertex{
		Pos:               math.NewVec2(1, 2),
		Rect:              math.NewVec4(3, 4, 5, 6),
		Color:             math.NewVec4(7, 8, 9, 10),
		IsSolid:           11,
		BorderThickness:   12,
		TopLeftRadius:     13,
		BottomLeftRadius:  14,
		BottomRightRadius: 15,
		TopRightRadius:    16,
	}
	got := v.AppendTo(nil)
	assert.Len(t, got, RectFloats)
	for i, f := range got {
		assert.EqualValues(t, i+1, f)
	}
}

func TestQuadToArray(t *testing.T) {
	var q Quad[LineVertex]
	for i := range q {
		q[i] = LineVertex{Pos: math.NewVec2(float32(i), 0)}
	}
	arr := q.ToArray()
	assert.Len(t, arr, QuadVertices*LineFloats)
	assert.EqualValues(t, 2, arr[TopRight*LineFloats])
	assert.EqualValues(t, 3, arr[BottomRight*LineFloats])
}
