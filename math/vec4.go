package math

// Vec4 carries four packed float32 attributes (colours, rectangles) into
// vertex records.
type Vec4 struct {
	X, Y, Z, W float32
}

func NewVec4(x, y, z, w float32) Vec4 {
	return Vec4{X: x, Y: y, Z: z, W: w}
}
