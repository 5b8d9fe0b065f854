package reactable

// BatchType tags the item type a batch size notification applies to.
type BatchType int

const (
	TextureBatch BatchType = iota
	FontBatch
	RectBatch
	LineBatch
)

var batchTypeNames = [...]string{"texture", "font", "rect", "line"}

func (t BatchType) String() string {
	if t < 0 || int(t) >= len(batchTypeNames) {
		return "unknown"
	}
	return batchTypeNames[t]
}

// BatchTypes lists every batch type in declaration order.
func BatchTypes() []BatchType {
	return []BatchType{TextureBatch, FontBatch, RectBatch, LineBatch}
}

// BatchSizeData is the payload of BatchSizeChanged.
type BatchSizeData struct {
	Size        uint32
	TypeOfBatch BatchType
}

// ViewportSizeData is the payload of ViewportSizeChanged.
type ViewportSizeData struct {
	Width, Height uint32
}
