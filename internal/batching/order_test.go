package batching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortByLayerIsStable(t *testing.T) {
	items := []LineItem{
		{Layer: 5, Thickness: 1},
		{Layer: -3, Thickness: 2},
		{Layer: 0, Thickness: 3},
		{Layer: -3, Thickness: 4},
	}
	SortByLayer(items)

	var layers []int
	var order []float32
	for _, it := range items {
		layers = append(layers, it.Layer)
		order = append(order, it.Thickness)
	}
	assert.Equal(t, []int{-3, -3, 0, 5}, layers)
	assert.Equal(t, []float32{2, 4, 3, 1}, order)
}

func TestGroupByLayer(t *testing.T) {
	items := []LineItem{{Layer: -3}, {Layer: -3}, {Layer: 0}, {Layer: 5}}
	groups := GroupByLayer(items)

	assert.Equal(t, []LayerGroup{
		{Layer: -3, Start: 0, End: 2},
		{Layer: 0, Start: 2, End: 3},
		{Layer: 5, Start: 3, End: 4},
	}, groups)
	assert.Equal(t, 2, groups[0].Len())
	assert.Empty(t, GroupByLayer[LineItem](nil))
}
