package batching

import (
	"cmp"
	"slices"
)

// SortByLayer orders items by ascending render layer in place. Items sharing
// a layer keep their submission order.
func SortByLayer[T Item](items []T) {
	slices.SortStableFunc(items, func(a, b T) int {
		return cmp.Compare(a.RenderLayer(), b.RenderLayer())
	})
}

// LayerGroup is a contiguous run of items that share a layer.
type LayerGroup struct {
	Layer      int
	Start, End int
}

func (g LayerGroup) Len() int { return g.End - g.Start }

// GroupByLayer splits items, already sorted by SortByLayer, into runs.
func GroupByLayer[T Item](items []T) []LayerGroup {
	var groups []LayerGroup
	for i, item := range items {
		layer := item.RenderLayer()
		if n := len(groups); n > 0 && groups[n-1].Layer == layer {
			groups[n-1].End = i + 1
			continue
		}
		groups = append(groups, LayerGroup{Layer: layer, Start: i, End: i + 1})
	}
	return groups
}
