package gumtree

import (
	"github.com/cmroboticsacademy/facilitate/ast"
	"github.com/cmroboticsacademy/facilitate/mapping"
)

// dice measures how much of x and y's descendants are already mapped
// to each other: 2k / (|desc(x)| + |desc(y)|), where k counts x's
// descendants whose mapping image lies within y's subtree (spec.md
// §4.D). Two zero-descendant nodes score 1 if their ids match, else
// 0. A shared id on x and y themselves doubles the result — ids
// rarely survive untouched across versions, so an id match is strong
// independent evidence of correspondence.
func dice(x, y ast.Node, m *mapping.Mappings) float64 {
	dx := ast.Descendants(x)
	dy := ast.Descendants(y)
	if len(dx) == 0 && len(dy) == 0 {
		if x.ID() == y.ID() {
			return 1
		}
		return 0
	}

	inY := make(map[ast.Node]bool, len(dy))
	for _, n := range dy {
		inY[n] = true
	}
	k := 0
	for _, n := range dx {
		if img, ok := m.SourceIsMappedTo(n); ok && inY[img] {
			k++
		}
	}

	score := 2 * float64(k) / float64(len(dx)+len(dy))
	if x.ID() == y.ID() {
		score *= 2
	}
	return score
}
