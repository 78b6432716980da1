package gumtree

import (
	"reflect"
	"sort"

	"github.com/cmroboticsacademy/facilitate/ast"
	"github.com/cmroboticsacademy/facilitate/mapping"
)

// bottomUp processes the container nodes of rootX in post-order,
// mapping each still-unmatched one to its highest-dice same-variant
// counterpart in rootY, provided that score clears minDice (spec.md
// §4.D). The original GumTree's bounded-size optimal recovery step is
// not implemented here: the trees this matcher sees are small enough
// that dice alone gives good coverage.
func bottomUp(rootX, rootY ast.Node, minDice float64, m *mapping.Mappings) {
	dstCandidatesByVariant := map[reflect.Type][]ast.Node{}
	for _, n := range append([]ast.Node{rootY}, ast.Descendants(rootY)...) {
		if !ast.IsContainer(n) {
			continue
		}
		t := reflect.TypeOf(n)
		dstCandidatesByVariant[t] = append(dstCandidatesByVariant[t], n)
	}

	for _, x := range ast.Postorder(rootX) {
		if !ast.IsContainer(x) {
			continue
		}
		if m.SourceIsMapped(x) {
			continue
		}

		var best ast.Node
		bestScore := -1.0
		for _, y := range dstCandidatesByVariant[reflect.TypeOf(x)] {
			if m.DestinationIsMapped(y) {
				continue
			}
			if s := dice(x, y, m); s > bestScore {
				best, bestScore = y, s
			}
		}
		if best != nil && bestScore > minDice {
			_ = m.Add(x, best)
		}
	}
}

// sortDescendingByDice returns candidates ordered by descending dice
// score against x, keeping the input order among ties. bottomUp does
// not use it: it keeps only the single best-scoring candidate.
func sortDescendingByDice(x ast.Node, candidates []ast.Node, m *mapping.Mappings) []ast.Node {
	out := append([]ast.Node(nil), candidates...)
	sort.SliceStable(out, func(i, j int) bool {
		return dice(x, out[i], m) > dice(x, out[j], m)
	})
	return out
}
