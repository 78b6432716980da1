package gumtree

import (
	"sort"

	"github.com/cmroboticsacademy/facilitate/ast"
	"github.com/cmroboticsacademy/facilitate/mapping"
)

type pair struct {
	x, y ast.Node
}

// topDown matches identical subtrees as high in the two trees as
// possible, via the height-indexed priority lists of spec.md §4.D.
func topDown(rootX, rootY ast.Node, minHeight int, m *mapping.Mappings) {
	hx := newPriorityList(rootX)
	hy := newPriorityList(rootY)
	var candidates []pair

	for min(hx.maxHeight(), hy.maxHeight()) >= minHeight {
		switch {
		case hx.maxHeight() > hy.maxHeight():
			for _, n := range hx.pop() {
				hx.addChildren(n)
			}
		case hy.maxHeight() > hx.maxHeight():
			for _, n := range hy.pop() {
				hy.addChildren(n)
			}
		default:
			setX := hx.pop()
			setY := hy.pop()

			var equiv []pair
			countX := map[ast.Node]int{}
			countY := map[ast.Node]int{}
			for _, x := range setX {
				for _, y := range setY {
					if x.EquivalentTo(y) {
						equiv = append(equiv, pair{x, y})
						countX[x]++
						countY[y]++
					}
				}
			}

			absorbedX := map[ast.Node]bool{}
			absorbedY := map[ast.Node]bool{}
			for _, p := range equiv {
				absorbedX[p.x] = true
				absorbedY[p.y] = true
				if countX[p.x] > 1 || countY[p.y] > 1 {
					candidates = append(candidates, p)
				} else {
					_ = m.AddWithDescendants(p.x, p.y)
				}
			}

			for _, x := range setX {
				if !absorbedX[x] {
					hx.addChildren(x)
				}
			}
			for _, y := range setY {
				if !absorbedY[y] {
					hy.addChildren(y)
				}
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return diceOfParents(candidates[i], m) > diceOfParents(candidates[j], m)
	})

	usedX := map[ast.Node]bool{}
	usedY := map[ast.Node]bool{}
	for _, c := range candidates {
		if usedX[c.x] || usedY[c.y] {
			continue
		}
		_ = m.AddWithDescendants(c.x, c.y)
		usedX[c.x] = true
		usedY[c.y] = true
	}
}

// diceOfParents scores a candidate by how much context its parents
// already share, so that ambiguous matches prefer the pair whose
// surrounding structure is most already-matched.
func diceOfParents(p pair, m *mapping.Mappings) float64 {
	px, py := p.x.Parent(), p.y.Parent()
	if px == nil || py == nil {
		return 0
	}
	return dice(px, py, m)
}
