package gumtree

import (
	"github.com/cmroboticsacademy/facilitate/ast"
	"github.com/cmroboticsacademy/facilitate/mapping"
)

// reconcileNamedChildren matches same-named Field and Input children
// of already-matched Block pairs that dice/equivalence matching left
// unpaired — typically because a value changed underneath an
// otherwise-identical block. A Block enforces at most one Field and
// one Input per name, so name is a reliable correspondence key on its
// own. This stands in for the bounded-size optimal recovery step the
// original GumTree algorithm uses for the same purpose, which this
// matcher otherwise omits (see bottomup.go): without it, a single
// changed Field would surface as an unrelated delete-then-insert pair
// rather than an Update (spec.md §4.D, §4.F).
func reconcileNamedChildren(rootX ast.Node, m *mapping.Mappings) {
	for _, n := range ast.Postorder(rootX) {
		blkX, ok := n.(*ast.Block)
		if !ok {
			continue
		}
		image, ok := m.SourceIsMappedTo(blkX)
		if !ok {
			continue
		}
		blkY, ok := image.(*ast.Block)
		if !ok {
			continue
		}

		for _, f := range blkX.Fields() {
			if m.SourceIsMapped(f) {
				continue
			}
			if fy := blkY.FindField(f.Name); fy != nil && !m.DestinationIsMapped(fy) {
				_ = m.Add(f, fy)
			}
		}
		for _, in := range blkX.Inputs() {
			if m.SourceIsMapped(in) {
				continue
			}
			if iny := blkY.FindInput(in.Name); iny != nil && !m.DestinationIsMapped(iny) {
				_ = m.Add(in, iny)
			}
		}
	}
}
