// Package mapping implements the bidirectional, one-to-one
// node-to-node correspondence GumTree produces and the diff
// synthesizer consumes (spec.md §4.C).
package mapping

import (
	"fmt"
	"reflect"

	"golang.org/x/exp/maps"

	"github.com/cmroboticsacademy/facilitate/ast"
	"github.com/cmroboticsacademy/facilitate/ferrors"
)

// Mappings is a bidirectional one-to-one partial function between
// the nodes of two trees. Mappings hold aliases into caller-owned
// trees; a Mappings value must not outlive either tree (spec.md §5).
type Mappings struct {
	srcToDst map[ast.Node]ast.Node
	dstToSrc map[ast.Node]ast.Node
}

// New returns an empty Mappings.
func New() *Mappings {
	return &Mappings{
		srcToDst: make(map[ast.Node]ast.Node),
		dstToSrc: make(map[ast.Node]ast.Node),
	}
}

// Len returns the number of mapped pairs.
func (m *Mappings) Len() int { return len(m.srcToDst) }

// Add records src↔dst. It fails if the two nodes have different
// variants; overwriting an existing mapping on either side is
// permitted — last write wins — clearing out the stale reverse
// mapping it displaces (spec.md §4.C).
func (m *Mappings) Add(src, dst ast.Node) error {
	if reflect.TypeOf(src) != reflect.TypeOf(dst) {
		return ferrors.NewInvariant("cannot map %T to %T: variant mismatch", src, dst)
	}
	if oldDst, ok := m.srcToDst[src]; ok {
		delete(m.dstToSrc, oldDst)
	}
	if oldSrc, ok := m.dstToSrc[dst]; ok {
		delete(m.srcToDst, oldSrc)
	}
	m.srcToDst[src] = dst
	m.dstToSrc[dst] = src
	return nil
}

// AddWithDescendants maps src to dst and then zips the depth-first
// node list of each subtree pairwise, failing if the two subtrees
// have different arities (spec.md §4.C).
func (m *Mappings) AddWithDescendants(src, dst ast.Node) error {
	srcNodes := append([]ast.Node{src}, ast.Descendants(src)...)
	dstNodes := append([]ast.Node{dst}, ast.Descendants(dst)...)
	if len(srcNodes) != len(dstNodes) {
		return ferrors.NewInvariant("cannot map subtrees of different arity (%d vs %d) rooted at %q and %q",
			len(srcNodes), len(dstNodes), src.ID(), dst.ID())
	}
	for i := range srcNodes {
		if err := m.Add(srcNodes[i], dstNodes[i]); err != nil {
			return err
		}
	}
	return nil
}

// SourceIsMappedTo returns the destination node src is mapped to, if
// any.
func (m *Mappings) SourceIsMappedTo(src ast.Node) (ast.Node, bool) {
	d, ok := m.srcToDst[src]
	return d, ok
}

// DestinationIsMappedTo returns the source node dst is mapped to, if
// any.
func (m *Mappings) DestinationIsMappedTo(dst ast.Node) (ast.Node, bool) {
	s, ok := m.dstToSrc[dst]
	return s, ok
}

// SourceIsMapped reports whether src participates in any mapping.
func (m *Mappings) SourceIsMapped(src ast.Node) bool {
	_, ok := m.srcToDst[src]
	return ok
}

// DestinationIsMapped reports whether dst participates in any
// mapping.
func (m *Mappings) DestinationIsMapped(dst ast.Node) bool {
	_, ok := m.dstToSrc[dst]
	return ok
}

// Contains reports whether (src, dst) is exactly the recorded pair.
func (m *Mappings) Contains(src, dst ast.Node) bool {
	d, ok := m.srcToDst[src]
	return ok && d == dst
}

// Each iterates every (source, destination) pair. Iteration order is
// unspecified.
func (m *Mappings) Each(fn func(src, dst ast.Node)) {
	for s, d := range m.srcToDst {
		fn(s, d)
	}
}

// Sources returns the set of nodes currently recorded as a source —
// the set the diff synthesizer's delete phase uses to find unmapped
// nodes (spec.md §4.F).
func (m *Mappings) Sources() map[ast.Node]bool {
	out := make(map[ast.Node]bool, len(m.srcToDst))
	for s := range m.srcToDst {
		out[s] = true
	}
	return out
}

// Clone returns a shallow copy of m: a new Mappings over the same
// node pairs.
func (m *Mappings) Clone() *Mappings {
	return &Mappings{
		srcToDst: maps.Clone(m.srcToDst),
		dstToSrc: maps.Clone(m.dstToSrc),
	}
}

// Check is a consistency audit: it panics if any pair has mismatched
// variants, or if a source or destination id appears under two
// different node pointers on its own side (spec.md §4.C: "panic-level
// consistency audit"). It never fails in normal operation — Add and
// AddWithDescendants already enforce these invariants — and exists so
// the matcher can assert its own correctness after each phase.
func (m *Mappings) Check() {
	seenSrc := make(map[string]ast.Node, len(m.srcToDst))
	for s, d := range m.srcToDst {
		if reflect.TypeOf(s) != reflect.TypeOf(d) {
			panic(ferrors.NewInvariant("mapping %q -> %q has mismatched variants %T/%T", s.ID(), d.ID(), s, d))
		}
		if prior, ok := seenSrc[s.ID()]; ok && prior != s {
			panic(ferrors.NewInvariant("source id %q is mapped from two distinct nodes", s.ID()))
		}
		seenSrc[s.ID()] = s
	}
	seenDst := make(map[string]ast.Node, len(m.dstToSrc))
	for d := range m.dstToSrc {
		if prior, ok := seenDst[d.ID()]; ok && prior != d {
			panic(ferrors.NewInvariant("destination id %q is mapped from two distinct nodes", d.ID()))
		}
		seenDst[d.ID()] = d
	}
	if len(m.srcToDst) != len(m.dstToSrc) {
		panic(ferrors.NewInvariant("asymmetric mapping store: %d source entries, %d destination entries",
			len(m.srcToDst), len(m.dstToSrc)))
	}
}

func (m *Mappings) String() string {
	return fmt.Sprintf("Mappings(%d pairs)", len(m.srcToDst))
}
