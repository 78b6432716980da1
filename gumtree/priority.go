package gumtree

import (
	"github.com/cmroboticsacademy/facilitate/ast"
	"github.com/cmroboticsacademy/facilitate/internal/heap"
)

// priorityList is a height-indexed multiset of nodes, bucketed by
// ast.Node.Height(). The top-down phase repeatedly pops the bucket at
// the current maximum height and either consumes it or replaces it
// with its members' children (spec.md §4.D).
type priorityList struct {
	buckets map[int][]ast.Node
	heights []int // max-heap of the keys present in buckets
}

func newPriorityList(root ast.Node) *priorityList {
	p := &priorityList{buckets: map[int][]ast.Node{}}
	p.push(root)
	return p
}

func moreThan(a, b int) bool { return a > b }

func (p *priorityList) push(n ast.Node) {
	h := n.Height()
	if _, ok := p.buckets[h]; !ok {
		heap.PushSlice(&p.heights, h, moreThan)
	}
	p.buckets[h] = append(p.buckets[h], n)
}

// maxHeight returns the tallest height with a non-empty bucket, or 0
// if the list is empty.
func (p *priorityList) maxHeight() int {
	for len(p.heights) > 0 && len(p.buckets[p.heights[0]]) == 0 {
		heap.PopSlice(&p.heights, moreThan)
	}
	if len(p.heights) == 0 {
		return 0
	}
	return p.heights[0]
}

// pop removes and returns every node at the current maximum height.
func (p *priorityList) pop() []ast.Node {
	h := p.maxHeight()
	if h == 0 {
		return nil
	}
	set := p.buckets[h]
	delete(p.buckets, h)
	heap.PopSlice(&p.heights, moreThan)
	return set
}

// addChildren pushes every child of n into the list.
func (p *priorityList) addChildren(n ast.Node) {
	for _, c := range n.Children() {
		p.push(c)
	}
}
