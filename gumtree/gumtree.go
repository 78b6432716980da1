// Package gumtree matches nodes between two AST trees with a
// GumTree-style two-phase algorithm: a top-down pass that pairs
// identical subtrees as high as possible, followed by a bottom-up
// pass that pairs remaining containers by dice similarity (spec.md
// §4.D).
package gumtree

import (
	"github.com/cmroboticsacademy/facilitate/ast"
	"github.com/cmroboticsacademy/facilitate/config"
	"github.com/cmroboticsacademy/facilitate/mapping"
)

// Match computes a Mappings between rootX (source) and rootY
// (destination) using the thresholds in t. Matching never fails; it
// may simply leave nodes unmapped (spec.md §4.D, Failure semantics).
func Match(rootX, rootY ast.Node, t config.Thresholds) *mapping.Mappings {
	m := mapping.New()
	topDown(rootX, rootY, t.MinHeight, m)
	m.Check()
	bottomUp(rootX, rootY, t.MinDice, m)
	m.Check()
	reconcileNamedChildren(rootX, m)
	m.Check()
	return m
}
