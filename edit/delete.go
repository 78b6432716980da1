package edit

import (
	"github.com/cmroboticsacademy/facilitate/ast"
	"github.com/cmroboticsacademy/facilitate/ferrors"
)

// Delete detaches a node from its parent. A non-leaf node can only be
// deleted once its children are gone, unless NoDelete is set: that
// flag is a dry run for animation, tagging the node without actually
// restructuring the tree (spec.md §4.E).
type Delete struct {
	NodeID   string
	NoDelete bool
}

func (d *Delete) Kind() string { return "Delete" }

func (d *Delete) Apply(root ast.Node) (ast.Node, error) {
	n := root.Find(d.NodeID)
	if n == nil {
		return nil, ferrors.NewInvariant("no node with id %q", d.NodeID)
	}
	if d.NoDelete {
		n.AddTag(ast.TagDeleted)
		return n, nil
	}
	if n.HasChildren() {
		return nil, ferrors.NewInvariant("cannot delete %q: node still has children", d.NodeID)
	}
	if err := detach(n); err != nil {
		return nil, err
	}
	n.AddTag(ast.TagDeleted)
	return n, nil
}

func (d *Delete) ToDict() map[string]interface{} {
	m := map[string]interface{}{"type": d.Kind(), "node-id": d.NodeID}
	if d.NoDelete {
		m["no-delete"] = true
	}
	return m
}
