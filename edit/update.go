package edit

import (
	"github.com/cmroboticsacademy/facilitate/ast"
	"github.com/cmroboticsacademy/facilitate/ferrors"
)

// Update replaces a single node's surface-level scalar: a Block's
// opcode, a Field or Literal's value, or an Input's name (spec.md
// §4.E).
type Update struct {
	NodeID string
	Value  string
}

func (u *Update) Kind() string { return "Update" }

func (u *Update) Apply(root ast.Node) (ast.Node, error) {
	n := root.Find(u.NodeID)
	if n == nil {
		return nil, ferrors.NewInvariant("no node with id %q", u.NodeID)
	}
	switch v := n.(type) {
	case *ast.Block:
		v.Opcode = u.Value
	case *ast.Field:
		v.Value = u.Value
	case *ast.Literal:
		v.Value = u.Value
	case *ast.Input:
		v.Name = u.Value
	default:
		return nil, ferrors.NewInvariant("Update: unsupported node variant %T", n)
	}
	n.AddTag(ast.TagUpdated)
	return n, nil
}

func (u *Update) ToDict() map[string]interface{} {
	return map[string]interface{}{"type": u.Kind(), "node-id": u.NodeID, "value": u.Value}
}

// ComputeUpdate returns the Update needed to turn a's surface data
// into b's, or nil if they already agree (the "no-op" case of spec.md
// §7). a and b must be the same variant; for Field, they must also
// share a name — Update never renames a Field, only Input (spec.md
// §4.E: "fails if names differ when Update.compute is invoked").
func ComputeUpdate(a, b ast.Node) (*Update, error) {
	switch av := a.(type) {
	case *ast.Block:
		bv, ok := b.(*ast.Block)
		if !ok {
			return nil, ferrors.NewInvariant("ComputeUpdate: variant mismatch %T vs %T", a, b)
		}
		if av.Opcode == bv.Opcode {
			return nil, nil
		}
		return &Update{NodeID: av.ID(), Value: bv.Opcode}, nil
	case *ast.Field:
		bv, ok := b.(*ast.Field)
		if !ok {
			return nil, ferrors.NewInvariant("ComputeUpdate: variant mismatch %T vs %T", a, b)
		}
		if av.Name != bv.Name {
			return nil, ferrors.NewInvariant("ComputeUpdate: field name mismatch %q vs %q", av.Name, bv.Name)
		}
		if av.Value == bv.Value {
			return nil, nil
		}
		return &Update{NodeID: av.ID(), Value: bv.Value}, nil
	case *ast.Literal:
		bv, ok := b.(*ast.Literal)
		if !ok {
			return nil, ferrors.NewInvariant("ComputeUpdate: variant mismatch %T vs %T", a, b)
		}
		if av.Value == bv.Value {
			return nil, nil
		}
		return &Update{NodeID: av.ID(), Value: bv.Value}, nil
	case *ast.Input:
		bv, ok := b.(*ast.Input)
		if !ok {
			return nil, ferrors.NewInvariant("ComputeUpdate: variant mismatch %T vs %T", a, b)
		}
		if av.Name == bv.Name {
			return nil, nil
		}
		return &Update{NodeID: av.ID(), Value: bv.Name}, nil
	default:
		return nil, ferrors.NewInvariant("ComputeUpdate: unsupported variant %T", a)
	}
}
