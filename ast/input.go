package ast

import (
	"golang.org/x/crypto/blake2b"

	"github.com/cmroboticsacademy/facilitate/ferrors"
)

// Input is a named slot on a Block that holds zero or one expression
// child: a Block, a Sequence (for C-shaped control bodies), or a
// Literal (spec.md §3).
type Input struct {
	base
	Name string
	Expr Node // nil when empty
}

// NewEmptyInput builds an Input with no expression.
func NewEmptyInput(id, name string) *Input {
	return &Input{base: base{id: id}, Name: name}
}

func (i *Input) Children() []Node {
	if i.Expr == nil {
		return nil
	}
	return []Node{i.Expr}
}

func (i *Input) HasChildren() bool { return i.Expr != nil }
func (i *Input) Height() int       { return height(i.Children()) }
func (i *Input) Size() int         { return size(i.Children()) }
func (i *Input) Find(id string) Node {
	return find(i, id, i.Children())
}
func (i *Input) Contains(node Node) bool { return contains(i, node, i.Children()) }

func (i *Input) Copy() Node {
	cp := &Input{base: base{id: i.id, tags: cloneTags(i.tags)}, Name: i.Name}
	if i.Expr != nil {
		e := i.Expr.Copy()
		e.setParent(cp)
		cp.Expr = e
	}
	return cp
}

func (i *Input) SurfaceEquivalentTo(other Node) bool {
	o, ok := other.(*Input)
	return ok && o.Name == i.Name
}

func (i *Input) EquivalentTo(other Node) bool {
	o, ok := other.(*Input)
	if !ok || o.Name != i.Name {
		return false
	}
	if (i.Expr == nil) != (o.Expr == nil) {
		return false
	}
	if i.Expr == nil {
		return true
	}
	return i.Expr.EquivalentTo(o.Expr)
}

func (i *Input) Fingerprint() [32]byte {
	h, _ := blake2b.New256(nil)
	h.Write([]byte("input\x00" + i.Name))
	if i.Expr != nil {
		fp := i.Expr.Fingerprint()
		h.Write(fp[:])
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func (i *Input) walk(v Visitor) {
	if i.Expr != nil {
		Walk(v, i.Expr)
	}
}

func (i *Input) rewrite(r Rewriter) Node {
	if i.Expr != nil {
		i.Expr = Rewrite(r, i.Expr)
		if i.Expr != nil {
			i.Expr.setParent(i)
		}
	}
	return i
}

// AddLiteral sets the input's expression to a fresh Literal with the
// given id and value. Fails if the input already has an expression
// (spec.md §4.A: "Input offers add_literal(value) and enforces at
// most one expression").
func (i *Input) AddLiteral(id, value string) (*Literal, error) {
	if i.Expr != nil {
		return nil, ferrors.NewInvariant("input %q already has an expression", i.id)
	}
	l := NewLiteral(id, value)
	l.setParent(i)
	i.Expr = l
	return l, nil
}

// SetExpression sets (or replaces) the input's expression child. Used
// by the loader when assembling an Input from a resolved reference,
// and by edit operations that move or insert a Block/Sequence into
// an Input.
func (i *Input) SetExpression(n Node) {
	if i.Expr != nil {
		i.Expr.setParent(nil)
	}
	i.Expr = n
	if n != nil {
		n.setParent(i)
	}
}

// RemoveExpression detaches and returns the input's expression child,
// if any.
func (i *Input) RemoveExpression() Node {
	e := i.Expr
	if e != nil {
		e.setParent(nil)
		i.Expr = nil
	}
	return e
}
