package ast

import "golang.org/x/crypto/blake2b"

// Literal is a leaf node holding a scalar value, stored inline in an
// Input (spec.md §3).
type Literal struct {
	base
	Value string
}

// NewLiteral builds a Literal with the given id and value.
func NewLiteral(id, value string) *Literal {
	return &Literal{base: base{id: id}, Value: value}
}

func (l *Literal) Children() []Node  { return nil }
func (l *Literal) HasChildren() bool { return false }
func (l *Literal) Height() int       { return 1 }
func (l *Literal) Size() int         { return 1 }

func (l *Literal) Find(id string) Node {
	if l.id == id {
		return l
	}
	return nil
}

func (l *Literal) Contains(node Node) bool { return Node(l) == node }

func (l *Literal) Copy() Node {
	return &Literal{base: base{id: l.id, tags: cloneTags(l.tags)}, Value: l.Value}
}

func (l *Literal) SurfaceEquivalentTo(other Node) bool {
	o, ok := other.(*Literal)
	return ok && o.Value == l.Value
}

func (l *Literal) EquivalentTo(other Node) bool { return l.SurfaceEquivalentTo(other) }

func (l *Literal) Fingerprint() [32]byte {
	return blake2b.Sum256([]byte("literal\x00" + l.Value))
}

func (l *Literal) walk(Visitor) {}
