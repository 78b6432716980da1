package ast

import "golang.org/x/crypto/blake2b"

// Field is a named terminal attribute of a Block — a UI picker value
// (spec.md §3). Fields are leaves: they carry no children.
type Field struct {
	base
	Name  string
	Value string
}

// NewField builds a Field with the given id, name, and value.
func NewField(id, name, value string) *Field {
	return &Field{base: base{id: id}, Name: name, Value: value}
}

func (f *Field) Children() []Node  { return nil }
func (f *Field) HasChildren() bool { return false }
func (f *Field) Height() int       { return 1 }
func (f *Field) Size() int         { return 1 }

func (f *Field) Find(id string) Node {
	if f.id == id {
		return f
	}
	return nil
}

func (f *Field) Contains(node Node) bool { return Node(f) == node }

func (f *Field) Copy() Node {
	return &Field{base: base{id: f.id, tags: cloneTags(f.tags)}, Name: f.Name, Value: f.Value}
}

func (f *Field) SurfaceEquivalentTo(other Node) bool {
	o, ok := other.(*Field)
	return ok && o.Name == f.Name && o.Value == f.Value
}

func (f *Field) EquivalentTo(other Node) bool { return f.SurfaceEquivalentTo(other) }

func (f *Field) Fingerprint() [32]byte {
	return blake2b.Sum256([]byte("field\x00" + f.Name + "\x00" + f.Value))
}

func (f *Field) walk(Visitor) {}
