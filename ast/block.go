package ast

import (
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/exp/slices"

	"github.com/cmroboticsacademy/facilitate/ferrors"
)

// Block is a statement or expression unit: an opcode, a name-sorted
// list of Fields, a name-sorted list of Inputs, and a shadow flag
// marking it as a UI placeholder (spec.md §3).
type Block struct {
	base
	Opcode   string
	IsShadow bool
	fields   []*Field
	inputs   []*Input
}

// NewBlock builds an empty Block (no fields or inputs yet).
func NewBlock(id, opcode string, isShadow bool) *Block {
	return &Block{base: base{id: id}, Opcode: opcode, IsShadow: isShadow}
}

// Category is the opcode's prefix up to (not including) the first
// underscore, e.g. "motion_move" → "motion" (spec.md §3, §GLOSSARY).
func (b *Block) Category() string {
	if i := strings.IndexByte(b.Opcode, '_'); i >= 0 {
		return b.Opcode[:i]
	}
	return b.Opcode
}

// Fields returns the block's Fields in their maintained
// lexicographic-by-name order. The returned slice is the block's
// live backing storage; callers must not mutate it directly.
func (b *Block) Fields() []*Field { return b.fields }

// Inputs returns the block's Inputs in their maintained
// lexicographic-by-name order.
func (b *Block) Inputs() []*Input { return b.inputs }

func (b *Block) Children() []Node {
	out := make([]Node, 0, len(b.fields)+len(b.inputs))
	for _, f := range b.fields {
		out = append(out, f)
	}
	for _, in := range b.inputs {
		out = append(out, in)
	}
	return out
}

func (b *Block) HasChildren() bool { return len(b.fields) > 0 || len(b.inputs) > 0 }
func (b *Block) Height() int       { return height(b.Children()) }
func (b *Block) Size() int         { return size(b.Children()) }
func (b *Block) Find(id string) Node {
	return find(b, id, b.Children())
}
func (b *Block) Contains(node Node) bool { return contains(b, node, b.Children()) }

func (b *Block) Copy() Node {
	cp := &Block{
		base:     base{id: b.id, tags: cloneTags(b.tags)},
		Opcode:   b.Opcode,
		IsShadow: b.IsShadow,
	}
	cp.fields = make([]*Field, len(b.fields))
	for i, f := range b.fields {
		nf := f.Copy().(*Field)
		nf.setParent(cp)
		cp.fields[i] = nf
	}
	cp.inputs = make([]*Input, len(b.inputs))
	for i, in := range b.inputs {
		ni := in.Copy().(*Input)
		ni.setParent(cp)
		cp.inputs[i] = ni
	}
	return cp
}

func (b *Block) SurfaceEquivalentTo(other Node) bool {
	o, ok := other.(*Block)
	return ok && o.Opcode == b.Opcode
}

func (b *Block) EquivalentTo(other Node) bool {
	o, ok := other.(*Block)
	if !ok || o.Opcode != b.Opcode {
		return false
	}
	if len(o.fields) != len(b.fields) || len(o.inputs) != len(b.inputs) {
		return false
	}
	for i := range b.fields {
		if !b.fields[i].EquivalentTo(o.fields[i]) {
			return false
		}
	}
	for i := range b.inputs {
		if !b.inputs[i].EquivalentTo(o.inputs[i]) {
			return false
		}
	}
	return true
}

func (b *Block) Fingerprint() [32]byte {
	h, _ := blake2b.New256(nil)
	h.Write([]byte("block\x00" + b.Opcode))
	for _, c := range b.Children() {
		fp := c.Fingerprint()
		h.Write(fp[:])
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func (b *Block) walk(v Visitor) {
	for _, c := range b.Children() {
		Walk(v, c)
	}
}

func (b *Block) rewrite(r Rewriter) Node {
	for i, f := range b.fields {
		b.fields[i] = Rewrite(r, f).(*Field)
		b.fields[i].setParent(b)
	}
	for i, in := range b.inputs {
		b.inputs[i] = Rewrite(r, in).(*Input)
		b.inputs[i].setParent(b)
	}
	return b
}

func fieldNameLess(a, name string) int { return strings.Compare(a, name) }

// FindField returns the Field with the given name, or nil.
func (b *Block) FindField(name string) *Field {
	i, ok := slices.BinarySearchFunc(b.fields, name, func(f *Field, name string) int {
		return strings.Compare(f.Name, name)
	})
	if !ok {
		return nil
	}
	return b.fields[i]
}

// FindInput returns the Input with the given name, or nil.
func (b *Block) FindInput(name string) *Input {
	i, ok := slices.BinarySearchFunc(b.inputs, name, func(in *Input, name string) int {
		return strings.Compare(in.Name, name)
	})
	if !ok {
		return nil
	}
	return b.inputs[i]
}

// InsertField inserts an already-constructed Field, maintaining the
// name-sorted invariant. Used by the loader, which assigns its own
// deterministic ids. Fails if a field with this name is already
// present.
func (b *Block) InsertField(f *Field) error {
	if b.FindField(f.Name) != nil {
		return ferrors.NewInvariant("block %q already has field %q", b.id, f.Name)
	}
	i, _ := slices.BinarySearchFunc(b.fields, f.Name, func(x *Field, name string) int {
		return strings.Compare(x.Name, name)
	})
	f.setParent(b)
	b.fields = slices.Insert(b.fields, i, f)
	return nil
}

// InsertInput inserts an already-constructed Input, maintaining the
// name-sorted invariant. Fails if an input with this name is already
// present.
func (b *Block) InsertInput(in *Input) error {
	if b.FindInput(in.Name) != nil {
		return ferrors.NewInvariant("block %q already has input %q", b.id, in.Name)
	}
	i, _ := slices.BinarySearchFunc(b.inputs, in.Name, func(x *Input, name string) int {
		return strings.Compare(x.Name, name)
	})
	in.setParent(b)
	b.inputs = slices.Insert(b.inputs, i, in)
	return nil
}

// AddField creates and inserts a new Field with the given (typically
// freshly generated) id, name, and value — the AddFieldToBlock edit
// operation (spec.md §4.E).
func (b *Block) AddField(id, name, value string) (*Field, error) {
	f := NewField(id, name, value)
	if err := b.InsertField(f); err != nil {
		return nil, err
	}
	return f, nil
}

// AddInput creates and inserts a new, initially empty Input with the
// given id and name — the AddInputToBlock edit operation.
func (b *Block) AddInput(id, name string) (*Input, error) {
	in := &Input{base: base{id: id}, Name: name}
	if err := b.InsertInput(in); err != nil {
		return nil, err
	}
	return in, nil
}

// RemoveField detaches and returns the named field. Fails if no such
// field exists.
func (b *Block) RemoveField(name string) (*Field, error) {
	i, ok := slices.BinarySearchFunc(b.fields, name, func(f *Field, name string) int {
		return strings.Compare(f.Name, name)
	})
	if !ok {
		return nil, ferrors.NewInvariant("block %q has no field %q to remove", b.id, name)
	}
	f := b.fields[i]
	b.fields = slices.Delete(b.fields, i, i+1)
	f.setParent(nil)
	return f, nil
}

// RemoveInput detaches and returns the named input. Fails if no such
// input exists.
func (b *Block) RemoveInput(name string) (*Input, error) {
	i, ok := slices.BinarySearchFunc(b.inputs, name, func(in *Input, name string) int {
		return strings.Compare(in.Name, name)
	})
	if !ok {
		return nil, ferrors.NewInvariant("block %q has no input %q to remove", b.id, name)
	}
	in := b.inputs[i]
	b.inputs = slices.Delete(b.inputs, i, i+1)
	in.setParent(nil)
	return in, nil
}
