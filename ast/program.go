package ast

import (
	"golang.org/x/crypto/blake2b"

	"github.com/cmroboticsacademy/facilitate/ferrors"
)

// ProgramID is the fixed id every Program root carries (spec.md §3).
const ProgramID = "PROGRAM"

// Program is the root of an AST: an ordered list of top-level
// Sequences in author-given order.
type Program struct {
	base
	sequences []*Sequence
}

// NewProgram builds an empty Program.
func NewProgram() *Program {
	return &Program{base: base{id: ProgramID}}
}

// Sequences returns the program's top-level sequences in author
// order. The returned slice is the program's live backing storage;
// callers must not mutate it directly.
func (p *Program) Sequences() []*Sequence { return p.sequences }

func (p *Program) Children() []Node {
	out := make([]Node, len(p.sequences))
	for i, s := range p.sequences {
		out[i] = s
	}
	return out
}

func (p *Program) HasChildren() bool { return len(p.sequences) > 0 }
func (p *Program) Height() int       { return height(p.Children()) }
func (p *Program) Size() int         { return size(p.Children()) }
func (p *Program) Find(id string) Node {
	return find(p, id, p.Children())
}
func (p *Program) Contains(node Node) bool { return contains(p, node, p.Children()) }

func (p *Program) Copy() Node {
	cp := &Program{base: base{id: p.id, tags: cloneTags(p.tags)}}
	cp.sequences = make([]*Sequence, len(p.sequences))
	for i, s := range p.sequences {
		ns := s.Copy().(*Sequence)
		ns.setParent(cp)
		cp.sequences[i] = ns
	}
	return cp
}

// SurfaceEquivalentTo is always true between two Programs: a Program
// carries no surface data of its own (spec.md §3).
func (p *Program) SurfaceEquivalentTo(other Node) bool {
	_, ok := other.(*Program)
	return ok
}

func (p *Program) EquivalentTo(other Node) bool {
	o, ok := other.(*Program)
	if !ok || len(o.sequences) != len(p.sequences) {
		return false
	}
	for i := range p.sequences {
		if !p.sequences[i].EquivalentTo(o.sequences[i]) {
			return false
		}
	}
	return true
}

func (p *Program) Fingerprint() [32]byte {
	h, _ := blake2b.New256(nil)
	h.Write([]byte("program"))
	for _, s := range p.sequences {
		fp := s.Fingerprint()
		h.Write(fp[:])
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func (p *Program) walk(v Visitor) {
	for _, s := range p.sequences {
		Walk(v, s)
	}
}

func (p *Program) rewrite(r Rewriter) Node {
	for i, s := range p.sequences {
		p.sequences[i] = Rewrite(r, s).(*Sequence)
		p.sequences[i].setParent(p)
	}
	return p
}

// PositionOfChild returns the index of seq among the program's
// top-level sequences.
func (p *Program) PositionOfChild(seq *Sequence) (int, error) {
	for i, s := range p.sequences {
		if s == seq {
			return i, nil
		}
	}
	return -1, ferrors.NewInvariant("sequence %q is not a child of the program", seq.ID())
}

// InsertSequenceAt inserts seq at position pos, shifting later
// top-level sequences right.
func (p *Program) InsertSequenceAt(pos int, seq *Sequence) error {
	if pos < 0 || pos > len(p.sequences) {
		return ferrors.NewInvariant("position %d out of range for program (len %d)", pos, len(p.sequences))
	}
	seq.setParent(p)
	p.sequences = append(p.sequences, nil)
	copy(p.sequences[pos+1:], p.sequences[pos:])
	p.sequences[pos] = seq
	return nil
}

// AppendSequence inserts seq at the end of the program's top-level
// list.
func (p *Program) AppendSequence(seq *Sequence) {
	seq.setParent(p)
	p.sequences = append(p.sequences, seq)
}

// RemoveSequence detaches seq from the program and returns its former
// index. Fails if seq is not a top-level member.
func (p *Program) RemoveSequence(seq *Sequence) (int, error) {
	idx, err := p.PositionOfChild(seq)
	if err != nil {
		return -1, err
	}
	p.sequences = append(p.sequences[:idx], p.sequences[idx+1:]...)
	seq.setParent(nil)
	return idx, nil
}
