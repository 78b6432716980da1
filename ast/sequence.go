package ast

import (
	"golang.org/x/crypto/blake2b"

	"github.com/cmroboticsacademy/facilitate/ferrors"
)

// Sequence is an ordered list of sibling Blocks forming a
// straight-line control body (spec.md §3). Its id is deterministically
// derived from its first Block's id (SequenceID), so it is stable
// under position changes of its first block only through explicit
// operations — see spec.md §9, Open Question 1, on what happens when
// that first block is later moved or deleted.
type Sequence struct {
	base
	blocks []*Block
}

// SequenceID derives a Sequence's id from the id of its first Block.
func SequenceID(firstBlockID string) string {
	return ":seq@" + firstBlockID
}

// NewSequence builds an empty Sequence with the given id.
func NewSequence(id string) *Sequence {
	return &Sequence{base: base{id: id}}
}

// Blocks returns the sequence's members in execution order. The
// returned slice is the sequence's live backing storage; callers must
// not mutate it directly.
func (s *Sequence) Blocks() []*Block { return s.blocks }

func (s *Sequence) Children() []Node {
	out := make([]Node, len(s.blocks))
	for i, b := range s.blocks {
		out[i] = b
	}
	return out
}

func (s *Sequence) HasChildren() bool { return len(s.blocks) > 0 }
func (s *Sequence) Height() int       { return height(s.Children()) }
func (s *Sequence) Size() int         { return size(s.Children()) }
func (s *Sequence) Find(id string) Node {
	return find(s, id, s.Children())
}
func (s *Sequence) Contains(node Node) bool { return contains(s, node, s.Children()) }

func (s *Sequence) Copy() Node {
	cp := &Sequence{base: base{id: s.id, tags: cloneTags(s.tags)}}
	cp.blocks = make([]*Block, len(s.blocks))
	for i, b := range s.blocks {
		nb := b.Copy().(*Block)
		nb.setParent(cp)
		cp.blocks[i] = nb
	}
	return cp
}

// SurfaceEquivalentTo is always true between two Sequences: a
// Sequence carries no surface data of its own (spec.md §3).
func (s *Sequence) SurfaceEquivalentTo(other Node) bool {
	_, ok := other.(*Sequence)
	return ok
}

func (s *Sequence) EquivalentTo(other Node) bool {
	o, ok := other.(*Sequence)
	if !ok || len(o.blocks) != len(s.blocks) {
		return false
	}
	for i := range s.blocks {
		if !s.blocks[i].EquivalentTo(o.blocks[i]) {
			return false
		}
	}
	return true
}

func (s *Sequence) Fingerprint() [32]byte {
	h, _ := blake2b.New256(nil)
	h.Write([]byte("sequence"))
	for _, b := range s.blocks {
		fp := b.Fingerprint()
		h.Write(fp[:])
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func (s *Sequence) walk(v Visitor) {
	for _, b := range s.blocks {
		Walk(v, b)
	}
}

func (s *Sequence) rewrite(r Rewriter) Node {
	for i, b := range s.blocks {
		s.blocks[i] = Rewrite(r, b).(*Block)
		s.blocks[i].setParent(s)
	}
	return s
}

// PositionOfChild returns the index of block within the sequence.
// Only Program and Sequence define a position, since only their
// children are ordered (spec.md §4.A).
func (s *Sequence) PositionOfChild(block *Block) (int, error) {
	for i, b := range s.blocks {
		if b == block {
			return i, nil
		}
	}
	return -1, ferrors.NewInvariant("block %q is not a child of sequence %q", block.ID(), s.id)
}

// InsertBlockAt inserts b at position pos, shifting later blocks
// right. pos must be in [0, len(Blocks())].
func (s *Sequence) InsertBlockAt(pos int, b *Block) error {
	if pos < 0 || pos > len(s.blocks) {
		return ferrors.NewInvariant("position %d out of range for sequence %q (len %d)", pos, s.id, len(s.blocks))
	}
	b.setParent(s)
	s.blocks = append(s.blocks, nil)
	copy(s.blocks[pos+1:], s.blocks[pos:])
	s.blocks[pos] = b
	return nil
}

// AppendBlock inserts b at the end of the sequence.
func (s *Sequence) AppendBlock(b *Block) {
	b.setParent(s)
	s.blocks = append(s.blocks, b)
}

// RemoveBlock detaches block from the sequence and returns its former
// index. Fails if block is not a member (spec.md §4.A: "removing a
// non-child" is an invariant violation).
func (s *Sequence) RemoveBlock(block *Block) (int, error) {
	idx, err := s.PositionOfChild(block)
	if err != nil {
		return -1, err
	}
	s.blocks = append(s.blocks[:idx], s.blocks[idx+1:]...)
	block.setParent(nil)
	return idx, nil
}
