package edit

import (
	"github.com/cmroboticsacademy/facilitate/ast"
	"github.com/cmroboticsacademy/facilitate/ferrors"
)

// adjustForRemoval implements the position-correction rule shared by
// every in-place reorder: once the node is removed from index
// current, every index past current shifts left by one, so a target
// greater than current must itself be decremented (spec.md §4.E).
func adjustForRemoval(current, target int) int {
	if target > current {
		return target - 1
	}
	return target
}

// MoveBlockInSequence reorders Block within its own Sequence.
type MoveBlockInSequence struct {
	SequenceID string
	BlockID    string
	Position   int
}

func (m *MoveBlockInSequence) Kind() string { return "MoveBlockInSequence" }

func (m *MoveBlockInSequence) Apply(root ast.Node) (ast.Node, error) {
	seq, err := findSequence(root, m.SequenceID)
	if err != nil {
		return nil, err
	}
	blk, err := findBlock(root, m.BlockID)
	if err != nil {
		return nil, err
	}
	cur, err := seq.PositionOfChild(blk)
	if err != nil {
		return nil, err
	}
	if _, err := seq.RemoveBlock(blk); err != nil {
		return nil, err
	}
	if err := seq.InsertBlockAt(adjustForRemoval(cur, m.Position), blk); err != nil {
		return nil, err
	}
	blk.AddTag(ast.TagMoved)
	return blk, nil
}

func (m *MoveBlockInSequence) ToDict() map[string]interface{} {
	return map[string]interface{}{"type": m.Kind(), "sequence-id": m.SequenceID, "block-id": m.BlockID, "position": m.Position}
}

// MoveBlockToSequence relocates Block from wherever it currently
// lives into a different Sequence at Position.
type MoveBlockToSequence struct {
	BlockID    string
	SequenceID string
	Position   int
}

func (m *MoveBlockToSequence) Kind() string { return "MoveBlockToSequence" }

func (m *MoveBlockToSequence) Apply(root ast.Node) (ast.Node, error) {
	blk, err := findBlock(root, m.BlockID)
	if err != nil {
		return nil, err
	}
	if err := detach(blk); err != nil {
		return nil, err
	}
	seq, err := findSequence(root, m.SequenceID)
	if err != nil {
		return nil, err
	}
	if err := seq.InsertBlockAt(m.Position, blk); err != nil {
		return nil, err
	}
	blk.AddTag(ast.TagMoved)
	return blk, nil
}

func (m *MoveBlockToSequence) ToDict() map[string]interface{} {
	return map[string]interface{}{"type": m.Kind(), "block-id": m.BlockID, "sequence-id": m.SequenceID, "position": m.Position}
}

// MoveSequenceInProgram reorders Sequence among the program's
// top-level sequences.
type MoveSequenceInProgram struct {
	SequenceID string
	Position   int
}

func (m *MoveSequenceInProgram) Kind() string { return "MoveSequenceInProgram" }

func (m *MoveSequenceInProgram) Apply(root ast.Node) (ast.Node, error) {
	prog, err := findProgram(root)
	if err != nil {
		return nil, err
	}
	seq, err := findSequence(root, m.SequenceID)
	if err != nil {
		return nil, err
	}
	cur, err := prog.PositionOfChild(seq)
	if err != nil {
		return nil, err
	}
	if _, err := prog.RemoveSequence(seq); err != nil {
		return nil, err
	}
	if err := prog.InsertSequenceAt(adjustForRemoval(cur, m.Position), seq); err != nil {
		return nil, err
	}
	seq.AddTag(ast.TagMoved)
	return seq, nil
}

func (m *MoveSequenceInProgram) ToDict() map[string]interface{} {
	return map[string]interface{}{"type": m.Kind(), "sequence-id": m.SequenceID, "position": m.Position}
}

// MoveSequenceToProgram relocates Sequence — previously a Sequence
// nested inside some Input's C-shaped body — to become a top-level
// sequence of the (single) root Program.
type MoveSequenceToProgram struct {
	SequenceID string
	Position   int
}

func (m *MoveSequenceToProgram) Kind() string { return "MoveSequenceToProgram" }

func (m *MoveSequenceToProgram) Apply(root ast.Node) (ast.Node, error) {
	seq, err := findSequence(root, m.SequenceID)
	if err != nil {
		return nil, err
	}
	if err := detach(seq); err != nil {
		return nil, err
	}
	prog, err := findProgram(root)
	if err != nil {
		return nil, err
	}
	if err := prog.InsertSequenceAt(m.Position, seq); err != nil {
		return nil, err
	}
	seq.AddTag(ast.TagMoved)
	return seq, nil
}

func (m *MoveSequenceToProgram) ToDict() map[string]interface{} {
	return map[string]interface{}{"type": m.Kind(), "sequence-id": m.SequenceID, "position": m.Position}
}

// MoveInputToBlock reparents an Input from FromBlockID's block to
// ToBlockID's block, preserving the target's name-sort.
type MoveInputToBlock struct {
	FromBlockID string
	ToBlockID   string
	InputID     string
}

func (m *MoveInputToBlock) Kind() string { return "MoveInputToBlock" }

func (m *MoveInputToBlock) Apply(root ast.Node) (ast.Node, error) {
	in, err := findInput(root, m.InputID)
	if err != nil {
		return nil, err
	}
	from, ok := in.Parent().(*ast.Block)
	if !ok || from.ID() != m.FromBlockID {
		return nil, ferrors.NewInvariant("input %q is not currently a child of block %q", m.InputID, m.FromBlockID)
	}
	if _, err := from.RemoveInput(in.Name); err != nil {
		return nil, err
	}
	to, err := findBlock(root, m.ToBlockID)
	if err != nil {
		return nil, err
	}
	if err := to.InsertInput(in); err != nil {
		return nil, err
	}
	in.AddTag(ast.TagMoved)
	return in, nil
}

func (m *MoveInputToBlock) ToDict() map[string]interface{} {
	return map[string]interface{}{
		"type": m.Kind(), "move-from-block-id": m.FromBlockID, "move-to-block-id": m.ToBlockID, "input-id": m.InputID,
	}
}

// MoveFieldToBlock reparents a Field from FromBlockID's block to
// ToBlockID's block, preserving the target's name-sort.
type MoveFieldToBlock struct {
	FromBlockID string
	ToBlockID   string
	FieldID     string
}

func (m *MoveFieldToBlock) Kind() string { return "MoveFieldToBlock" }

func (m *MoveFieldToBlock) Apply(root ast.Node) (ast.Node, error) {
	n := root.Find(m.FieldID)
	f, ok := n.(*ast.Field)
	if !ok {
		return nil, ferrors.NewInvariant("no field with id %q", m.FieldID)
	}
	from, ok := f.Parent().(*ast.Block)
	if !ok || from.ID() != m.FromBlockID {
		return nil, ferrors.NewInvariant("field %q is not currently a child of block %q", m.FieldID, m.FromBlockID)
	}
	if _, err := from.RemoveField(f.Name); err != nil {
		return nil, err
	}
	to, err := findBlock(root, m.ToBlockID)
	if err != nil {
		return nil, err
	}
	if err := to.InsertField(f); err != nil {
		return nil, err
	}
	f.AddTag(ast.TagMoved)
	return f, nil
}

func (m *MoveFieldToBlock) ToDict() map[string]interface{} {
	return map[string]interface{}{
		"type": m.Kind(), "move-from-block-id": m.FromBlockID, "move-to-block-id": m.ToBlockID, "field-id": m.FieldID,
	}
}

// MoveNodeToInput relocates an arbitrary expression node (Block,
// Sequence, or Literal) from wherever it currently lives to become
// ParentBlockID's named input's expression.
type MoveNodeToInput struct {
	NodeID        string
	ParentBlockID string
	InputName     string
}

func (m *MoveNodeToInput) Kind() string { return "MoveNodeToInput" }

func (m *MoveNodeToInput) Apply(root ast.Node) (ast.Node, error) {
	n := root.Find(m.NodeID)
	if n == nil {
		return nil, ferrors.NewInvariant("no node with id %q", m.NodeID)
	}
	if err := detach(n); err != nil {
		return nil, err
	}
	blk, err := findBlock(root, m.ParentBlockID)
	if err != nil {
		return nil, err
	}
	in := blk.FindInput(m.InputName)
	if in == nil {
		return nil, ferrors.NewInvariant("block %q has no input %q", m.ParentBlockID, m.InputName)
	}
	if in.Expr != nil {
		return nil, ferrors.NewInvariant("input %q already has an expression", in.ID())
	}
	in.SetExpression(n)
	n.AddTag(ast.TagMoved)
	return n, nil
}

func (m *MoveNodeToInput) ToDict() map[string]interface{} {
	return map[string]interface{}{
		"type": m.Kind(), "node-id": m.NodeID, "parent-block-id": m.ParentBlockID, "input-name": m.InputName,
	}
}
