package edit

import (
	"github.com/google/uuid"

	"github.com/cmroboticsacademy/facilitate/ast"
	"github.com/cmroboticsacademy/facilitate/ferrors"
)

// AddSequenceToProgram inserts a fresh, empty Sequence at Position
// among the root Program's top-level sequences. The new sequence's id
// is freshly generated: unlike a loader-built Sequence it has no
// first-block content to derive one from (spec.md §4.E).
type AddSequenceToProgram struct {
	Position int
}

func (a *AddSequenceToProgram) Kind() string { return "AddSequenceToProgram" }

func (a *AddSequenceToProgram) Apply(root ast.Node) (ast.Node, error) {
	prog, err := findProgram(root)
	if err != nil {
		return nil, err
	}
	seq := ast.NewSequence(uuid.NewString())
	if err := prog.InsertSequenceAt(a.Position, seq); err != nil {
		return nil, err
	}
	seq.AddTag(ast.TagAdded)
	return seq, nil
}

func (a *AddSequenceToProgram) ToDict() map[string]interface{} {
	return map[string]interface{}{"type": a.Kind(), "position": a.Position}
}

// AddSequenceToInput replaces an empty Input's expression with a
// fresh, empty Sequence — the shape a C-block's body takes the
// instant it is created, before any statement is added to it.
type AddSequenceToInput struct {
	BlockID   string
	InputName string
}

func (a *AddSequenceToInput) Kind() string { return "AddSequenceToInput" }

func (a *AddSequenceToInput) Apply(root ast.Node) (ast.Node, error) {
	blk, err := findBlock(root, a.BlockID)
	if err != nil {
		return nil, err
	}
	in := blk.FindInput(a.InputName)
	if in == nil {
		return nil, ferrors.NewInvariant("block %q has no input %q", a.BlockID, a.InputName)
	}
	if in.Expr != nil {
		return nil, ferrors.NewInvariant("input %q already has an expression", in.ID())
	}
	seq := ast.NewSequence(uuid.NewString())
	in.SetExpression(seq)
	seq.AddTag(ast.TagAdded)
	return seq, nil
}

func (a *AddSequenceToInput) ToDict() map[string]interface{} {
	return map[string]interface{}{"type": a.Kind(), "block-id": a.BlockID, "input-name": a.InputName}
}

// AddInputToBlock creates a fresh, empty Input named Name on Block.
// The new input's id is deterministically derived from the block and
// name, matching the scheme the loader uses for input ids.
type AddInputToBlock struct {
	BlockID string
	Name    string
}

func (a *AddInputToBlock) Kind() string { return "AddInputToBlock" }

func (a *AddInputToBlock) Apply(root ast.Node) (ast.Node, error) {
	blk, err := findBlock(root, a.BlockID)
	if err != nil {
		return nil, err
	}
	in, err := blk.AddInput(a.BlockID+":input:"+a.Name, a.Name)
	if err != nil {
		return nil, err
	}
	in.AddTag(ast.TagAdded)
	return in, nil
}

func (a *AddInputToBlock) ToDict() map[string]interface{} {
	return map[string]interface{}{"type": a.Kind(), "block-id": a.BlockID, "name": a.Name}
}

// AddLiteralToInput gives a currently-empty Input a Literal
// expression. The literal's id is derived from the input's id.
type AddLiteralToInput struct {
	InputID string
	Value   string
}

func (a *AddLiteralToInput) Kind() string { return "AddLiteralToInput" }

func (a *AddLiteralToInput) Apply(root ast.Node) (ast.Node, error) {
	in, err := findInput(root, a.InputID)
	if err != nil {
		return nil, err
	}
	lit, err := in.AddLiteral(a.InputID+":literal", a.Value)
	if err != nil {
		return nil, err
	}
	lit.AddTag(ast.TagAdded)
	return lit, nil
}

func (a *AddLiteralToInput) ToDict() map[string]interface{} {
	return map[string]interface{}{"type": a.Kind(), "input-id": a.InputID, "value": a.Value}
}

// AddBlockToSequence inserts a freshly-built Block at Position within
// Sequence. Unlike the other Add* kinds, BlockID is supplied by the
// caller rather than derived: the diff synthesizer reuses the
// destination block's own id so the inserted node and its origin
// share an identity.
type AddBlockToSequence struct {
	SequenceID string
	BlockID    string
	Position   int
	Opcode     string
	IsShadow   bool
}

func (a *AddBlockToSequence) Kind() string { return "AddBlockToSequence" }

func (a *AddBlockToSequence) Apply(root ast.Node) (ast.Node, error) {
	seq, err := findSequence(root, a.SequenceID)
	if err != nil {
		return nil, err
	}
	blk := ast.NewBlock(a.BlockID, a.Opcode, a.IsShadow)
	if err := seq.InsertBlockAt(a.Position, blk); err != nil {
		return nil, err
	}
	blk.AddTag(ast.TagAdded)
	return blk, nil
}

func (a *AddBlockToSequence) ToDict() map[string]interface{} {
	return map[string]interface{}{
		"type": a.Kind(), "sequence-id": a.SequenceID, "block-id": a.BlockID,
		"position": a.Position, "opcode": a.Opcode, "is-shadow": a.IsShadow,
	}
}

// AddBlockToInput replaces an empty Input's expression with a
// freshly-built Block. The block's id is freshly generated.
type AddBlockToInput struct {
	InputID  string
	Opcode   string
	IsShadow bool
}

func (a *AddBlockToInput) Kind() string { return "AddBlockToInput" }

func (a *AddBlockToInput) Apply(root ast.Node) (ast.Node, error) {
	in, err := findInput(root, a.InputID)
	if err != nil {
		return nil, err
	}
	if in.Expr != nil {
		return nil, ferrors.NewInvariant("input %q already has an expression", a.InputID)
	}
	blk := ast.NewBlock(uuid.NewString(), a.Opcode, a.IsShadow)
	in.SetExpression(blk)
	blk.AddTag(ast.TagAdded)
	return blk, nil
}

func (a *AddBlockToInput) ToDict() map[string]interface{} {
	return map[string]interface{}{"type": a.Kind(), "input-id": a.InputID, "opcode": a.Opcode, "is-shadow": a.IsShadow}
}

// AddFieldToBlock creates a fresh Field named Name on Block. The new
// field's id is derived the same way the loader derives field ids.
type AddFieldToBlock struct {
	BlockID string
	Name    string
	Value   string
}

func (a *AddFieldToBlock) Kind() string { return "AddFieldToBlock" }

func (a *AddFieldToBlock) Apply(root ast.Node) (ast.Node, error) {
	blk, err := findBlock(root, a.BlockID)
	if err != nil {
		return nil, err
	}
	f, err := blk.AddField(a.BlockID+":field:"+a.Name, a.Name, a.Value)
	if err != nil {
		return nil, err
	}
	f.AddTag(ast.TagAdded)
	return f, nil
}

func (a *AddFieldToBlock) ToDict() map[string]interface{} {
	return map[string]interface{}{"type": a.Kind(), "block-id": a.BlockID, "name": a.Name, "value": a.Value}
}
