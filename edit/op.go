// Package edit defines the closed set of tagged tree-transformation
// operations the diff synthesizer emits: additions, moves, an
// update, and a delete, each locating its target by id lookup against
// a fresh tree so a script can be replayed against any structurally
// matching root (spec.md §4.E).
package edit

import (
	"github.com/cmroboticsacademy/facilitate/ast"
	"github.com/cmroboticsacademy/facilitate/ferrors"
)

// Op is a single edit-script operation.
type Op interface {
	// Kind names the operation's variant, matching the "type" field
	// of its ToDict encoding.
	Kind() string
	// Apply locates this operation's target(s) within root by id and
	// mutates root in place, returning the affected node.
	Apply(root ast.Node) (ast.Node, error)
	// ToDict renders the operation's parameters with the hyphenated
	// keys of spec.md §6's edit-script JSON format.
	ToDict() map[string]interface{}
}

// FromDict reconstructs an Op from its ToDict encoding, dispatching
// on the "type" field.
func FromDict(d map[string]interface{}) (Op, error) {
	kind, ok := d["type"].(string)
	if !ok {
		return nil, ferrors.NewInvariant("edit dict missing string \"type\" field")
	}
	switch kind {
	case "AddSequenceToProgram":
		pos, err := getInt(d, "position")
		if err != nil {
			return nil, err
		}
		return &AddSequenceToProgram{Position: pos}, nil
	case "AddSequenceToInput":
		blockID, err := getString(d, "block-id")
		if err != nil {
			return nil, err
		}
		inputName, err := getString(d, "input-name")
		if err != nil {
			return nil, err
		}
		return &AddSequenceToInput{BlockID: blockID, InputName: inputName}, nil
	case "AddInputToBlock":
		blockID, err := getString(d, "block-id")
		if err != nil {
			return nil, err
		}
		name, err := getString(d, "name")
		if err != nil {
			return nil, err
		}
		return &AddInputToBlock{BlockID: blockID, Name: name}, nil
	case "AddLiteralToInput":
		inputID, err := getString(d, "input-id")
		if err != nil {
			return nil, err
		}
		value, err := getString(d, "value")
		if err != nil {
			return nil, err
		}
		return &AddLiteralToInput{InputID: inputID, Value: value}, nil
	case "AddBlockToSequence":
		seqID, err := getString(d, "sequence-id")
		if err != nil {
			return nil, err
		}
		blockID, err := getString(d, "block-id")
		if err != nil {
			return nil, err
		}
		pos, err := getInt(d, "position")
		if err != nil {
			return nil, err
		}
		opcode, err := getString(d, "opcode")
		if err != nil {
			return nil, err
		}
		shadow, err := getBool(d, "is-shadow")
		if err != nil {
			return nil, err
		}
		return &AddBlockToSequence{SequenceID: seqID, BlockID: blockID, Position: pos, Opcode: opcode, IsShadow: shadow}, nil
	case "AddBlockToInput":
		inputID, err := getString(d, "input-id")
		if err != nil {
			return nil, err
		}
		opcode, err := getString(d, "opcode")
		if err != nil {
			return nil, err
		}
		shadow, err := getBool(d, "is-shadow")
		if err != nil {
			return nil, err
		}
		return &AddBlockToInput{InputID: inputID, Opcode: opcode, IsShadow: shadow}, nil
	case "AddFieldToBlock":
		blockID, err := getString(d, "block-id")
		if err != nil {
			return nil, err
		}
		name, err := getString(d, "name")
		if err != nil {
			return nil, err
		}
		value, err := getString(d, "value")
		if err != nil {
			return nil, err
		}
		return &AddFieldToBlock{BlockID: blockID, Name: name, Value: value}, nil
	case "MoveBlockInSequence":
		seqID, err := getString(d, "sequence-id")
		if err != nil {
			return nil, err
		}
		blockID, err := getString(d, "block-id")
		if err != nil {
			return nil, err
		}
		pos, err := getInt(d, "position")
		if err != nil {
			return nil, err
		}
		return &MoveBlockInSequence{SequenceID: seqID, BlockID: blockID, Position: pos}, nil
	case "MoveBlockToSequence":
		blockID, err := getString(d, "block-id")
		if err != nil {
			return nil, err
		}
		seqID, err := getString(d, "sequence-id")
		if err != nil {
			return nil, err
		}
		pos, err := getInt(d, "position")
		if err != nil {
			return nil, err
		}
		return &MoveBlockToSequence{BlockID: blockID, SequenceID: seqID, Position: pos}, nil
	case "MoveSequenceInProgram":
		seqID, err := getString(d, "sequence-id")
		if err != nil {
			return nil, err
		}
		pos, err := getInt(d, "position")
		if err != nil {
			return nil, err
		}
		return &MoveSequenceInProgram{SequenceID: seqID, Position: pos}, nil
	case "MoveSequenceToProgram":
		seqID, err := getString(d, "sequence-id")
		if err != nil {
			return nil, err
		}
		pos, err := getInt(d, "position")
		if err != nil {
			return nil, err
		}
		return &MoveSequenceToProgram{SequenceID: seqID, Position: pos}, nil
	case "MoveInputToBlock":
		from, err := getString(d, "move-from-block-id")
		if err != nil {
			return nil, err
		}
		to, err := getString(d, "move-to-block-id")
		if err != nil {
			return nil, err
		}
		inputID, err := getString(d, "input-id")
		if err != nil {
			return nil, err
		}
		return &MoveInputToBlock{FromBlockID: from, ToBlockID: to, InputID: inputID}, nil
	case "MoveFieldToBlock":
		from, err := getString(d, "move-from-block-id")
		if err != nil {
			return nil, err
		}
		to, err := getString(d, "move-to-block-id")
		if err != nil {
			return nil, err
		}
		fieldID, err := getString(d, "field-id")
		if err != nil {
			return nil, err
		}
		return &MoveFieldToBlock{FromBlockID: from, ToBlockID: to, FieldID: fieldID}, nil
	case "MoveNodeToInput":
		nodeID, err := getString(d, "node-id")
		if err != nil {
			return nil, err
		}
		parentBlockID, err := getString(d, "parent-block-id")
		if err != nil {
			return nil, err
		}
		inputName, err := getString(d, "input-name")
		if err != nil {
			return nil, err
		}
		return &MoveNodeToInput{NodeID: nodeID, ParentBlockID: parentBlockID, InputName: inputName}, nil
	case "Update":
		nodeID, err := getString(d, "node-id")
		if err != nil {
			return nil, err
		}
		value, err := getString(d, "value")
		if err != nil {
			return nil, err
		}
		return &Update{NodeID: nodeID, Value: value}, nil
	case "Delete":
		nodeID, err := getString(d, "node-id")
		if err != nil {
			return nil, err
		}
		noDelete, _ := d["no-delete"].(bool)
		return &Delete{NodeID: nodeID, NoDelete: noDelete}, nil
	default:
		return nil, ferrors.NewInvariant("unknown edit kind %q", kind)
	}
}

func getString(d map[string]interface{}, key string) (string, error) {
	v, ok := d[key].(string)
	if !ok {
		return "", ferrors.NewInvariant("edit dict missing string field %q", key)
	}
	return v, nil
}

func getBool(d map[string]interface{}, key string) (bool, error) {
	v, ok := d[key].(bool)
	if !ok {
		return false, ferrors.NewInvariant("edit dict missing bool field %q", key)
	}
	return v, nil
}

// getInt accepts either a Go int (constructed in-process) or a
// float64 (as produced by encoding/json unmarshaling into
// interface{}).
func getInt(d map[string]interface{}, key string) (int, error) {
	switch v := d[key].(type) {
	case int:
		return v, nil
	case float64:
		return int(v), nil
	default:
		return 0, ferrors.NewInvariant("edit dict missing numeric field %q", key)
	}
}

func findBlock(root ast.Node, id string) (*ast.Block, error) {
	n := root.Find(id)
	b, ok := n.(*ast.Block)
	if !ok {
		return nil, ferrors.NewInvariant("no block with id %q", id)
	}
	return b, nil
}

func findSequence(root ast.Node, id string) (*ast.Sequence, error) {
	n := root.Find(id)
	s, ok := n.(*ast.Sequence)
	if !ok {
		return nil, ferrors.NewInvariant("no sequence with id %q", id)
	}
	return s, nil
}

func findInput(root ast.Node, id string) (*ast.Input, error) {
	n := root.Find(id)
	in, ok := n.(*ast.Input)
	if !ok {
		return nil, ferrors.NewInvariant("no input with id %q", id)
	}
	return in, nil
}

func findProgram(root ast.Node) (*ast.Program, error) {
	p, ok := root.(*ast.Program)
	if !ok {
		return nil, ferrors.NewInvariant("operation requires the Program root, got %T", root)
	}
	return p, nil
}

// detach removes n from its current parent, regardless of the
// parent's variant, restoring whatever invariant that variant
// maintains over its children (name-sort, positional order, at-most-
// one expression).
func detach(n ast.Node) error {
	parent := n.Parent()
	if parent == nil {
		return ferrors.NewInvariant("node %q has no parent to detach from", n.ID())
	}
	switch p := parent.(type) {
	case *ast.Program:
		seq, ok := n.(*ast.Sequence)
		if !ok {
			return ferrors.NewInvariant("program child %q is not a Sequence", n.ID())
		}
		_, err := p.RemoveSequence(seq)
		return err
	case *ast.Sequence:
		blk, ok := n.(*ast.Block)
		if !ok {
			return ferrors.NewInvariant("sequence child %q is not a Block", n.ID())
		}
		_, err := p.RemoveBlock(blk)
		return err
	case *ast.Block:
		switch v := n.(type) {
		case *ast.Field:
			_, err := p.RemoveField(v.Name)
			return err
		case *ast.Input:
			_, err := p.RemoveInput(v.Name)
			return err
		default:
			return ferrors.NewInvariant("block child %q is neither a Field nor an Input", n.ID())
		}
	case *ast.Input:
		p.RemoveExpression()
		return nil
	default:
		return ferrors.NewInvariant("node %q has a parent of unrecognized variant %T", n.ID(), parent)
	}
}
