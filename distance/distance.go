// Package distance scores an edit.Script with a weighted cost
// aggregate: each operation contributes a fixed per-kind weight drawn
// from config.Costs, and the scalar sum is the distance between the
// two programs the script transforms (spec.md §4.G).
package distance

import (
	"github.com/cmroboticsacademy/facilitate/ast"
	"github.com/cmroboticsacademy/facilitate/config"
	"github.com/cmroboticsacademy/facilitate/edit"
	"github.com/cmroboticsacademy/facilitate/ferrors"
)

// Compute replays script against a copy of treeFrom, accumulating the
// weighted cost of each operation as it is applied. treeFrom itself is
// not modified. There is no form that takes an already-applied
// destination tree instead of replaying the script.
func Compute(script *edit.Script, treeFrom ast.Node, costs config.Costs) (float64, error) {
	work := treeFrom.Copy()
	total := 0.0
	for i, op := range script.Ops {
		c, err := costOf(op, work, costs)
		if err != nil {
			return 0, ferrors.NewInvariant("scoring edit %d (%s): %s", i, op.Kind(), err)
		}
		total += c
		if _, err := op.Apply(work); err != nil {
			return 0, ferrors.NewInvariant("applying edit %d (%s) during scoring: %s", i, op.Kind(), err)
		}
	}
	return total, nil
}

// Score is another name for Compute: it also replays script against a
// copy of treeFrom to find the node variant each Delete and Update
// acts on.
func Score(script *edit.Script, treeFrom ast.Node, costs config.Costs) (float64, error) {
	return Compute(script, treeFrom, costs)
}

func costOf(op edit.Op, work ast.Node, costs config.Costs) (float64, error) {
	switch o := op.(type) {
	case *edit.AddSequenceToProgram:
		return costs.SequenceAddOrDelete, nil
	case *edit.AddSequenceToInput:
		return costs.SequenceAddOrDelete, nil
	case *edit.AddBlockToSequence:
		return costs.BlockAddOrDelete, nil
	case *edit.AddBlockToInput:
		return costs.BlockAddOrDelete, nil
	case *edit.AddInputToBlock:
		return costs.LeafAddOrDelete, nil
	case *edit.AddFieldToBlock:
		return costs.LeafAddOrDelete, nil
	case *edit.AddLiteralToInput:
		return costs.LeafAddOrDelete, nil

	case *edit.Delete:
		n := work.Find(o.NodeID)
		if n == nil {
			return 0, ferrors.NewInvariant("no node with id %q", o.NodeID)
		}
		return deleteCost(n, costs), nil

	case *edit.Update:
		n := work.Find(o.NodeID)
		if n == nil {
			return 0, ferrors.NewInvariant("no node with id %q", o.NodeID)
		}
		return updateCost(n, costs), nil

	case *edit.MoveBlockInSequence, *edit.MoveSequenceInProgram:
		return costs.MoveIntraSequence, nil
	case *edit.MoveBlockToSequence, *edit.MoveSequenceToProgram:
		return costs.MoveCrossSequence, nil
	case *edit.MoveInputToBlock, *edit.MoveFieldToBlock:
		return costs.MoveTrivialRelink, nil
	case *edit.MoveNodeToInput:
		return costs.MoveIntoInput, nil

	default:
		return 0, ferrors.NewInvariant("distance: unrecognized edit kind %T", op)
	}
}

// deleteCost and updateCost key off the pre-mutation node variant
// found at the operation's id, since Delete and Update carry no
// variant of their own (spec.md §4.E).
func deleteCost(n ast.Node, costs config.Costs) float64 {
	switch n.(type) {
	case *ast.Sequence:
		return costs.SequenceAddOrDelete
	case *ast.Block:
		return costs.BlockAddOrDelete
	default:
		return costs.LeafAddOrDelete
	}
}

// updateCost resolves the Open Question §4.G leaves unstated for
// Field and Input updates: a Field's value is treated the same as a
// Literal's — both are a bare scalar payload — so Field updates share
// UpdateLiteral's weight. An Input update only ever renames the slot
// (spec.md §4.E), a relabeling on par with adding or removing one, so
// it shares LeafAddOrDelete's weight rather than introducing a third,
// unlisted cost knob.
func updateCost(n ast.Node, costs config.Costs) float64 {
	switch n.(type) {
	case *ast.Block:
		return costs.UpdateBlock
	case *ast.Literal:
		return costs.UpdateLiteral
	case *ast.Field:
		return costs.UpdateLiteral
	case *ast.Input:
		return costs.LeafAddOrDelete
	default:
		return 0
	}
}
