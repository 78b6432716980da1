// Package diff synthesizes an edit.Script from a GumTree mapping
// between two trees: a single breadth-first pass over the destination
// combining insert, update, move and align, followed by a post-order
// delete pass over the mutated source (spec.md §4.F).
package diff

import (
	"github.com/cmroboticsacademy/facilitate/ast"
	"github.com/cmroboticsacademy/facilitate/config"
	"github.com/cmroboticsacademy/facilitate/edit"
	"github.com/cmroboticsacademy/facilitate/ferrors"
	"github.com/cmroboticsacademy/facilitate/gumtree"
	"github.com/cmroboticsacademy/facilitate/mapping"
)

// Compute is the end-to-end pipeline: deep-copy both trees, match them
// with GumTree, and synthesize the edit script between the copies.
// Neither treeFrom nor treeTo is modified.
func Compute(treeFrom, treeTo ast.Node, t config.Thresholds) (*edit.Script, error) {
	from := treeFrom.Copy()
	to := treeTo.Copy()

	m := gumtree.Match(from, to, t)
	// The two roots carry the same fixed id (ast.ProgramID) by
	// construction; they are definitionally the same slot regardless
	// of whether top-down/bottom-up happened to discover it via
	// equivalence or dice.
	if err := m.Add(from, to); err != nil {
		return nil, err
	}

	script, _, err := Synthesize(from, to, m)
	return script, err
}

// Synthesize runs the two-phase algorithm of spec.md §4.F directly
// against treeFrom (mutated in place) and treeTo (read only), given a
// mapping already computed over this exact pair of trees. It returns
// the accumulated script and the mutated treeFrom, which on success
// satisfies treeFrom.EquivalentTo(treeTo).
func Synthesize(treeFrom, treeTo ast.Node, m *mapping.Mappings) (*edit.Script, ast.Node, error) {
	script := edit.New()

	for _, y := range ast.BFS(treeTo) {
		x, mapped := m.DestinationIsMappedTo(y)
		if !mapped {
			if err := insertNode(treeFrom, y, m, script); err != nil {
				return nil, nil, err
			}
			continue
		}
		if err := updateNode(treeFrom, x, y, script); err != nil {
			return nil, nil, err
		}
		if err := moveNode(treeFrom, x, y, m, script); err != nil {
			return nil, nil, err
		}
		if isOrderedContainer(x) {
			if err := alignChildren(treeFrom, x, y, m, script); err != nil {
				return nil, nil, err
			}
		}
	}

	if err := deleteUnmapped(treeFrom, m, script); err != nil {
		return nil, nil, err
	}

	if !treeFrom.EquivalentTo(treeTo) {
		return nil, nil, ferrors.NewInvariant("diff post-condition violated: synthesized result is not equivalent to the destination")
	}
	return script, treeFrom, nil
}

func isOrderedContainer(n ast.Node) bool {
	switch n.(type) {
	case *ast.Program, *ast.Sequence:
		return true
	default:
		return false
	}
}

// insertNode handles the Insert case of phase 1: y has no source
// image yet. By BFS order its destination parent was already visited
// and therefore already has a source image, whether pre-existing or
// itself just inserted.
func insertNode(work ast.Node, y ast.Node, m *mapping.Mappings, script *edit.Script) error {
	yParent := y.Parent()
	if yParent == nil {
		// y is the destination root; roots are seeded into the mapping
		// up front and never reach here unmapped.
		return ferrors.NewInvariant("root node %q has no source image", y.ID())
	}
	parentImage, ok := m.DestinationIsMappedTo(yParent)
	if !ok {
		return ferrors.NewInvariant("cannot insert %q: its destination parent %q has no source image yet", y.ID(), yParent.ID())
	}

	op, err := buildInsertOp(y, parentImage, m)
	if err != nil {
		return err
	}
	newNode, err := op.Apply(work)
	if err != nil {
		return err
	}
	script.Append(op)
	return m.Add(newNode, y)
}

func buildInsertOp(y, parentImage ast.Node, m *mapping.Mappings) (edit.Op, error) {
	switch yv := y.(type) {
	case *ast.Sequence:
		switch pv := parentImage.(type) {
		case *ast.Program:
			return &edit.AddSequenceToProgram{Position: computePosition(y, parentImage, m)}, nil
		case *ast.Input:
			blk, ok := pv.Parent().(*ast.Block)
			if !ok {
				return nil, ferrors.NewInvariant("input %q has no block parent", pv.ID())
			}
			return &edit.AddSequenceToInput{BlockID: blk.ID(), InputName: pv.Name}, nil
		default:
			return nil, ferrors.NewInvariant("cannot insert Sequence %q under %T", y.ID(), parentImage)
		}
	case *ast.Block:
		switch pv := parentImage.(type) {
		case *ast.Sequence:
			return &edit.AddBlockToSequence{
				SequenceID: pv.ID(), BlockID: yv.ID(), Position: computePosition(y, parentImage, m),
				Opcode: yv.Opcode, IsShadow: yv.IsShadow,
			}, nil
		case *ast.Input:
			return &edit.AddBlockToInput{InputID: pv.ID(), Opcode: yv.Opcode, IsShadow: yv.IsShadow}, nil
		default:
			return nil, ferrors.NewInvariant("cannot insert Block %q under %T", y.ID(), parentImage)
		}
	case *ast.Input:
		blk, ok := parentImage.(*ast.Block)
		if !ok {
			return nil, ferrors.NewInvariant("cannot insert Input %q under %T", y.ID(), parentImage)
		}
		return &edit.AddInputToBlock{BlockID: blk.ID(), Name: yv.Name}, nil
	case *ast.Literal:
		in, ok := parentImage.(*ast.Input)
		if !ok {
			return nil, ferrors.NewInvariant("cannot insert Literal %q under %T", y.ID(), parentImage)
		}
		return &edit.AddLiteralToInput{InputID: in.ID(), Value: yv.Value}, nil
	case *ast.Field:
		blk, ok := parentImage.(*ast.Block)
		if !ok {
			return nil, ferrors.NewInvariant("cannot insert Field %q under %T", y.ID(), parentImage)
		}
		return &edit.AddFieldToBlock{BlockID: blk.ID(), Name: yv.Name, Value: yv.Value}, nil
	default:
		return nil, ferrors.NewInvariant("cannot insert node of variant %T", y)
	}
}

// computePosition derives the insertion/move target index for an
// ordered (Sequence- or Program-level) child: walk left from y among
// its destination siblings until one with a source image inside
// parentImage is found, and return the slot right after that image.
// Absent any such sibling, the target is the front of the list.
func computePosition(y, parentImage ast.Node, m *mapping.Mappings) int {
	siblings := y.Parent().Children()
	idx := indexOfIdentity(siblings, y)
	for i := idx - 1; i >= 0; i-- {
		img, ok := m.DestinationIsMappedTo(siblings[i])
		if !ok {
			continue
		}
		if pos, err := positionWithin(parentImage, img); err == nil {
			return pos + 1
		}
	}
	return 0
}

func indexOfIdentity(nodes []ast.Node, target ast.Node) int {
	for i, n := range nodes {
		if n == target {
			return i
		}
	}
	return -1
}

func positionWithin(parent, child ast.Node) (int, error) {
	switch p := parent.(type) {
	case *ast.Program:
		seq, ok := child.(*ast.Sequence)
		if !ok {
			return -1, ferrors.NewInvariant("expected a Sequence child of Program, got %T", child)
		}
		return p.PositionOfChild(seq)
	case *ast.Sequence:
		blk, ok := child.(*ast.Block)
		if !ok {
			return -1, ferrors.NewInvariant("expected a Block child of Sequence, got %T", child)
		}
		return p.PositionOfChild(blk)
	default:
		return -1, ferrors.NewInvariant("%T has no positionally ordered children", parent)
	}
}

func updateNode(work ast.Node, x, y ast.Node, script *edit.Script) error {
	if x.SurfaceEquivalentTo(y) {
		return nil
	}
	op, err := edit.ComputeUpdate(x, y)
	if err != nil {
		return err
	}
	if op == nil {
		return nil
	}
	if _, err := op.Apply(work); err != nil {
		return err
	}
	script.Append(op)
	return nil
}

func moveNode(work ast.Node, x, y ast.Node, m *mapping.Mappings, script *edit.Script) error {
	xParent, yParent := x.Parent(), y.Parent()
	if xParent == nil || yParent == nil {
		return nil
	}
	yParentImage, ok := m.DestinationIsMappedTo(yParent)
	if !ok {
		return ferrors.NewInvariant("destination parent %q of mapped node %q has no source image", yParent.ID(), y.ID())
	}
	if yParentImage == xParent {
		return nil
	}

	op, err := buildMoveOp(x, yParentImage, y, m)
	if err != nil {
		return err
	}
	if _, err := op.Apply(work); err != nil {
		return err
	}
	script.Append(op)
	return nil
}

func buildMoveOp(x, targetParentImage, y ast.Node, m *mapping.Mappings) (edit.Op, error) {
	switch xv := x.(type) {
	case *ast.Input:
		toBlk, ok := targetParentImage.(*ast.Block)
		if !ok {
			return nil, ferrors.NewInvariant("cannot move Input %q to %T", x.ID(), targetParentImage)
		}
		fromBlk, ok := xv.Parent().(*ast.Block)
		if !ok {
			return nil, ferrors.NewInvariant("input %q has no block parent", x.ID())
		}
		return &edit.MoveInputToBlock{FromBlockID: fromBlk.ID(), ToBlockID: toBlk.ID(), InputID: xv.ID()}, nil
	case *ast.Field:
		toBlk, ok := targetParentImage.(*ast.Block)
		if !ok {
			return nil, ferrors.NewInvariant("cannot move Field %q to %T", x.ID(), targetParentImage)
		}
		fromBlk, ok := xv.Parent().(*ast.Block)
		if !ok {
			return nil, ferrors.NewInvariant("field %q has no block parent", x.ID())
		}
		return &edit.MoveFieldToBlock{FromBlockID: fromBlk.ID(), ToBlockID: toBlk.ID(), FieldID: xv.ID()}, nil
	case *ast.Block:
		switch pv := targetParentImage.(type) {
		case *ast.Sequence:
			return &edit.MoveBlockToSequence{BlockID: xv.ID(), SequenceID: pv.ID(), Position: computePosition(y, targetParentImage, m)}, nil
		case *ast.Input:
			parentBlk, ok := pv.Parent().(*ast.Block)
			if !ok {
				return nil, ferrors.NewInvariant("input %q has no block parent", pv.ID())
			}
			return &edit.MoveNodeToInput{NodeID: xv.ID(), ParentBlockID: parentBlk.ID(), InputName: pv.Name}, nil
		default:
			return nil, ferrors.NewInvariant("cannot move Block %q to %T", x.ID(), targetParentImage)
		}
	case *ast.Sequence:
		switch pv := targetParentImage.(type) {
		case *ast.Program:
			return &edit.MoveSequenceToProgram{SequenceID: xv.ID(), Position: computePosition(y, targetParentImage, m)}, nil
		case *ast.Input:
			parentBlk, ok := pv.Parent().(*ast.Block)
			if !ok {
				return nil, ferrors.NewInvariant("input %q has no block parent", pv.ID())
			}
			return &edit.MoveNodeToInput{NodeID: xv.ID(), ParentBlockID: parentBlk.ID(), InputName: pv.Name}, nil
		default:
			return nil, ferrors.NewInvariant("cannot move Sequence %q to %T", x.ID(), targetParentImage)
		}
	case *ast.Literal:
		in, ok := targetParentImage.(*ast.Input)
		if !ok {
			return nil, ferrors.NewInvariant("cannot move Literal %q to %T", x.ID(), targetParentImage)
		}
		parentBlk, ok := in.Parent().(*ast.Block)
		if !ok {
			return nil, ferrors.NewInvariant("input %q has no block parent", in.ID())
		}
		return &edit.MoveNodeToInput{NodeID: xv.ID(), ParentBlockID: parentBlk.ID(), InputName: in.Name}, nil
	default:
		return nil, ferrors.NewInvariant("cannot move node of variant %T", x)
	}
}

// alignChildren reorders x's mapped children to match the order of
// y's mapped children, moving only those outside the longest common
// subsequence under the "paired in mappings" equality (spec.md §4.F,
// §8 LCS correctness).
func alignChildren(work ast.Node, x, y ast.Node, m *mapping.Mappings, script *edit.Script) error {
	var xMapped, yMapped []ast.Node
	xMappedSet := make(map[ast.Node]bool)
	for _, c := range x.Children() {
		if m.SourceIsMapped(c) {
			xMapped = append(xMapped, c)
			xMappedSet[c] = true
		}
	}
	for _, c := range y.Children() {
		if m.DestinationIsMapped(c) {
			yMapped = append(yMapped, c)
		}
	}

	lcs := LCS(xMapped, yMapped, func(a, b ast.Node) bool {
		img, ok := m.SourceIsMappedTo(a)
		return ok && img == b
	})
	inLCS := make(map[ast.Node]bool, len(lcs))
	for _, n := range lcs {
		inLCS[n] = true
	}

	// Realignment only concerns children y already shares with x today
	// (its partner must already be one of x's mapped children); a
	// partner parented elsewhere is relocated by the Move case on that
	// node's own BFS visit, not here.
	for _, yc := range yMapped {
		xc, ok := m.DestinationIsMappedTo(yc)
		if !ok || !xMappedSet[xc] || inLCS[xc] {
			continue
		}
		op, err := buildAlignOp(x, xc, yc, m)
		if err != nil {
			return err
		}
		if _, err := op.Apply(work); err != nil {
			return err
		}
		script.Append(op)
	}
	return nil
}

func buildAlignOp(x, xc, yc ast.Node, m *mapping.Mappings) (edit.Op, error) {
	pos := computePosition(yc, x, m)
	switch v := xc.(type) {
	case *ast.Block:
		seq, ok := x.(*ast.Sequence)
		if !ok {
			return nil, ferrors.NewInvariant("expected Sequence parent for Block realignment, got %T", x)
		}
		return &edit.MoveBlockInSequence{SequenceID: seq.ID(), BlockID: v.ID(), Position: pos}, nil
	case *ast.Sequence:
		if _, ok := x.(*ast.Program); !ok {
			return nil, ferrors.NewInvariant("expected Program parent for Sequence realignment, got %T", x)
		}
		return &edit.MoveSequenceInProgram{SequenceID: v.ID(), Position: pos}, nil
	default:
		return nil, ferrors.NewInvariant("unexpected child variant %T during alignment", xc)
	}
}

// deleteUnmapped is phase 2: anything in the mutated source that
// never became a mapping source is gone from the destination and is
// removed, children first. Any node whose matched descendants were
// not relocated during phase 1 indicates a bug in that phase, not a
// recoverable data problem, so a Delete failure here is returned as an
// invariant error.
func deleteUnmapped(work ast.Node, m *mapping.Mappings, script *edit.Script) error {
	sources := m.Sources()
	for _, n := range ast.Postorder(work) {
		if sources[n] {
			continue
		}
		op := &edit.Delete{NodeID: n.ID()}
		if _, err := op.Apply(work); err != nil {
			return ferrors.NewInvariant("phase two delete of %q failed: %s", n.ID(), err)
		}
		script.Append(op)
	}
	return nil
}
