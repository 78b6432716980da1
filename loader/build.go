package loader

import (
	"sort"
	"strings"

	"github.com/cmroboticsacademy/facilitate/ast"
	"github.com/cmroboticsacademy/facilitate/ferrors"
)

// assemble performs the construction of spec.md §4.B step 6-7:
// construction recurses down from each top-level sequence, creating
// and caching a Sequence or Block node first and then building and
// attaching its members (or its fields and resolved input
// expressions), and the genuinely top-level sequences — those
// whose head block is not the expression-child of some input — are
// attached to a fresh Program in deterministic (sorted) order.
func (l *loadState) assemble() (*ast.Program, error) {
	l.visiting = map[string]bool{}

	var topSeqIDs []string
	for seqID, members := range l.sequenceMembers {
		head := members[0]
		if _, contained := l.containedBy[head]; !contained {
			topSeqIDs = append(topSeqIDs, seqID)
		}
	}
	sort.Strings(topSeqIDs)

	prog := ast.NewProgram()
	for _, seqID := range topSeqIDs {
		seq, err := l.buildSequence(seqID)
		if err != nil {
			return nil, err
		}
		prog.AppendSequence(seq)
	}
	return prog, nil
}

// buildNode resolves an input reference — which after rewriteInputReferences
// is either a sequence id or a contained block's id — into a built node.
func (l *loadState) buildNode(id string) (ast.Node, error) {
	if strings.HasPrefix(id, ":seq@") {
		return l.buildSequence(id)
	}
	return l.buildBlockNode(id)
}

func (l *loadState) buildSequence(seqID string) (*ast.Sequence, error) {
	if n, ok := l.nodes[seqID]; ok {
		return n.(*ast.Sequence), nil
	}
	members, ok := l.sequenceMembers[seqID]
	if !ok {
		return nil, ferrors.NewParse(seqID, "reference to unknown sequence")
	}
	seq := ast.NewSequence(seqID)
	l.nodes[seqID] = seq
	for _, bid := range members {
		blk, err := l.buildBlockNode(bid)
		if err != nil {
			return nil, err
		}
		seq.AppendBlock(blk)
	}
	return seq, nil
}

func (l *loadState) buildBlockNode(id string) (*ast.Block, error) {
	if n, ok := l.nodes[id]; ok {
		blk, ok := n.(*ast.Block)
		if !ok {
			return nil, ferrors.NewParse(id, "expected a block, found a different node variant")
		}
		return blk, nil
	}
	if l.visiting[id] {
		return nil, ferrors.NewParse(id, "cyclic parent/input graph detected")
	}
	b, ok := l.blocks[id]
	if !ok {
		return nil, ferrors.NewParse(id, "reference to unknown block")
	}
	l.visiting[id] = true
	defer delete(l.visiting, id)

	blk := ast.NewBlock(id, b.Opcode, b.Shadow)
	l.nodes[id] = blk

	fieldNames := make([]string, 0, len(b.Fields))
	for name := range b.Fields {
		fieldNames = append(fieldNames, name)
	}
	sort.Strings(fieldNames)
	for _, name := range fieldNames {
		value, err := fieldText(b.Fields[name])
		if err != nil {
			return nil, ferrors.NewParse(id, "field %q: %s", name, err)
		}
		if err := blk.InsertField(ast.NewField(id+":field:"+name, name, value)); err != nil {
			return nil, err
		}
	}

	inputNames := make([]string, 0, len(b.Inputs))
	for name := range b.Inputs {
		inputNames = append(inputNames, name)
	}
	sort.Strings(inputNames)
	for _, name := range inputNames {
		arr := b.Inputs[name]
		in := ast.NewEmptyInput(id+":input:"+name, name)
		if err := blk.InsertInput(in); err != nil {
			return nil, err
		}
		v, err := decodeInputValue(arr[1])
		if err != nil {
			return nil, ferrors.NewParse(id, "input %q: %s", name, err)
		}
		switch v.kind {
		case inputEmpty:
			// leave the input without an expression
		case inputLiteral:
			in.SetExpression(ast.NewLiteral(in.ID()+":literal", v.literal))
		case inputRef:
			child, err := l.buildNode(v.ref)
			if err != nil {
				return nil, err
			}
			in.SetExpression(child)
		}
	}

	return blk, nil
}
