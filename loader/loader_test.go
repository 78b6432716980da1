package loader

import (
	"testing"

	"github.com/cmroboticsacademy/facilitate/ast"
	"github.com/cmroboticsacademy/facilitate/ferrors"
)

func TestLoadSimpleSequence(t *testing.T) {
	data := []byte(`{
		"block1": {"opcode":"motion_movesteps","next":"block2","parent":null,
			"inputs":{"STEPS":[1,[4,"10"]]},"fields":{},"shadow":false,"topLevel":true},
		"block2": {"opcode":"motion_turnright","next":null,"parent":"block1",
			"inputs":{"DEGREES":[1,[4,"15"]]},"fields":{},"shadow":false,"topLevel":false}
	}`)

	prog, err := Load(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Sequences()) != 1 {
		t.Fatalf("expected one top-level sequence, got %d", len(prog.Sequences()))
	}
	seq := prog.Sequences()[0]
	if seq.ID() != ":seq@block1" {
		t.Fatalf("expected sequence id :seq@block1, got %s", seq.ID())
	}
	if len(seq.Blocks()) != 2 {
		t.Fatalf("expected 2 blocks in sequence, got %d", len(seq.Blocks()))
	}
	if seq.Blocks()[0].Opcode != "motion_movesteps" || seq.Blocks()[1].Opcode != "motion_turnright" {
		t.Fatalf("blocks out of order: %v", seq.Blocks())
	}
}

func TestLoadFieldValue(t *testing.T) {
	data := []byte(`{
		"block1": {"opcode":"sound_setpitch","next":null,"parent":null,
			"inputs":{},"fields":{"UNITS":["rotations"]},"shadow":false,"topLevel":true}
	}`)
	prog, err := Load(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	blk := prog.Sequences()[0].Blocks()[0]
	f := blk.FindField("UNITS")
	if f == nil || f.Value != "rotations" {
		t.Fatalf("expected UNITS field = rotations, got %+v", f)
	}
}

func TestLoadCShapeBody(t *testing.T) {
	data := []byte(`{
		"repeat1": {"opcode":"control_repeat","next":null,"parent":null,
			"inputs":{"SUBSTACK":[2,"body1"],"TIMES":[1,[4,"10"]]},"fields":{},"shadow":false,"topLevel":true},
		"body1": {"opcode":"motion_movesteps","next":"body2","parent":"repeat1",
			"inputs":{"STEPS":[1,[4,"10"]]},"fields":{},"shadow":false,"topLevel":false},
		"body2": {"opcode":"motion_turnright","next":null,"parent":"body1",
			"inputs":{"DEGREES":[1,[4,"15"]]},"fields":{},"shadow":false,"topLevel":false}
	}`)
	prog, err := Load(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Sequences()) != 1 {
		t.Fatalf("expected 1 top-level sequence (the repeat block itself), got %d", len(prog.Sequences()))
	}
	top := prog.Sequences()[0]
	if len(top.Blocks()) != 1 || top.Blocks()[0].Opcode != "control_repeat" {
		t.Fatalf("expected top-level sequence to contain only the repeat block")
	}
	substack := top.Blocks()[0].FindInput("SUBSTACK")
	if substack == nil || substack.Expr == nil {
		t.Fatalf("expected SUBSTACK to have an expression")
	}
	bodySeq, ok := substack.Expr.(*ast.Sequence)
	if !ok {
		t.Fatalf("expected SUBSTACK's expression to be a Sequence, got %T", substack.Expr)
	}
	if len(bodySeq.Blocks()) != 2 {
		t.Fatalf("expected 2 blocks in the repeat body, got %d", len(bodySeq.Blocks()))
	}
	if bodySeq.ID() != ":seq@body1" {
		t.Fatalf("expected body sequence id :seq@body1, got %s", bodySeq.ID())
	}
}

func TestLoadOccludedBlockIsDropped(t *testing.T) {
	data := []byte(`{
		"block1": {"opcode":"motion_movesteps","next":null,"parent":null,
			"inputs":{"STEPS":[3,[4,"10"],"shadowBlock1"]},"fields":{},"shadow":false,"topLevel":true},
		"shadowBlock1": {"opcode":"math_number","next":null,"parent":"block1",
			"inputs":{},"fields":{"NUM":["10"]},"shadow":true,"topLevel":false}
	}`)
	prog, err := Load(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Sequences()) != 1 {
		t.Fatalf("expected the occluded block to be dropped, leaving 1 top-level sequence, got %d", len(prog.Sequences()))
	}
	blk := prog.Sequences()[0].Blocks()[0]
	in := blk.FindInput("STEPS")
	if in.Expr == nil {
		t.Fatalf("expected STEPS to keep its literal expression")
	}
}

func TestLoadDanglingReferenceFails(t *testing.T) {
	data := []byte(`{
		"block1": {"opcode":"motion_movesteps","next":null,"parent":null,
			"inputs":{"STEPS":[1,"doesnotexist"]},"fields":{},"shadow":false,"topLevel":true}
	}`)
	_, err := Load(data)
	if err == nil {
		t.Fatalf("expected a parse error for a dangling reference")
	}
	var perr *ferrors.ParseError
	if !asParseError(err, &perr) {
		t.Fatalf("expected a *ferrors.ParseError, got %T: %v", err, err)
	}
}

func TestLoadZeroTopLevelBlocks(t *testing.T) {
	prog, err := Load([]byte(`{}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Sequences()) != 0 {
		t.Fatalf("expected zero top-level sequences, got %d", len(prog.Sequences()))
	}
}

func asParseError(err error, target **ferrors.ParseError) bool {
	if pe, ok := err.(*ferrors.ParseError); ok {
		*target = pe
		return true
	}
	return false
}
