package diff

import (
	"testing"

	"github.com/cmroboticsacademy/facilitate/ast"
	"github.com/cmroboticsacademy/facilitate/config"
	"github.com/cmroboticsacademy/facilitate/edit"
	"github.com/cmroboticsacademy/facilitate/loader"
)

func mustLoad(t *testing.T, data string) *ast.Program {
	t.Helper()
	prog, err := loader.Load([]byte(data))
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	return prog
}

func kinds(s *edit.Script) []string {
	out := make([]string, s.Len())
	for i, op := range s.Ops {
		out[i] = op.Kind()
	}
	return out
}

// spec.md §8 scenario 1: a Field value change against an otherwise
// identical block yields a single Update. The block carries two other
// unchanged fields so the block itself clears the bottom-up dice
// threshold; reconcileNamedChildren then pairs the changed field by
// name (gumtree/reconcile.go).
func TestComputeFieldValueChangeProducesSingleUpdate(t *testing.T) {
	before := mustLoad(t, `{
		"block1": {"opcode":"motion_movesteps","next":null,"parent":null,
			"inputs":{},
			"fields":{"UNITS":["rotations"],"DIRECTION":["forward"],"SPEED":["fast"]},
			"shadow":false,"topLevel":true}
	}`)
	after := mustLoad(t, `{
		"block1": {"opcode":"motion_movesteps","next":null,"parent":null,
			"inputs":{},
			"fields":{"UNITS":["seconds"],"DIRECTION":["forward"],"SPEED":["fast"]},
			"shadow":false,"topLevel":true}
	}`)

	script, err := Compute(before, after, config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if script.Len() != 1 {
		t.Fatalf("expected a single edit, got %d: %v", script.Len(), kinds(script))
	}
	upd, ok := script.Ops[0].(*edit.Update)
	if !ok {
		t.Fatalf("expected an Update op, got %T", script.Ops[0])
	}
	if upd.Value != "seconds" {
		t.Fatalf("expected update value %q, got %q", "seconds", upd.Value)
	}

	result, err := script.Apply(before)
	if err != nil {
		t.Fatalf("unexpected apply error: %v", err)
	}
	if !result.EquivalentTo(after) {
		t.Fatalf("applied result is not equivalent to the destination")
	}
}

// spec.md §8 scenario 2: inserting a Block into a Sequence at position
// 2 of 4 yields one AddBlockToSequence at that position.
func TestComputeInsertBlockIntoSequence(t *testing.T) {
	before := mustLoad(t, `{
		"block1": {"opcode":"event_whenflagclicked","next":"block2","parent":null,
			"inputs":{},"fields":{},"shadow":false,"topLevel":true},
		"block2": {"opcode":"motion_movesteps","next":"block3","parent":"block1",
			"inputs":{"STEPS":[1,[4,"10"]]},"fields":{},"shadow":false,"topLevel":false},
		"block3": {"opcode":"motion_turnright","next":null,"parent":"block2",
			"inputs":{"DEGREES":[1,[4,"15"]]},"fields":{},"shadow":false,"topLevel":false}
	}`)
	after := mustLoad(t, `{
		"block1": {"opcode":"event_whenflagclicked","next":"block2","parent":null,
			"inputs":{},"fields":{},"shadow":false,"topLevel":true},
		"block2": {"opcode":"motion_movesteps","next":"blockNew","parent":"block1",
			"inputs":{"STEPS":[1,[4,"10"]]},"fields":{},"shadow":false,"topLevel":false},
		"blockNew": {"opcode":"motion_turnleft","next":"block3","parent":"block2",
			"inputs":{"DEGREES":[1,[4,"30"]]},"fields":{},"shadow":false,"topLevel":false},
		"block3": {"opcode":"motion_turnright","next":null,"parent":"blockNew",
			"inputs":{"DEGREES":[1,[4,"15"]]},"fields":{},"shadow":false,"topLevel":false}
	}`)

	script, err := Compute(before, after, config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var adds []*edit.AddBlockToSequence
	for _, op := range script.Ops {
		if add, ok := op.(*edit.AddBlockToSequence); ok {
			adds = append(adds, add)
		}
	}
	if len(adds) != 1 {
		t.Fatalf("expected exactly one AddBlockToSequence, got %d: %v", len(adds), kinds(script))
	}
	if adds[0].Position != 2 {
		t.Fatalf("expected insertion at position 2, got %d", adds[0].Position)
	}

	result, err := script.Apply(before)
	if err != nil {
		t.Fatalf("unexpected apply error: %v", err)
	}
	if !result.EquivalentTo(after) {
		t.Fatalf("applied result is not equivalent to the destination")
	}
}

// spec.md §8 scenario 3: reordering two blocks within a single
// sequence yields a single MoveBlockInSequence and nothing else.
func TestComputeReorderBlocksInSequence(t *testing.T) {
	before := mustLoad(t, `{
		"block1": {"opcode":"motion_movesteps","next":"block2","parent":null,
			"inputs":{"STEPS":[1,[4,"10"]]},"fields":{},"shadow":false,"topLevel":true},
		"block2": {"opcode":"motion_turnright","next":null,"parent":"block1",
			"inputs":{"DEGREES":[1,[4,"15"]]},"fields":{},"shadow":false,"topLevel":false}
	}`)
	after := mustLoad(t, `{
		"block2": {"opcode":"motion_turnright","next":"block1","parent":null,
			"inputs":{"DEGREES":[1,[4,"15"]]},"fields":{},"shadow":false,"topLevel":true},
		"block1": {"opcode":"motion_movesteps","next":null,"parent":"block2",
			"inputs":{"STEPS":[1,[4,"10"]]},"fields":{},"shadow":false,"topLevel":false}
	}`)

	script, err := Compute(before, after, config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if script.Len() != 1 {
		t.Fatalf("expected a single edit, got %d: %v", script.Len(), kinds(script))
	}
	mv, ok := script.Ops[0].(*edit.MoveBlockInSequence)
	if !ok {
		t.Fatalf("expected a MoveBlockInSequence op, got %T", script.Ops[0])
	}
	if mv.BlockID != "block2" || mv.Position != 0 {
		t.Fatalf("expected block2 moved to position 0, got %+v", mv)
	}

	result, err := script.Apply(before)
	if err != nil {
		t.Fatalf("unexpected apply error: %v", err)
	}
	if !result.EquivalentTo(after) {
		t.Fatalf("applied result is not equivalent to the destination")
	}
}

// spec.md §8 scenario 4: merging two top-level sequences into one
// ends with a single Sequence in the Program, reachable via either a
// MoveSequenceToProgram/MoveBlockToSequence pair or a
// MoveSequenceInProgram-led realignment.
func TestComputeMergeTopLevelSequences(t *testing.T) {
	before := mustLoad(t, `{
		"block1": {"opcode":"event_whenflagclicked","next":null,"parent":null,
			"inputs":{},"fields":{},"shadow":false,"topLevel":true},
		"block2": {"opcode":"motion_movesteps","next":null,"parent":null,
			"inputs":{"STEPS":[1,[4,"10"]]},"fields":{},"shadow":false,"topLevel":true}
	}`)
	after := mustLoad(t, `{
		"block1": {"opcode":"event_whenflagclicked","next":"block2","parent":null,
			"inputs":{},"fields":{},"shadow":false,"topLevel":true},
		"block2": {"opcode":"motion_movesteps","next":null,"parent":"block1",
			"inputs":{"STEPS":[1,[4,"10"]]},"fields":{},"shadow":false,"topLevel":false}
	}`)

	script, err := Compute(before, after, config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := script.Apply(before)
	if err != nil {
		t.Fatalf("unexpected apply error: %v", err)
	}
	resultProg := result.(*ast.Program)
	if len(resultProg.Sequences()) != 1 {
		t.Fatalf("expected exactly one sequence after the merge, got %d", len(resultProg.Sequences()))
	}
	if !result.EquivalentTo(after) {
		t.Fatalf("applied result is not equivalent to the destination")
	}
}

// spec.md §8: diffing a tree against itself yields an empty script.
func TestComputeIdentityIsEmptyScript(t *testing.T) {
	data := `{
		"block1": {"opcode":"motion_movesteps","next":"block2","parent":null,
			"inputs":{"STEPS":[1,[4,"10"]]},"fields":{},"shadow":false,"topLevel":true},
		"block2": {"opcode":"motion_turnright","next":null,"parent":"block1",
			"inputs":{"DEGREES":[1,[4,"15"]]},"fields":{},"shadow":false,"topLevel":false}
	}`
	prog := mustLoad(t, data)

	script, err := Compute(prog, prog, config.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if script.Len() != 0 {
		t.Fatalf("expected an empty script for identical trees, got %d edits: %v", script.Len(), kinds(script))
	}
}

func TestLCSFindsLongestCommonSubsequence(t *testing.T) {
	a := ast.NewLiteral("a", "1")
	b := ast.NewLiteral("b", "2")
	c := ast.NewLiteral("c", "3")
	d := ast.NewLiteral("d", "4")

	xs := []ast.Node{a, b, c, d}
	ys := []ast.Node{b, a, c, d}

	byID := func(n, o ast.Node) bool { return n.ID() == o.ID() }
	got := LCS(xs, ys, byID)

	want := []string{"a", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("expected LCS of length %d, got %d: %v", len(want), len(got), got)
	}
	for i, n := range got {
		if n.ID() != want[i] {
			t.Fatalf("expected LCS %v, got element %d = %q", want, i, n.ID())
		}
	}
}

func TestLCSNoCommonElements(t *testing.T) {
	a := ast.NewLiteral("a", "1")
	b := ast.NewLiteral("b", "2")
	got := LCS([]ast.Node{a}, []ast.Node{b}, func(n, o ast.Node) bool { return n.ID() == o.ID() })
	if len(got) != 0 {
		t.Fatalf("expected an empty LCS, got %v", got)
	}
}
