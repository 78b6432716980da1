package distance

import (
	"testing"

	"github.com/cmroboticsacademy/facilitate/ast"
	"github.com/cmroboticsacademy/facilitate/config"
	"github.com/cmroboticsacademy/facilitate/diff"
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

// spec.md §8 scenario 5: diffing a program against itself costs 0.
func TestComputeEmptyDiffIsZero(t *testing.T) {
	prog := mustLoad(t, `{
		"block1": {"opcode":"motion_movesteps","next":null,"parent":null,
			"inputs":{"STEPS":[1,[4,"10"]]},"fields":{},"shadow":false,"topLevel":true}
	}`)

	script, err := diff.Compute(prog, prog, config.Default())
	if err != nil {
		t.Fatalf("unexpected diff error: %v", err)
	}
	d, err := Compute(script, prog, config.Default().Costs)
	if err != nil {
		t.Fatalf("unexpected distance error: %v", err)
	}
	if d != 0 {
		t.Fatalf("expected zero distance for an empty script, got %v", d)
	}
}

// spec.md §8 scenario 1: a lone Field value change costs exactly the
// chosen UpdateLiteral weight (see updateCost's doc comment for the
// Field-treated-as-Literal decision).
func TestComputeFieldValueChangeCostsUpdateLiteralWeight(t *testing.T) {
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

	costs := config.Default()
	script, err := diff.Compute(before, after, costs)
	if err != nil {
		t.Fatalf("unexpected diff error: %v", err)
	}
	d, err := Compute(script, before, costs.Costs)
	if err != nil {
		t.Fatalf("unexpected distance error: %v", err)
	}
	if d != costs.Costs.UpdateLiteral {
		t.Fatalf("expected distance %v, got %v", costs.Costs.UpdateLiteral, d)
	}
}

// An inserted block costs exactly the configured Block add weight.
func TestComputeBlockInsertionCostsBlockWeight(t *testing.T) {
	before := mustLoad(t, `{
		"block1": {"opcode":"event_whenflagclicked","next":null,"parent":null,
			"inputs":{},"fields":{},"shadow":false,"topLevel":true}
	}`)
	after := mustLoad(t, `{
		"block1": {"opcode":"event_whenflagclicked","next":"block2","parent":null,
			"inputs":{},"fields":{},"shadow":false,"topLevel":true},
		"block2": {"opcode":"motion_movesteps","next":null,"parent":"block1",
			"inputs":{"STEPS":[1,[4,"10"]]},"fields":{},"shadow":false,"topLevel":false}
	}`)

	costs := config.Default()
	script, err := diff.Compute(before, after, costs)
	if err != nil {
		t.Fatalf("unexpected diff error: %v", err)
	}
	d, err := Compute(script, before, costs.Costs)
	if err != nil {
		t.Fatalf("unexpected distance error: %v", err)
	}
	if d != costs.Costs.BlockAddOrDelete {
		t.Fatalf("expected distance %v, got %v", costs.Costs.BlockAddOrDelete, d)
	}
}
