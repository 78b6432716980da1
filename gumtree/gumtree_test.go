package gumtree

import (
	"testing"

	"github.com/cmroboticsacademy/facilitate/ast"
	"github.com/cmroboticsacademy/facilitate/config"
	"github.com/cmroboticsacademy/facilitate/loader"
	"github.com/cmroboticsacademy/facilitate/mapping"
)

func mustLoad(t *testing.T, data string) *ast.Program {
	t.Helper()
	prog, err := loader.Load([]byte(data))
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	return prog
}

func TestMatchIdenticalTreesMapsEveryNode(t *testing.T) {
	data := `{
		"block1": {"opcode":"motion_movesteps","next":"block2","parent":null,
			"inputs":{"STEPS":[1,[4,"10"]]},"fields":{},"shadow":false,"topLevel":true},
		"block2": {"opcode":"motion_turnright","next":null,"parent":"block1",
			"inputs":{"DEGREES":[1,[4,"15"]]},"fields":{},"shadow":false,"topLevel":false}
	}`
	progX := mustLoad(t, data)
	progY := mustLoad(t, data)

	m := Match(progX, progY, config.Default())

	all := append([]ast.Node{progX}, ast.Descendants(progX)...)
	for _, n := range all {
		if !m.SourceIsMapped(n) {
			t.Fatalf("node %q (%T) was left unmapped between identical trees", n.ID(), n)
		}
	}
	if !progX.EquivalentTo(progY) {
		t.Fatalf("precondition violated: fixtures are not equivalent")
	}
}

func TestMatchRenamedOpcodeStillMapsViaBottomUp(t *testing.T) {
	progX := mustLoad(t, `{
		"block1": {"opcode":"motion_movesteps","next":null,"parent":null,
			"inputs":{"STEPS":[1,[4,"10"]]},"fields":{},"shadow":false,"topLevel":true}
	}`)
	progY := mustLoad(t, `{
		"block1": {"opcode":"motion_moveback","next":null,"parent":null,
			"inputs":{"STEPS":[1,[4,"10"]]},"fields":{},"shadow":false,"topLevel":true}
	}`)

	m := Match(progX, progY, config.Default())

	blkX := progX.Sequences()[0].Blocks()[0]
	img, ok := m.SourceIsMappedTo(blkX)
	if !ok {
		t.Fatalf("expected the renamed block to still be mapped via bottom-up dice similarity")
	}
	blkY, ok := img.(*ast.Block)
	if !ok || blkY.Opcode != "motion_moveback" {
		t.Fatalf("expected mapping to the renamed block, got %+v", img)
	}
}

func TestMatchUnrelatedTreesLeaveContainersUnmapped(t *testing.T) {
	progX := mustLoad(t, `{
		"block1": {"opcode":"motion_movesteps","next":null,"parent":null,
			"inputs":{"STEPS":[1,[4,"10"]]},"fields":{},"shadow":false,"topLevel":true}
	}`)
	progY := mustLoad(t, `{
		"block1": {"opcode":"sound_play","next":null,"parent":null,
			"inputs":{},"fields":{"SOUND_MENU":["meow"]},"shadow":false,"topLevel":true}
	}`)

	m := Match(progX, progY, config.Default())

	blkX := progX.Sequences()[0].Blocks()[0]
	if m.SourceIsMapped(blkX) {
		t.Fatalf("two structurally unrelated blocks must not be mapped")
	}
}

func TestDiceIdentityTieBreakDoublesScore(t *testing.T) {
	withID := func(id string) *ast.Program {
		return mustLoad(t, `{"`+id+`":{"opcode":"motion_movesteps","next":null,"parent":null,
			"inputs":{"STEPS":[1,[4,"10"]]},"fields":{},"shadow":false,"topLevel":true}}`)
	}

	progX := withID("b1")
	progSameID := withID("b1")
	progDiffID := withID("b2")

	blkX := progX.Sequences()[0].Blocks()[0]
	blkSameID := progSameID.Sequences()[0].Blocks()[0]
	blkDiffID := progDiffID.Sequences()[0].Blocks()[0]

	inX := blkX.FindInput("STEPS")
	inSame := blkSameID.FindInput("STEPS")
	inDiff := blkDiffID.FindInput("STEPS")

	mSame := mapping.New()
	if err := mSame.AddWithDescendants(inX.Expr, inSame.Expr); err != nil {
		t.Fatalf("unexpected error mapping literals: %v", err)
	}
	mDiff := mapping.New()
	if err := mDiff.AddWithDescendants(inX.Expr, inDiff.Expr); err != nil {
		t.Fatalf("unexpected error mapping literals: %v", err)
	}

	scoreSame := dice(blkX, blkSameID, mSame)
	scoreDiff := dice(blkX, blkDiffID, mDiff)

	if scoreSame <= scoreDiff {
		t.Fatalf("a shared block id must score strictly higher than a differing one: same=%v diff=%v",
			scoreSame, scoreDiff)
	}
	if scoreSame != 2*scoreDiff {
		t.Fatalf("shared-id score must be exactly double: same=%v diff=%v", scoreSame, scoreDiff)
	}
}
