package diff

import (
	"testing"

	"github.com/cmroboticsacademy/facilitate/config"
	"github.com/cmroboticsacademy/facilitate/loader"
)

// FuzzDiffRoundtrip exercises the full load → diff → apply round trip
// on pairs of mutated documents, checking the §8 diff post-condition
// holds (or that diff reports an invariant error rather than silently
// producing a wrong script) whenever both sides happen to parse.
func FuzzDiffRoundtrip(f *testing.F) {
	seeds := [][2]string{
		{
			`{"block1": {"opcode":"motion_movesteps","next":null,"parent":null,
				"inputs":{"STEPS":[1,[4,"10"]]},"fields":{},"shadow":false,"topLevel":true}}`,
			`{"block1": {"opcode":"motion_movesteps","next":null,"parent":null,
				"inputs":{"STEPS":[1,[4,"20"]]},"fields":{},"shadow":false,"topLevel":true}}`,
		},
		{
			`{"block1": {"opcode":"event_whenflagclicked","next":"block2","parent":null,
				"inputs":{},"fields":{},"shadow":false,"topLevel":true},
			  "block2": {"opcode":"motion_movesteps","next":null,"parent":"block1",
				"inputs":{"STEPS":[1,[4,"10"]]},"fields":{},"shadow":false,"topLevel":false}}`,
			`{"block1": {"opcode":"event_whenflagclicked","next":null,"parent":null,
				"inputs":{},"fields":{},"shadow":false,"topLevel":true}}`,
		},
		{
			`{}`,
			`{"block1": {"opcode":"motion_movesteps","next":null,"parent":null,
				"inputs":{},"fields":{},"shadow":false,"topLevel":true}}`,
		},
	}
	for _, s := range seeds {
		f.Add(s[0], s[1])
	}
	f.Fuzz(func(t *testing.T, before, after string) {
		progFrom, errFrom := loader.Load([]byte(before))
		if errFrom != nil {
			return
		}
		progTo, errTo := loader.Load([]byte(after))
		if errTo != nil {
			return
		}

		script, err := Compute(progFrom, progTo, config.Default())
		if err != nil {
			// An invariant error here means Synthesize itself detected
			// and reported a broken post-condition rather than
			// returning a silently-wrong script; that is the
			// documented failure mode, not a crash.
			return
		}

		result, err := script.Apply(progFrom)
		if err != nil {
			t.Fatalf("applying the synthesized script failed: %v", err)
		}
		if !result.EquivalentTo(progTo) {
			t.Fatalf("script %v did not transform the source into the destination", script.ToDict())
		}
	})
}
