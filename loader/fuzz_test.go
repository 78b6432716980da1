package loader

import "testing"

// FuzzLoad confirms the block-dict parser never panics on adversarial
// input and, whenever it does accept a document, produces a Program
// that is self-consistent (seed corpus mirrors the teacher's
// jsonrl.FuzzConvert shape: a handful of well-formed and edge-case
// documents, then let the fuzzer mutate from there).
func FuzzLoad(f *testing.F) {
	seeds := []string{
		`{}`,
		`{"block1": {"opcode":"motion_movesteps","next":null,"parent":null,
			"inputs":{"STEPS":[1,[4,"10"]]},"fields":{},"shadow":false,"topLevel":true}}`,
		`{"block1": {"opcode":"control_repeat","next":null,"parent":null,
			"inputs":{"SUBSTACK":[2,"block2"]},"fields":{"TIMES":["10"]},"shadow":false,"topLevel":true},
		  "block2": {"opcode":"motion_movesteps","next":null,"parent":"block1",
			"inputs":{"STEPS":[1,[4,"10"]]},"fields":{},"shadow":false,"topLevel":false}}`,
		`{"block1": {"opcode":"motion_movesteps","next":"block1","parent":null,
			"inputs":{},"fields":{},"shadow":false,"topLevel":true}}`,
		`{"block1": {"opcode":"x","next":null,"parent":"missing",
			"inputs":{},"fields":{},"shadow":false,"topLevel":true}}`,
		`not json at all`,
		`null`,
		`[]`,
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, data string) {
		prog, err := Load([]byte(data))
		if err != nil {
			return
		}
		if prog == nil {
			t.Fatalf("Load returned a nil Program with a nil error")
		}
		// A successfully loaded program must be equivalent to its own
		// copy and to itself (ast §8 copy-fidelity/reflexivity).
		if !prog.EquivalentTo(prog) {
			t.Fatalf("loaded program is not self-equivalent")
		}
		if !prog.Copy().EquivalentTo(prog) {
			t.Fatalf("copy of loaded program is not equivalent to the original")
		}
	})
}
