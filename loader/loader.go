// Package loader reconstructs a well-formed ast.Program from a flat,
// ambiguously-parented Scratch-style block dictionary (spec.md §4.B).
package loader

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/cmroboticsacademy/facilitate/ast"
	"github.com/cmroboticsacademy/facilitate/ferrors"
)

// rawBlock is the wire shape of one entry in the top-level block
// dictionary (spec.md §6). x/y are accepted but ignored: this module
// never preserves visual layout (spec.md §1, Non-goals).
type rawBlock struct {
	id       string
	Opcode   string                       `json:"opcode"`
	Parent   *string                      `json:"parent"`
	Next     *string                      `json:"next"`
	Inputs   map[string][]json.RawMessage `json:"inputs"`
	Fields   map[string][]json.RawMessage `json:"fields"`
	Shadow   bool                         `json:"shadow"`
	TopLevel bool                         `json:"topLevel"`
}

// Load parses a Scratch block dictionary (bit-exact with spec.md §6)
// into a Program.
func Load(data []byte) (*ast.Program, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, ferrors.NewParse("", "malformed block dictionary: %s", err)
	}
	blocks := make(map[string]*rawBlock, len(raw))
	for id, msg := range raw {
		var b rawBlock
		if err := json.Unmarshal(msg, &b); err != nil {
			return nil, ferrors.NewParse(id, "malformed block description: %s", err)
		}
		b.id = id
		blocks[id] = &b
	}
	return LoadBlocks(blocks)
}

// LoadBlocks builds a Program from an already-decoded block map. Its
// parameter type is unexported, so only code inside this package can
// build such a map; outside callers go through Load.
func LoadBlocks(blocks map[string]*rawBlock) (*ast.Program, error) {
	l := &loadState{blocks: blocks, nodes: make(map[string]ast.Node, len(blocks)*2)}
	if err := l.stripOccluded(); err != nil {
		return nil, err
	}
	if err := l.classifyContainment(); err != nil {
		return nil, err
	}
	if err := l.extractSequences(); err != nil {
		return nil, err
	}
	l.rewriteInputReferences()
	return l.assemble()
}

type loadState struct {
	blocks map[string]*rawBlock

	// containedBy maps a block id to the id of the block whose input
	// references it directly (step 3: "correct parent").
	containedBy map[string]string

	// sequenceOf maps a block id that is a member of an extracted
	// sequence to that sequence's id (step 4).
	sequenceOf map[string]string
	// sequenceMembers maps a sequence id to its ordered block ids.
	sequenceMembers map[string][]string
	// sequenceHeads is the set of block ids that are the first block
	// of some extracted sequence.
	sequenceHeads map[string]bool

	// nodes caches every constructed node by id. A node is cached as
	// soon as it is created, before its children are built.
	nodes map[string]ast.Node

	// visiting guards against cyclic parent/input graphs during
	// recursive construction.
	visiting map[string]bool
}

// stripOccluded removes trailing, occluded block references from each
// input's value array and deletes the blocks they point to (spec.md
// §4.B step 2).
func (l *loadState) stripOccluded() error {
	inactive := map[string]bool{}
	for id, b := range l.blocks {
		for name, arr := range b.Inputs {
			if len(arr) < 2 {
				return ferrors.NewParse(id, "input %q has fewer than 2 elements", name)
			}
			for _, extra := range arr[2:] {
				var ref string
				if err := json.Unmarshal(extra, &ref); err == nil && ref != "" {
					inactive[ref] = true
				}
			}
			b.Inputs[name] = arr[:2]
		}
	}
	for id := range inactive {
		delete(l.blocks, id)
	}
	// Drop dangling references to now-inactive blocks so later steps
	// never resolve them.
	for _, b := range l.blocks {
		for name, arr := range b.Inputs {
			v, err := decodeInputValue(arr[1])
			if err == nil && v.kind == inputRef && inactive[v.ref] {
				b.Inputs[name] = []json.RawMessage{arr[0], json.RawMessage("null")}
			}
		}
	}
	return nil
}

// classifyContainment determines, for every block, whether some other
// block's input references it directly by id (spec.md §4.B step 3).
// A referenced block is the expression-child of the input that names
// it; every other block is treated as a sequence member.
func (l *loadState) classifyContainment() error {
	l.containedBy = map[string]string{}
	ids := sortedKeys(l.blocks)
	for _, id := range ids {
		b := l.blocks[id]
		for name, arr := range b.Inputs {
			v, err := decodeInputValue(arr[1])
			if err != nil {
				return ferrors.NewParse(id, "input %q: %s", name, err)
			}
			if v.kind != inputRef {
				continue
			}
			if _, ok := l.blocks[v.ref]; !ok {
				return ferrors.NewParse(id, "input %q references unknown block %q", name, v.ref)
			}
			l.containedBy[v.ref] = id
		}
	}
	return nil
}

// extractSequences scans next chains, joining fragments transitively
// until a fixed point, and allocates one Sequence per maximal chain
// (spec.md §4.B step 4). A block that never appears in a next chain
// and is not contained by any input becomes a singleton sequence.
func (l *loadState) extractSequences() error {
	chainMember := map[string]bool{}
	hasPredecessor := map[string]bool{}
	for id, b := range l.blocks {
		if b.Next != nil {
			if _, ok := l.blocks[*b.Next]; !ok {
				return ferrors.NewParse(id, "next references unknown block %q", *b.Next)
			}
			chainMember[id] = true
			chainMember[*b.Next] = true
			hasPredecessor[*b.Next] = true
		}
	}

	l.sequenceOf = map[string]string{}
	l.sequenceMembers = map[string][]string{}
	l.sequenceHeads = map[string]bool{}

	heads := []string{}
	for id := range chainMember {
		if !hasPredecessor[id] {
			heads = append(heads, id)
		}
	}
	sort.Strings(heads)

	for _, head := range heads {
		seqID := ast.SequenceID(head)
		l.sequenceHeads[head] = true
		visited := map[string]bool{}
		cur := head
		for {
			if visited[cur] {
				return ferrors.NewParse(cur, "cyclic next chain detected")
			}
			visited[cur] = true
			l.sequenceOf[cur] = seqID
			l.sequenceMembers[seqID] = append(l.sequenceMembers[seqID], cur)
			b := l.blocks[cur]
			if b.Next == nil {
				break
			}
			cur = *b.Next
		}
	}

	// A next chain that loops back on itself has no head, so the walk
	// above never reaches its members.
	for _, id := range sortedKeys(l.blocks) {
		if _, ok := l.sequenceOf[id]; chainMember[id] && !ok {
			return ferrors.NewParse(id, "cyclic next chain detected")
		}
	}

	// Every remaining non-contained, non-chain block is a singleton
	// sequence of one.
	ids := sortedKeys(l.blocks)
	for _, id := range ids {
		if chainMember[id] {
			continue
		}
		if _, contained := l.containedBy[id]; contained {
			continue
		}
		seqID := ast.SequenceID(id)
		l.sequenceOf[id] = seqID
		l.sequenceMembers[seqID] = []string{id}
		l.sequenceHeads[id] = true
	}
	return nil
}

// rewriteInputReferences redirects any input reference that points at
// the head of an extracted sequence to the sequence's id instead,
// since the containing block's expression should be the whole
// C-shaped body rather than just its first statement (spec.md §4.B
// step 5).
func (l *loadState) rewriteInputReferences() {
	for _, b := range l.blocks {
		for name, arr := range b.Inputs {
			v, err := decodeInputValue(arr[1])
			if err != nil || v.kind != inputRef {
				continue
			}
			if !l.sequenceHeads[v.ref] {
				continue
			}
			seqID := ast.SequenceID(v.ref)
			raw, _ := json.Marshal(seqID)
			b.Inputs[name] = []json.RawMessage{arr[0], raw}
		}
	}
}

// category of input value, after decodeInputValue.
type inputKind int

const (
	inputEmpty inputKind = iota
	inputRef
	inputLiteral
)

type inputValue struct {
	kind    inputKind
	ref     string
	literal string
}

func decodeInputValue(raw json.RawMessage) (inputValue, error) {
	trimmed := strings.TrimSpace(string(raw))
	if raw == nil || trimmed == "" || trimmed == "null" {
		return inputValue{kind: inputEmpty}, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return inputValue{kind: inputRef, ref: s}, nil
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err == nil {
		if len(arr) < 2 {
			return inputValue{}, fmt.Errorf("literal input value needs >= 2 elements, got %d", len(arr))
		}
		return inputValue{kind: inputLiteral, literal: literalText(arr[1])}, nil
	}
	return inputValue{}, fmt.Errorf("value is neither null, a string reference, nor a literal array")
}

// literalText coerces a raw JSON scalar (string or number, Scratch
// mixes both depending on input type) into the string value a
// Literal node carries.
func literalText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.Trim(strings.TrimSpace(string(raw)), `"`)
}

func fieldText(arr []json.RawMessage) (string, error) {
	if len(arr) < 1 {
		return "", fmt.Errorf("field value array is empty")
	}
	return literalText(arr[0]), nil
}

func sortedKeys(m map[string]*rawBlock) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
