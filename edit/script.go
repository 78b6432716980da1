package edit

import (
	"encoding/json"

	"github.com/cmroboticsacademy/facilitate/ast"
	"github.com/cmroboticsacademy/facilitate/ferrors"
)

// Script is an ordered, serializable sequence of edit operations
// (spec.md §4.E).
type Script struct {
	Ops []Op
}

// New returns an empty Script.
func New() *Script { return &Script{} }

// Append adds op to the end of the script.
func (s *Script) Append(op Op) { s.Ops = append(s.Ops, op) }

// Len returns the number of operations in the script.
func (s *Script) Len() int { return len(s.Ops) }

// Apply deep-copies root and applies every operation in order against
// the copy, returning the mutated result. The caller's root is never
// modified (spec.md §5).
func (s *Script) Apply(root ast.Node) (ast.Node, error) {
	cp := root.Copy()
	for i, op := range s.Ops {
		if _, err := op.Apply(cp); err != nil {
			return nil, ferrors.NewInvariant("applying edit %d (%s): %s", i, op.Kind(), err)
		}
	}
	return cp, nil
}

// ToDict renders the script as `{"edits": [...]}` per spec.md §6.
func (s *Script) ToDict() map[string]interface{} {
	edits := make([]map[string]interface{}, len(s.Ops))
	for i, op := range s.Ops {
		edits[i] = op.ToDict()
	}
	return map[string]interface{}{"edits": edits}
}

// MarshalJSON implements json.Marshaler via ToDict.
func (s *Script) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ToDict())
}

// UnmarshalJSON implements json.Unmarshaler via FromDict.
func (s *Script) UnmarshalJSON(data []byte) error {
	var raw struct {
		Edits []map[string]interface{} `json:"edits"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return ferrors.NewInvariant("malformed edit script: %s", err)
	}
	ops := make([]Op, 0, len(raw.Edits))
	for _, d := range raw.Edits {
		op, err := FromDict(d)
		if err != nil {
			return err
		}
		ops = append(ops, op)
	}
	s.Ops = ops
	return nil
}
