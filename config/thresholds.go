// Package config loads the tunable numeric parameters the matcher
// and distance scorer use: GumTree's height and similarity
// thresholds, and the weighted per-edit-kind cost table (spec.md
// §4.D, §4.G).
package config

import (
	"os"

	"sigs.k8s.io/yaml"

	"github.com/cmroboticsacademy/facilitate/ferrors"
)

// Costs holds the per-edit-kind weight the distance scorer applies.
// Each field is the weight of a group of edit kinds; the distance
// package's costOf decides which group each edit kind falls into.
type Costs struct {
	SequenceAddOrDelete float64 `json:"sequenceAddOrDelete"`
	BlockAddOrDelete    float64 `json:"blockAddOrDelete"`
	LeafAddOrDelete     float64 `json:"leafAddOrDelete"`
	UpdateBlock         float64 `json:"updateBlock"`
	UpdateLiteral       float64 `json:"updateLiteral"`
	MoveIntraSequence   float64 `json:"moveIntraSequence"`
	MoveCrossSequence   float64 `json:"moveCrossSequence"`
	MoveTrivialRelink   float64 `json:"moveTrivialRelink"`
	MoveIntoInput       float64 `json:"moveIntoInput"`
}

// Thresholds bundles every tunable the matcher and scorer consult.
type Thresholds struct {
	// MinHeight is the top-down phase's inclusive lower bound on
	// priority-list height: subtrees shorter than this are never
	// matched top-down and are left to the bottom-up phase.
	MinHeight int `json:"minHeight"`
	// MinDice is the bottom-up phase's similarity floor: a candidate
	// must score strictly above this to be accepted.
	MinDice float64 `json:"minDice"`
	Costs   Costs   `json:"costs"`
}

// Default returns the threshold values spec.md names: min_height=1,
// min_dice=0.5, and the indicative per-kind cost table of §4.G.
func Default() Thresholds {
	return Thresholds{
		MinHeight: 1,
		MinDice:   0.5,
		Costs: Costs{
			SequenceAddOrDelete: 0.5,
			BlockAddOrDelete:    1.0,
			LeafAddOrDelete:     0,
			UpdateBlock:         1.0,
			UpdateLiteral:       0.5,
			MoveIntraSequence:   0.5,
			MoveCrossSequence:   1.0,
			MoveTrivialRelink:   0,
			MoveIntoInput:       0.5,
		},
	}
}

// Load reads YAML-encoded Thresholds from path, starting from
// Default() so a partial file only overrides the fields it mentions.
func Load(path string) (Thresholds, error) {
	t := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Thresholds{}, ferrors.NewInvariant("reading threshold config %q: %s", path, err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Thresholds{}, ferrors.NewInvariant("parsing threshold config %q: %s", path, err)
	}
	return t, nil
}
