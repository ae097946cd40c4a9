package lsystem

import (
	"fmt"
	"math"

	"cogentcore.org/core/base/randx"
)

// weightEpsilon bounds how far raw weights may drift from summing to 1.
const weightEpsilon = 1e-6

// Weighted is a raw (probability, replacement) pair as written in a grammar.
type Weighted struct {
	Weight float64 `yaml:"weight" json:"weight"`
	Text   string  `yaml:"text" json:"text"`
}

// Replacement is one entry of a rule's cumulative table.
type Replacement struct {
	Threshold float64
	Text      string
}

// ExpansionRule holds one symbol's stochastic rewrite policy.
type ExpansionRule struct {
	Symbol       rune
	replacements []Replacement
}

// NewExpansionRule prefix-sums the weights into a cumulative table. Every
// weight must be positive and the weights must sum to 1 within
// weightEpsilon. A rule with no weights is legal and never rewrites.
func NewExpansionRule(symbol rune, weights ...Weighted) (*ExpansionRule, error) {
	r := &ExpansionRule{Symbol: symbol, replacements: make([]Replacement, 0, len(weights))}
	if len(weights) == 0 {
		return r, nil
	}
	sum := 0.0
	for i, w := range weights {
		if !(w.Weight > 0) || math.IsInf(w.Weight, 0) {
			return nil, fmt.Errorf("%w: %q entry %d has weight %v", ErrMalformedRule, symbol, i, w.Weight)
		}
		sum += w.Weight
		r.replacements = append(r.replacements, Replacement{Threshold: sum, Text: w.Text})
	}
	if math.Abs(sum-1) > weightEpsilon {
		return nil, fmt.Errorf("%w: %q weights sum to %v", ErrMalformedRule, symbol, sum)
	}
	r.replacements[len(r.replacements)-1].Threshold = 1
	return r, nil
}

// MustExpansionRule is NewExpansionRule for tables fixed at compile time.
func MustExpansionRule(symbol rune, weights ...Weighted) *ExpansionRule {
	r, err := NewExpansionRule(symbol, weights...)
	if err != nil {
		panic(err)
	}
	return r
}

// Replacements returns a copy of the cumulative table.
func (r *ExpansionRule) Replacements() []Replacement {
	return append([]Replacement(nil), r.replacements...)
}

// Expand draws once from rng and returns the first replacement whose
// threshold is at least the draw. An empty table yields "".
func (r *ExpansionRule) Expand(rng randx.Rand) string {
	if len(r.replacements) == 0 {
		return ""
	}
	draw := rng.Float64()
	for _, rep := range r.replacements {
		if rep.Threshold >= draw {
			return rep.Text
		}
	}
	return r.replacements[len(r.replacements)-1].Text
}
