package lsystem

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"cogentcore.org/core/base/randx"
)

// Expander rewrites whole strings using a set of expansion rules.
type Expander struct {
	rules map[rune]*ExpansionRule

	// MaxLength caps the symbol count of any pass. A pass stops as soon as
	// it grows past the cap. Zero means no cap.
	MaxLength int
}

// NewExpander indexes the rules by symbol. A later rule for the same symbol
// replaces an earlier one.
func NewExpander(rules ...*ExpansionRule) *Expander {
	e := &Expander{rules: make(map[rune]*ExpansionRule, len(rules))}
	for _, r := range rules {
		if r == nil {
			continue
		}
		e.rules[r.Symbol] = r
	}
	return e
}

// Rule returns the rule bound to sym, if any.
func (e *Expander) Rule(sym rune) (*ExpansionRule, bool) {
	r, ok := e.rules[sym]
	return r, ok
}

// Symbols lists the symbols with a bound rule in ascending order.
func (e *Expander) Symbols() []rune {
	out := make([]rune, 0, len(e.rules))
	for sym := range e.rules {
		out = append(out, sym)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ExpandSingleChar rewrites one symbol. Symbols without a rule, and rules
// that produce an empty replacement, yield the symbol unchanged.
func (e *Expander) ExpandSingleChar(sym rune, rng randx.Rand) string {
	rule, ok := e.rules[sym]
	if !ok {
		return string(sym)
	}
	out := rule.Expand(rng)
	if out == "" {
		return string(sym)
	}
	return out
}

// ExpandGrammar applies iterations full rewrite passes to axiom.
func (e *Expander) ExpandGrammar(axiom string, iterations int, rng randx.Rand) (string, error) {
	if iterations < 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidIterations, iterations)
	}
	out := axiom
	for i := 0; i < iterations; i++ {
		var b strings.Builder
		b.Grow(len(out) * 2)
		n := 0
		for _, sym := range out {
			rep := e.ExpandSingleChar(sym, rng)
			if e.MaxLength > 0 {
				n += utf8.RuneCountInString(rep)
				if n > e.MaxLength {
					return "", fmt.Errorf("%w: pass %d exceeded %d symbols", ErrGrammarTooLong, i+1, e.MaxLength)
				}
			}
			b.WriteString(rep)
		}
		out = b.String()
	}
	return out, nil
}
