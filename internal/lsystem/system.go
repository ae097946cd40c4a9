package lsystem

import (
	"cogentcore.org/core/base/randx"
)

// System is one grammar state: an axiom grown by an expander and drawn
// through a dispatch table.
type System struct {
	Config
	Expander *Expander
	Table    DrawingTable

	// Grammar is the working string: the axiom until Expand runs.
	Grammar string
}

// New validates cfg and prepares a system whose grammar is the axiom.
func New(cfg Config, exp *Expander, table DrawingTable) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if exp == nil {
		exp = NewExpander()
	}
	return &System{Config: cfg, Expander: exp, Table: table, Grammar: cfg.Axiom}, nil
}

// Expand grows the axiom Iterations passes and stores the result.
func (s *System) Expand(rng randx.Rand) (string, error) {
	exp := *s.Expander
	exp.MaxLength = s.MaxLength
	out, err := exp.ExpandGrammar(s.Axiom, s.Iterations, rng)
	if err != nil {
		return "", err
	}
	s.Grammar = out
	return out, nil
}

// Interpreter returns an interpreter over the system's table and angle.
func (s *System) Interpreter() *Interpreter {
	return &Interpreter{Table: s.Table, Angle: s.Angle}
}

// Draw interprets the current grammar with a turtle at the origin.
func (s *System) Draw() (*Transforms, error) {
	return s.Interpreter().Run(s.Grammar)
}
