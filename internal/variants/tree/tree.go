// Package tree grows branching plants: branches that thin and shorten with
// depth, capped with leaves.
package tree

import (
	"cogentcore.org/core/base/randx"

	"arbor/internal/core"
	"arbor/internal/lsystem"
)

// Name is the registry key of the tree variant.
const Name = "tree"

// Rules returns the tree rewrite rules.
func Rules() *lsystem.Expander {
	return lsystem.NewExpander(
		lsystem.MustExpansionRule('F',
			lsystem.Weighted{Weight: 0.35, Text: "FFL[+FL][-FL][+FL]"},
			lsystem.Weighted{Weight: 0.32, Text: "FF[&FL][^FL]"},
			lsystem.Weighted{Weight: 0.33, Text: "FF[,FL][/FL]"},
		),
		lsystem.MustExpansionRule('A',
			lsystem.Weighted{Weight: 1.0, Text: "[&FL!A]/////’[&FL!A]///////’[&FL!A]"},
		),
		lsystem.MustExpansionRule('S',
			lsystem.Weighted{Weight: 1.0, Text: "FL"},
		),
	)
}

// Generator grows trees from a Config.
type Generator struct {
	cfg   Config
	rules *lsystem.Expander
}

var _ core.Variant = (*Generator)(nil)

// New validates cfg and returns a generator using the tree rules.
func New(cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg, rules: Rules()}, nil
}

// Name implements core.Variant.
func (g *Generator) Name() string { return Name }

// Config implements core.Variant.
func (g *Generator) Config() lsystem.Config { return g.cfg.Config }

// Settings returns the full tree configuration.
func (g *Generator) Settings() Config { return g.cfg }

// Generate expands the axiom and draws it from the origin.
func (g *Generator) Generate(rng randx.Rand) (*core.Result, error) {
	sys, err := lsystem.New(g.cfg.Config, g.rules, lsystem.TreeTable())
	if err != nil {
		return nil, err
	}
	grammar, err := sys.Expand(rng)
	if err != nil {
		return nil, err
	}
	start := lsystem.NewTurtle()
	start.ScaleFalloff = g.cfg.ScaleFalloff
	start.HeightFalloff = g.cfg.HeightFalloff
	in := sys.Interpreter()
	in.Start = &start
	out, err := in.Run(grammar)
	if err != nil {
		return nil, err
	}
	return &core.Result{Variant: Name, Grammar: grammar, Transforms: out}, nil
}

func init() {
	core.Register(Name, func(cfg map[string]string) (core.Variant, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		g, err := New(c)
		if err != nil {
			return nil, err
		}
		return g, nil
	})
}
