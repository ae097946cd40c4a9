// Package highway grows a road network that heads for populated ground and
// keeps out of water.
package highway

import (
	"cogentcore.org/core/base/randx"

	"arbor/internal/core"
	"arbor/internal/lsystem"
	"arbor/internal/terrain"
)

// Name is the registry key of the highway variant.
const Name = "highway"

// Rules returns the highway rewrite rules. Every highway segment steers
// before it extends; roads branch off and wander with the same steering.
func Rules() *lsystem.Expander {
	return lsystem.NewExpander(
		lsystem.MustExpansionRule('H',
			lsystem.Weighted{Weight: 0.45, Text: "~HH"},
			lsystem.Weighted{Weight: 0.35, Text: "~H[+R][-R]H"},
			lsystem.Weighted{Weight: 0.20, Text: "~H[+~H]H"},
		),
		lsystem.MustExpansionRule('R',
			lsystem.Weighted{Weight: 0.7, Text: "R~R"},
			lsystem.Weighted{Weight: 0.3, Text: "R[-R]"},
		),
	)
}

// Generator grows highways over a terrain map.
type Generator struct {
	cfg   Config
	rules *lsystem.Expander

	sampler terrain.Sampler
	frame   terrain.Frame
	// last is the texture steered by the latest Generate call.
	last *terrain.Texture
}

var (
	_ core.Variant     = (*Generator)(nil)
	_ terrain.Consumer = (*Generator)(nil)
)

// New validates cfg and loads cfg.Texture when set.
func New(cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Generator{cfg: cfg, rules: Rules()}
	if cfg.Texture != "" {
		tex, err := terrain.LoadPNG(cfg.Texture)
		if err != nil {
			return nil, err
		}
		g.SetTerrain(tex, terrain.FrameFor(tex, cfg.Span))
	}
	return g, nil
}

// Name implements core.Variant.
func (g *Generator) Name() string { return Name }

// Config implements core.Variant.
func (g *Generator) Config() lsystem.Config { return g.cfg.Config }

// Settings returns the full highway configuration.
func (g *Generator) Settings() Config { return g.cfg }

// SetTerrain implements terrain.Consumer. A nil sampler restores the
// per-seed synthetic map.
func (g *Generator) SetTerrain(s terrain.Sampler, f terrain.Frame) {
	g.sampler = s
	g.frame = f
	g.last, _ = s.(*terrain.Texture)
}

// Texture returns the map steered by the most recent generation, or nil
// when the sampler is not a texture.
func (g *Generator) Texture() *terrain.Texture { return g.last }

// Span is the configured world width of the terrain.
func (g *Generator) Span() float32 { return g.cfg.Span }

// Frame returns the world to texture mapping of the current map.
func (g *Generator) Frame() terrain.Frame { return g.frame }

func (g *Generator) table() lsystem.DrawingTable {
	t := lsystem.HighwayTable()
	t['~'] = lsystem.Steer(g.cfg.Candidates, g.cfg.Spread, g.cfg.Lookahead)
	return t
}

// Generate expands the axiom and draws it over the terrain. Without an
// explicit terrain a synthetic map is drawn from rng first, so one seed
// fixes both the map and the network.
func (g *Generator) Generate(rng randx.Rand) (*core.Result, error) {
	sampler, frame := g.sampler, g.frame
	if sampler == nil {
		tex := terrain.Synthetic(g.cfg.TextureSize, g.cfg.TextureSize, rng)
		sampler, frame = tex, terrain.FrameFor(tex, g.cfg.Span)
		g.last, g.frame = tex, frame
	}

	sys, err := lsystem.New(g.cfg.Config, g.rules, g.table())
	if err != nil {
		return nil, err
	}
	grammar, err := sys.Expand(rng)
	if err != nil {
		return nil, err
	}
	in := sys.Interpreter()
	in.Terrain = sampler
	in.Frame = frame
	in.Rand = rng
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
