package highway

import (
	"fmt"

	"arbor/internal/lsystem"
	"arbor/internal/terrain"
)

// Upper bounds on the tunables that size the work of one generation.
const (
	MaxTextureSize = 1024
	MaxCandidates  = 12
	MaxSpread      = 180
)

// Config holds the tunables for the highway generator.
type Config struct {
	lsystem.Config `mapstructure:",squash" yaml:",inline"`

	// TextureSize is the side of the synthetic map built when no texture
	// is supplied.
	TextureSize int `mapstructure:"texture_size" yaml:"texture_size" json:"texture_size"`
	// Span is the world width covered by the texture.
	Span float32 `mapstructure:"span" yaml:"span" json:"span"`
	// Texture is an optional map image path.
	Texture string `mapstructure:"texture" yaml:"texture,omitempty" json:"texture,omitempty"`

	Candidates int     `mapstructure:"candidates" yaml:"candidates" json:"candidates"`
	Spread     float32 `mapstructure:"spread" yaml:"spread" json:"spread"`
	Lookahead  float32 `mapstructure:"lookahead" yaml:"lookahead" json:"lookahead"`
}

// DefaultConfig returns a road network sized for a 4x4 world.
func DefaultConfig() Config {
	return Config{
		Config: lsystem.Config{
			Axiom:      "H",
			Iterations: 4,
			Angle:      60,
			MaxLength:  2_000_000,
		},
		TextureSize: 256,
		Span:        terrain.DefaultSpan,
		Candidates:  3,
		Spread:      60,
		Lookahead:   0.1,
	}
}

// Validate reports settings the generator cannot run with.
func (c Config) Validate() error {
	if err := c.Config.Validate(); err != nil {
		return err
	}
	if c.TextureSize <= 0 || c.TextureSize > MaxTextureSize {
		return fmt.Errorf("%w: texture_size %d outside 1..%d", lsystem.ErrInvalidConfig, c.TextureSize, MaxTextureSize)
	}
	if c.Span <= 0 {
		return fmt.Errorf("%w: span %v", lsystem.ErrInvalidConfig, c.Span)
	}
	if c.Candidates < 0 || c.Candidates > MaxCandidates {
		return fmt.Errorf("%w: candidates %d outside 0..%d", lsystem.ErrInvalidConfig, c.Candidates, MaxCandidates)
	}
	if c.Spread < 0 || c.Spread > MaxSpread {
		return fmt.Errorf("%w: spread %v outside 0..%d", lsystem.ErrInvalidConfig, c.Spread, MaxSpread)
	}
	if c.Lookahead < 0 {
		return fmt.Errorf("%w: lookahead %v", lsystem.ErrInvalidConfig, c.Lookahead)
	}
	return nil
}

// FromMap populates a Config from a string map, falling back to defaults.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	if len(cfg) == 0 {
		return c, nil
	}
	if err := lsystem.DecodeMap(cfg, &c); err != nil {
		return DefaultConfig(), err
	}
	if err := c.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return c, nil
}
