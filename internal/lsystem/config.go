package lsystem

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Config holds the grammar state parameters of one generator.
type Config struct {
	Axiom      string  `mapstructure:"axiom" yaml:"axiom" json:"axiom"`
	Iterations int     `mapstructure:"iterations" yaml:"iterations" json:"iterations"`
	Angle      float32 `mapstructure:"angle" yaml:"angle" json:"angle"`
	// MaxLength bounds the expanded grammar. Zero means unbounded.
	MaxLength int `mapstructure:"max_length" yaml:"max_length" json:"max_length"`
}

// DefaultConfig returns the tree settings the generator ships with.
func DefaultConfig() Config {
	return Config{Axiom: "F", Iterations: 5, Angle: 90, MaxLength: 2_000_000}
}

// Validate reports settings the engine cannot run with.
func (c Config) Validate() error {
	if c.Axiom == "" {
		return fmt.Errorf("%w: empty axiom", ErrInvalidConfig)
	}
	if c.Iterations < 0 {
		return fmt.Errorf("%w: iterations %d", ErrInvalidConfig, c.Iterations)
	}
	if c.MaxLength < 0 {
		return fmt.Errorf("%w: max_length %d", ErrInvalidConfig, c.MaxLength)
	}
	return nil
}

// DecodeMap decodes flag-style key/value pairs into out, which must be a
// pointer to a struct with mapstructure tags. Values are decoded weakly, so
// "5" fills an int and "22.5" a float. Unknown keys are ignored.
func DecodeMap(in map[string]string, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(in); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Apply overlays key/value pairs onto c and validates the result.
func (c Config) Apply(cfg map[string]string) (Config, error) {
	if len(cfg) == 0 {
		return c, nil
	}
	out := c
	if err := DecodeMap(cfg, &out); err != nil {
		return c, err
	}
	if err := out.Validate(); err != nil {
		return c, err
	}
	return out, nil
}

// FromMap populates a Config from a string map over DefaultConfig.
func FromMap(cfg map[string]string) (Config, error) {
	return DefaultConfig().Apply(cfg)
}
