package tree

import (
	"fmt"

	"arbor/internal/lsystem"
)

// Config holds the tunables for the tree generator.
type Config struct {
	lsystem.Config `mapstructure:",squash" yaml:",inline"`

	ScaleFalloff  float32 `mapstructure:"scale_falloff" yaml:"scale_falloff" json:"scale_falloff"`
	HeightFalloff float32 `mapstructure:"height_falloff" yaml:"height_falloff" json:"height_falloff"`
}

// DefaultConfig returns a configuration that grows a full tree.
func DefaultConfig() Config {
	return Config{
		Config:        lsystem.DefaultConfig(),
		ScaleFalloff:  lsystem.DefaultScaleFalloff,
		HeightFalloff: lsystem.DefaultHeightFalloff,
	}
}

// Validate reports settings the generator cannot run with.
func (c Config) Validate() error {
	if err := c.Config.Validate(); err != nil {
		return err
	}
	if c.ScaleFalloff <= 0 || c.ScaleFalloff > 1 {
		return fmt.Errorf("%w: scale_falloff %v outside (0,1]", lsystem.ErrInvalidConfig, c.ScaleFalloff)
	}
	if c.HeightFalloff <= 0 || c.HeightFalloff > 1 {
		return fmt.Errorf("%w: height_falloff %v outside (0,1]", lsystem.ErrInvalidConfig, c.HeightFalloff)
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
