package app

import (
	"flag"
	"strings"

	"arbor/internal/variants"
)

// Config holds command-line options for the viewer.
type Config struct {
	Variant   string
	File      string
	Texture   string
	Size      int
	Panel     int
	Seed      int64
	Rate      int
	TPS       int
	LogLevel  string
	Overrides overrideList
}

// NewConfig returns defaults for the viewer.
func NewConfig() Config {
	return Config{
		Variant:  "tree",
		Size:     640,
		Panel:    220,
		Seed:     1,
		Rate:     400,
		TPS:      60,
		LogLevel: "info",
	}
}

// Bind registers flags on the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Variant, "variant", c.Variant, "registered variant to preview")
	fs.StringVar(&c.File, "file", c.File, "grammar file (yaml or json) to preview instead of a variant")
	fs.StringVar(&c.Texture, "texture", c.Texture, "terrain PNG for variants that steer")
	fs.IntVar(&c.Size, "size", c.Size, "preview side in pixels")
	fs.IntVar(&c.Panel, "panel", c.Panel, "control panel width in pixels (0 hides it)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed")
	fs.IntVar(&c.Rate, "rate", c.Rate, "instances revealed per second (0 shows all at once)")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
	fs.Var(&c.Overrides, "set", "config override in key=value form (repeatable)")
}

// Source describes the variant the flags select.
func (c Config) Source() (variants.Source, error) {
	overrides, err := variants.ParseOverrides(c.Overrides)
	if err != nil {
		return variants.Source{}, err
	}
	return variants.Source{Name: c.Variant, File: c.File, Overrides: overrides, Texture: c.Texture}, nil
}

type overrideList []string

func (l *overrideList) String() string {
	return strings.Join(*l, ",")
}

func (l *overrideList) Set(value string) error {
	*l = append(*l, value)
	return nil
}
