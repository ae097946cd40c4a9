// Package variants registers the built-in variants and opens variants by
// name or grammar file for the command-line tools.
package variants

import (
	"fmt"
	"strings"

	"arbor/internal/core"
	"arbor/internal/grammarfile"
	"arbor/internal/lsystem"
	"arbor/internal/terrain"
	_ "arbor/internal/variants/highway"
	_ "arbor/internal/variants/tree"
)

// Source selects a variant: a grammar file when File is set, otherwise the
// registered variant called Name. Overrides are applied on top of the
// variant's defaults. Texture, when set, is loaded and handed to variants
// that steer over terrain.
type Source struct {
	Name      string
	File      string
	Overrides map[string]string
	Texture   string
	// Span is the world width the texture covers; zero uses the span the
	// variant was configured with.
	Span float32
}

type spanner interface {
	Span() float32
}

// Open builds the variant described by src.
func Open(src Source) (core.Variant, error) {
	v, err := open(src)
	if err != nil {
		return nil, err
	}
	if src.Texture == "" {
		return v, nil
	}
	consumer, ok := v.(terrain.Consumer)
	if !ok {
		return nil, fmt.Errorf("variant %q does not use terrain", v.Name())
	}
	tex, err := terrain.LoadPNG(src.Texture)
	if err != nil {
		return nil, err
	}
	span := src.Span
	if sp, ok := v.(spanner); ok && span <= 0 {
		span = sp.Span()
	}
	if span <= 0 {
		span = terrain.DefaultSpan
	}
	consumer.SetTerrain(tex, terrain.FrameFor(tex, span))
	return v, nil
}

func open(src Source) (core.Variant, error) {
	if src.File == "" {
		return core.Lookup(src.Name, src.Overrides)
	}
	f, err := grammarfile.Load(src.File)
	if err != nil {
		return nil, err
	}
	if len(src.Overrides) > 0 {
		if f.Config, err = f.Config.Apply(src.Overrides); err != nil {
			return nil, err
		}
		terr := struct {
			Span float32 `mapstructure:"span"`
		}{f.Span}
		if err := lsystem.DecodeMap(src.Overrides, &terr); err != nil {
			return nil, err
		}
		f.Span = terr.Span
		if err := f.Validate(); err != nil {
			return nil, err
		}
	}
	return f.Variant()
}

// ParseOverrides turns repeated key=value pairs into a config map.
func ParseOverrides(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, kv := range pairs {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: override %q is not key=value", lsystem.ErrInvalidConfig, kv)
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}
