package core

import (
	"errors"
	"fmt"
	"sort"

	"cogentcore.org/core/base/randx"

	"arbor/internal/lsystem"
	pkgcore "arbor/pkg/core"
)

// ErrUnknownVariant reports a lookup for a name nobody registered.
var ErrUnknownVariant = errors.New("unknown variant")

// Result is one generation: the expanded grammar and what was drawn from it.
type Result struct {
	Variant    string
	Seed       int64
	Grammar    string
	Transforms *lsystem.Transforms
}

// Variant is a configured generator for one family of geometry.
type Variant interface {
	Name() string
	Config() lsystem.Config
	Generate(rng randx.Rand) (*Result, error)
}

// Factory constructs a Variant using an optional configuration map.
type Factory func(cfg map[string]string) (Variant, error)

var variants = map[string]Factory{}

// Register adds a variant factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	variants[name] = f
}

// Variants exposes the registry of available variant factories.
func Variants() map[string]Factory {
	return variants
}

// Names lists the registered variants in sorted order.
func Names() []string {
	out := make([]string, 0, len(variants))
	for name := range variants {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Lookup builds the named variant from cfg.
func Lookup(name string, cfg map[string]string) (Variant, error) {
	f, ok := variants[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
	return f(cfg)
}

// Generate runs v with a fresh generator seeded by seed and stamps the
// result with it.
func Generate(v Variant, seed int64) (*Result, error) {
	rng := pkgcore.NewRNG(seed)
	res, err := v.Generate(rng.Source())
	if err != nil {
		return nil, err
	}
	res.Variant = v.Name()
	res.Seed = seed
	return res, nil
}
