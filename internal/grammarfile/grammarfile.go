// Package grammarfile loads grammar definitions from YAML or JSON files.
package grammarfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"cogentcore.org/core/base/randx"
	"gopkg.in/yaml.v3"

	"arbor/internal/core"
	"arbor/internal/lsystem"
	"arbor/internal/terrain"
)

var (
	// ErrFormat reports a file extension that is neither YAML nor JSON.
	ErrFormat = errors.New("unsupported grammar file format")
	// ErrSymbol reports a rule key that is not exactly one symbol.
	ErrSymbol = errors.New("rule key must be a single symbol")
	// ErrTable reports an unknown drawing table name.
	ErrTable = errors.New("unknown drawing table")
	// ErrDecode reports a document that is not valid YAML or JSON.
	ErrDecode = errors.New("malformed grammar file")
)

// Format is the encoding of a grammar file.
type Format string

const (
	YAML Format = "yaml"
	JSON Format = "json"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrFormat, filepath.Ext(path))
}

// File is a grammar definition: settings, a drawing table name and the
// weighted rewrite rules per symbol.
type File struct {
	Name  string `yaml:"name" json:"name"`
	Table string `yaml:"table" json:"table"`
	// Span is the world width of a terrain texture steered over; zero
	// means terrain.DefaultSpan.
	Span           float32 `yaml:"span,omitempty" json:"span,omitempty"`
	lsystem.Config `yaml:",inline"`

	Rules map[string][]lsystem.Weighted `yaml:"rules" json:"rules"`
}

// Load reads and validates the grammar file at path.
func Load(path string) (*File, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read grammar: %w", err)
	}
	f, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if f.Name == "" {
		f.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return f, nil
}

// Parse decodes data over the default settings and validates the result.
func Parse(data []byte, format Format) (*File, error) {
	f := &File{Table: "tree", Config: lsystem.DefaultConfig()}
	switch format {
	case YAML:
		if err := yaml.Unmarshal(data, f); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(f); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, format)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks the settings, the table name and every rule.
func (f *File) Validate() error {
	if err := f.Config.Validate(); err != nil {
		return err
	}
	if f.Span < 0 {
		return fmt.Errorf("%w: span %v", lsystem.ErrInvalidConfig, f.Span)
	}
	if _, err := f.DrawingTable(); err != nil {
		return err
	}
	_, err := f.Expander()
	return err
}

// Expander builds the rewrite rules.
func (f *File) Expander() (*lsystem.Expander, error) {
	keys := make([]string, 0, len(f.Rules))
	for k := range f.Rules {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rules := make([]*lsystem.ExpansionRule, 0, len(keys))
	for _, k := range keys {
		if utf8.RuneCountInString(k) != 1 {
			return nil, fmt.Errorf("%w: %q", ErrSymbol, k)
		}
		sym, _ := utf8.DecodeRuneInString(k)
		r, err := lsystem.NewExpansionRule(sym, f.Rules[k]...)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	exp := lsystem.NewExpander(rules...)
	exp.MaxLength = f.MaxLength
	return exp, nil
}

// DrawingTable resolves the named table.
func (f *File) DrawingTable() (lsystem.DrawingTable, error) {
	mk, ok := lsystem.Tables[f.Table]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTable, f.Table)
	}
	return mk(), nil
}

// Variant wraps the file as a generator. Tables with steering consume the
// terrain set through SetTerrain; without one, steering does nothing.
func (f *File) Variant() (*Variant, error) {
	exp, err := f.Expander()
	if err != nil {
		return nil, err
	}
	table, err := f.DrawingTable()
	if err != nil {
		return nil, err
	}
	return &Variant{file: f, rules: exp, table: table}, nil
}

// Variant generates from a grammar file.
type Variant struct {
	file  *File
	rules *lsystem.Expander
	table lsystem.DrawingTable

	sampler terrain.Sampler
	frame   terrain.Frame
}

var (
	_ core.Variant     = (*Variant)(nil)
	_ terrain.Consumer = (*Variant)(nil)
)

// Name implements core.Variant.
func (v *Variant) Name() string { return v.file.Name }

// Config implements core.Variant.
func (v *Variant) Config() lsystem.Config { return v.file.Config }

// SetTerrain implements terrain.Consumer.
func (v *Variant) SetTerrain(s terrain.Sampler, f terrain.Frame) {
	v.sampler = s
	v.frame = f
}

// Texture returns the terrain set through SetTerrain when it is a texture.
func (v *Variant) Texture() *terrain.Texture {
	t, _ := v.sampler.(*terrain.Texture)
	return t
}

// Span is the world width the file's terrain covers.
func (v *Variant) Span() float32 {
	if v.file.Span > 0 {
		return v.file.Span
	}
	return terrain.DefaultSpan
}

// Frame returns the world to texture mapping set through SetTerrain.
func (v *Variant) Frame() terrain.Frame { return v.frame }

// Generate implements core.Variant.
func (v *Variant) Generate(rng randx.Rand) (*core.Result, error) {
	sys, err := lsystem.New(v.file.Config, v.rules, v.table)
	if err != nil {
		return nil, err
	}
	grammar, err := sys.Expand(rng)
	if err != nil {
		return nil, err
	}
	in := sys.Interpreter()
	in.Terrain = v.sampler
	in.Frame = v.frame
	in.Rand = rng
	out, err := in.Run(grammar)
	if err != nil {
		return nil, err
	}
	return &core.Result{Variant: v.Name(), Grammar: grammar, Transforms: out}, nil
}
