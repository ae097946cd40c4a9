package grammarfile

import (
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/core/base/randx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbor/internal/lsystem"
)

const bushYAML = `
name: bush
table: tree
axiom: F
iterations: 2
angle: 22.5
max_length: 200000
rules:
  F:
    - {weight: 0.5, text: "F[+F]F"}
    - {weight: 0.5, text: "F[-F]F"}
`

const lineJSON = `{
  "table": "tree",
  "axiom": "F",
  "iterations": 3,
  "rules": {"F": [{"weight": 1, "text": "FF"}]}
}`

func TestParseYAML(t *testing.T) {
	f, err := Parse([]byte(bushYAML), YAML)
	require.NoError(t, err)
	assert.Equal(t, "bush", f.Name)
	assert.Equal(t, 2, f.Iterations)
	assert.InDelta(t, 22.5, f.Angle, 1e-6)
	assert.Equal(t, 200000, f.MaxLength)
	require.Len(t, f.Rules["F"], 2)
	assert.Equal(t, "F[-F]F", f.Rules["F"][1].Text)
}

func TestParseJSONKeepsDefaults(t *testing.T) {
	f, err := Parse([]byte(lineJSON), JSON)
	require.NoError(t, err)
	assert.Equal(t, 3, f.Iterations)
	assert.Equal(t, lsystem.DefaultConfig().Angle, f.Angle)
	assert.Equal(t, lsystem.DefaultConfig().MaxLength, f.MaxLength)

	v, err := f.Variant()
	require.NoError(t, err)
	res, err := v.Generate(randx.NewSysRand(1))
	require.NoError(t, err)
	assert.Equal(t, "FFFFFFFF", res.Grammar)
	assert.Equal(t, 8, res.Transforms.Len(lsystem.Branch))
}

func TestParseRejects(t *testing.T) {
	cases := map[string]struct {
		doc  string
		want error
	}{
		"long key":    {"rules: {FF: [{weight: 1, text: F}]}", ErrSymbol},
		"bad weights": {"rules: {F: [{weight: 0.4, text: F}]}", lsystem.ErrMalformedRule},
		"table":       {"table: flower", ErrTable},
		"iterations":  {"iterations: -1", lsystem.ErrInvalidConfig},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc), YAML)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	_, err := Parse([]byte(`{"axiom": "F", "colour": "red"}`), JSON)
	assert.ErrorIs(t, err, ErrDecode)
	_, err = Parse([]byte("rules: [unclosed"), YAML)
	assert.ErrorIs(t, err, ErrDecode)
	_, err = Parse(nil, Format("toml"))
	assert.ErrorIs(t, err, ErrFormat)
}

func TestLoadByExtension(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "bush.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(bushYAML), 0o644))
	f, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "bush", f.Name)

	jsonPath := filepath.Join(dir, "line.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(lineJSON), 0o644))
	f, err = Load(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "line", f.Name)

	_, err = Load(filepath.Join(dir, "grammar.txt"))
	assert.ErrorIs(t, err, ErrFormat)
	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestVariantIsReproducible(t *testing.T) {
	f, err := Parse([]byte(bushYAML), YAML)
	require.NoError(t, err)
	v, err := f.Variant()
	require.NoError(t, err)
	a, err := v.Generate(randx.NewSysRand(3))
	require.NoError(t, err)
	b, err := v.Generate(randx.NewSysRand(3))
	require.NoError(t, err)
	assert.Equal(t, a.Grammar, b.Grammar)
	assert.Equal(t, "bush", a.Variant)
	assert.Equal(t, a.Transforms.Class(lsystem.Branch), b.Transforms.Class(lsystem.Branch))
}
