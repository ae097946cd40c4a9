package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON    = "json"
	formatYAML    = "yaml"
	formatSummary = "summary"
)

// outputFormat resolves the --format flag. Without one, terminals get the
// summary and everything else gets json.
func outputFormat(flag string, w io.Writer) (string, error) {
	switch flag {
	case formatJSON, formatYAML, formatSummary:
		return flag, nil
	case "":
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return formatSummary, nil
		}
		return formatJSON, nil
	}
	return "", fmt.Errorf("unknown format %q (want json, yaml or summary)", flag)
}

// encode writes v as json or yaml.
func encode(w io.Writer, format string, v any) error {
	if format == formatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// styler colors summary output for the terminal behind w.
type styler struct {
	profile termenv.Profile
}

func newStyler(w io.Writer) styler {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return styler{profile: termenv.ColorProfile()}
	}
	return styler{profile: termenv.Ascii}
}

func (s styler) title(v string) string {
	return s.profile.String(v).Bold().Foreground(s.profile.Color("#a78bfa")).String()
}

func (s styler) key(v string) string {
	return s.profile.String(v).Foreground(s.profile.Color("#818cf8")).String()
}

func (s styler) value(v any) string {
	return s.profile.String(fmt.Sprint(v)).Foreground(s.profile.Color("#f472b6")).String()
}

func (s styler) failure(v string) string {
	return s.profile.String(v).Foreground(s.profile.Color("#fb7185")).String()
}

// field writes one aligned "key: value" summary line.
func (s styler) field(w io.Writer, key string, v any) {
	fmt.Fprintf(w, "  %s %s\n", s.key(fmt.Sprintf("%-16s", key+":")), s.value(v))
}
