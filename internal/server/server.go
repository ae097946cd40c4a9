// Package server exposes generation over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"cogentcore.org/core/math32"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"arbor/internal/cache"
	"arbor/internal/core"
	"arbor/internal/grammarfile"
	"arbor/internal/logging"
	"arbor/internal/lsystem"
	"arbor/internal/metrics"
	pkgcore "arbor/pkg/core"
)

const (
	// DefaultMaxLength caps the expanded grammar of a single request.
	DefaultMaxLength = 2_000_000
	// DefaultMaxBodyBytes caps the size of a request body.
	DefaultMaxBodyBytes = 1 << 20
)

// serverOnlyKeys name config keys a request may not set because they reach
// the server's filesystem.
var serverOnlyKeys = []string{"texture"}

// Server handles generation requests. Every request builds its own variant,
// so nothing but the cache and metrics is shared between requests.
type Server struct {
	Cache   cache.Store
	Metrics *metrics.Metrics
	Logger  *slog.Logger
	// MaxLength bounds max_length for every request.
	MaxLength int
	// MaxBodyBytes bounds the request body.
	MaxBodyBytes int64
}

// GenerateRequest is the body of POST /v1/generate. Either Variant names a
// registered variant or Grammar carries an inline grammar file in its JSON
// form. Seed is optional; an absent seed is drawn from OS entropy and the
// result is not cached.
type GenerateRequest struct {
	Variant        string          `json:"variant,omitempty"`
	Grammar        json.RawMessage `json:"grammar,omitempty"`
	Config         map[string]any  `json:"config,omitempty"`
	Seed           *int64          `json:"seed,omitempty"`
	IncludeGrammar bool            `json:"include_grammar,omitempty"`
}

// GenerateResponse carries the instance transforms per geometry class,
// each a column-major 4x4 matrix.
type GenerateResponse struct {
	Variant       string                      `json:"variant" yaml:"variant"`
	Seed          int64                       `json:"seed" yaml:"seed"`
	GrammarLength int                         `json:"grammar_length" yaml:"grammar_length"`
	Grammar       string                      `json:"grammar,omitempty" yaml:"grammar,omitempty"`
	Counts        map[string]int              `json:"counts" yaml:"counts"`
	Transforms    map[string][]math32.Matrix4 `json:"transforms" yaml:"transforms"`
}

// VariantInfo describes one registered variant.
type VariantInfo struct {
	Name       string                 `json:"name" yaml:"name"`
	Config     lsystem.Config         `json:"config" yaml:"config"`
	Parameters core.ParameterSnapshot `json:"parameters" yaml:"parameters"`
}

// NewHandler creates the HTTP handler for s.
func NewHandler(s *Server) http.Handler {
	if s.Logger == nil {
		s.Logger = logging.NewNop()
	}
	if s.MaxLength <= 0 {
		s.MaxLength = DefaultMaxLength
	}
	if s.MaxBodyBytes <= 0 {
		s.MaxBodyBytes = DefaultMaxBodyBytes
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Get("/v1/variants", s.variants)
	r.Post("/v1/generate", s.generate)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())
	}
	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) variants(w http.ResponseWriter, r *http.Request) {
	out := make([]VariantInfo, 0, len(core.Variants()))
	for _, name := range core.Names() {
		v, err := core.Lookup(name, nil)
		if err != nil {
			s.Logger.Error("variant defaults", "variant", name, "error", err)
			continue
		}
		out = append(out, Describe(v))
	}
	writeJSON(w, http.StatusOK, out)
}

// Describe reports the settings and tunables of v.
func Describe(v core.Variant) VariantInfo {
	info := VariantInfo{Name: v.Name(), Config: v.Config()}
	if p, ok := v.(core.ParameterProvider); ok {
		info.Parameters = p.Parameters()
	}
	return info
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	body := http.MaxBytesReader(w, r.Body, s.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeError(w, status, fmt.Errorf("invalid request body: %w", err))
		return
	}
	for _, key := range serverOnlyKeys {
		if _, ok := req.Config[key]; ok {
			writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %q cannot be set by a request", lsystem.ErrInvalidConfig, key))
			return
		}
	}
	cfg := stringify(req.Config)

	seed, cacheable := int64(0), req.Seed != nil
	if cacheable {
		seed = *req.Seed
	} else {
		var err error
		if seed, err = pkgcore.EntropySeed(); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}

	label := req.Variant
	if len(req.Grammar) > 0 {
		label = grammarLabel
		if cfg == nil {
			cfg = map[string]string{}
		}
		cfg[grammarLabel] = string(req.Grammar)
	}
	key := cache.Key(label, cfg, seed, req.IncludeGrammar)
	if cacheable && s.Cache != nil {
		body, err := s.Cache.Get(r.Context(), key)
		switch {
		case err == nil:
			s.Metrics.ObserveCache(true)
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "hit")
			w.Write(body)
			return
		case errors.Is(err, cache.ErrMiss):
			s.Metrics.ObserveCache(false)
		default:
			s.Logger.Warn("cache read", "key", key, "error", err)
		}
	}

	v, err := resolve(req, cfg)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	if limit := v.Config().MaxLength; limit == 0 || limit > s.MaxLength {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: max_length must be between 1 and %d", lsystem.ErrInvalidConfig, s.MaxLength))
		return
	}

	start := time.Now()
	res, err := core.Generate(v, seed)
	elapsed := time.Since(start)
	s.Metrics.ObserveGeneration(label, elapsed, res, err)
	if err != nil {
		s.Logger.Error("generate", "variant", label, "seed", seed, "error", err)
		writeError(w, statusFor(err), err)
		return
	}
	s.Logger.Info("generated",
		"variant", res.Variant,
		"seed", seed,
		"grammar_length", len(res.Grammar),
		"transforms", res.Transforms.Total(),
		"elapsed", elapsed,
	)

	body, err := json.Marshal(NewResponse(res, req.IncludeGrammar))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if cacheable && s.Cache != nil {
		if err := s.Cache.Set(r.Context(), key, body); err != nil {
			s.Logger.Warn("cache write", "key", key, "error", err)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "miss")
	w.Write(body)
}

// grammarLabel stands in for the variant name of inline grammars in metrics
// and cache keys.
const grammarLabel = "grammar"

func resolve(req GenerateRequest, cfg map[string]string) (core.Variant, error) {
	if len(req.Grammar) == 0 {
		return core.Lookup(req.Variant, cfg)
	}
	f, err := grammarfile.Parse(req.Grammar, grammarfile.JSON)
	if err != nil {
		return nil, err
	}
	delete(cfg, grammarLabel)
	if f.Config, err = f.Config.Apply(cfg); err != nil {
		return nil, err
	}
	if f.Name == "" {
		f.Name = grammarLabel
	}
	return f.Variant()
}

// NewResponse converts a result into its wire form.
func NewResponse(res *core.Result, includeGrammar bool) GenerateResponse {
	out := GenerateResponse{
		Variant:       res.Variant,
		Seed:          res.Seed,
		GrammarLength: len([]rune(res.Grammar)),
		Counts:        map[string]int{},
		Transforms:    res.Transforms.Map(),
	}
	for class, n := range res.Transforms.Counts() {
		out.Counts[string(class)] = n
	}
	if includeGrammar {
		out.Grammar = res.Grammar
	}
	return out
}

func stringify(in map[string]any) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		switch n := v.(type) {
		case float64:
			out[k] = strconv.FormatFloat(n, 'f', -1, 64)
		default:
			out[k] = fmt.Sprint(v)
		}
	}
	return out
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrUnknownVariant),
		errors.Is(err, lsystem.ErrInvalidConfig),
		errors.Is(err, lsystem.ErrGrammarTooLong),
		errors.Is(err, lsystem.ErrMalformedRule),
		errors.Is(err, lsystem.ErrInvalidIterations),
		errors.Is(err, lsystem.ErrStackUnderflow),
		errors.Is(err, lsystem.ErrUnknownGeometry),
		errors.Is(err, grammarfile.ErrSymbol),
		errors.Is(err, grammarfile.ErrDecode),
		errors.Is(err, grammarfile.ErrTable):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
