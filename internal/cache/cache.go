// Package cache stores encoded generation results keyed by their inputs.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"strconv"
	"strings"
)

// ErrMiss reports a key with no stored value.
var ErrMiss = errors.New("cache miss")

// Store is a byte cache. Implementations are safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Key derives a stable key from everything that determines a result.
// Config order does not matter.
func Key(variant string, cfg map[string]string, seed int64, includeGrammar bool) string {
	keys := make([]string, 0, len(cfg))
	for k := range cfg {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(variant)
	b.WriteByte(0)
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(cfg[k])
		b.WriteByte(0)
	}
	b.WriteString(strconv.FormatInt(seed, 10))
	b.WriteByte(0)
	b.WriteString(strconv.FormatBool(includeGrammar))

	sum := sha256.Sum256([]byte(b.String()))
	return variant + ":" + hex.EncodeToString(sum[:16])
}
