// Package modelcache persists trained win-probability models keyed by
// player identifier, guarded by a schema version.
package modelcache

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/rbatllet/royale-advisor/internal/ml"
)

// ErrNotFound is returned by stores when no record exists for a key.
var ErrNotFound = errors.New("modelcache: record not found")

// Record is the persisted form of a trained model. A record whose Version
// does not match the current schema version is treated as absent, never
// partially trusted.
type Record struct {
	PlayerKey    string             `json:"playerIdKey"`
	Version      int                `json:"version"`
	TrainedAt    time.Time          `json:"trainedAt"`
	Samples      int                `json:"samples"`
	Dims         int                `json:"dims"`
	Weights      []float64          `json:"weights"`
	Distribution map[string]float64 `json:"opponentDistribution"`
}

// Store is a key-value backend for cache records. Put must be atomic: a
// reader never observes a partially written record. Concurrent writers for
// the same key may race; last writer wins, which is acceptable because
// records are versioned and written wholesale.
type Store interface {
	Get(ctx context.Context, key string) (*Record, error)
	Put(ctx context.Context, key string, rec *Record) error
	Delete(ctx context.Context, key string) error
}

var unsafeRuns = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// SanitizeKey converts a raw player identifier into a safe storage key:
// the leading tag marker is stripped, runs of unsafe characters collapse to
// a single underscore, and the result is uppercased. Two distinct raw
// identifiers can sanitize identically and will then share a cache entry;
// in practice player tags are alphanumeric and do not collide.
func SanitizeKey(playerID string) string {
	key := strings.TrimPrefix(playerID, "#")
	key = unsafeRuns.ReplaceAllString(key, "_")
	return strings.ToUpper(key)
}

// recordToModel reconstructs the in-memory model and distribution from a
// record. Returns a nil model if the record never carried weights.
// Unrecognized archetype names fold into Hybrid/Other; accumulation keeps
// the folded distribution summing to the persisted total even when several
// names fold together.
func recordToModel(rec *Record) (*ml.Model, ml.Distribution) {
	dist := make(ml.Distribution, len(rec.Distribution))
	for arch, p := range rec.Distribution {
		dist[archetypeFromString(arch)] += p
	}
	if len(rec.Weights) == 0 {
		return nil, dist
	}
	return &ml.Model{
		Weights: rec.Weights,
		Dims:    rec.Dims,
		Samples: rec.Samples,
	}, dist
}
