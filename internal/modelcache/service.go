package modelcache

import (
	"context"
	"log/slog"
	"time"

	"github.com/rbatllet/royale-advisor/internal/archetype"
	"github.com/rbatllet/royale-advisor/internal/ml"
	"github.com/rbatllet/royale-advisor/internal/royale"
)

// BattleSource supplies a player's recent battles. Implemented by the
// card-data API client.
type BattleSource interface {
	RecentBattles(ctx context.Context, tag string, limit int) ([]royale.Battle, error)
}

// Result is what Get hands back to callers. Model is nil when the player
// has too little usable history; callers fall back to heuristic-only
// scoring.
type Result struct {
	Model        *ml.Model
	Distribution ml.Distribution
	Samples      int
	FromCache    bool
	TrainedAt    time.Time
}

// Service memoizes trained models behind a versioned store.
type Service struct {
	store   Store
	trainer *ml.Trainer
	battles BattleSource
	limit   int
}

// NewService creates a cache service. limit caps the battle-log fetch and
// should match the trainer's MaxBattles.
func NewService(store Store, trainer *ml.Trainer, battles BattleSource, limit int) *Service {
	return &Service{store: store, trainer: trainer, battles: battles, limit: limit}
}

// Get returns the trained model for a player. A persisted record with a
// matching schema version is reconstructed without retraining; a miss,
// version mismatch, or force triggers a fresh training run whose result is
// persisted only if a model was actually produced.
func (s *Service) Get(ctx context.Context, playerTag string, force bool) (*Result, error) {
	key := SanitizeKey(playerTag)

	if !force {
		if rec, err := s.store.Get(ctx, key); err == nil && rec.Version == ml.SchemaVersion {
			model, dist := recordToModel(rec)
			return &Result{
				Model:        model,
				Distribution: dist,
				Samples:      rec.Samples,
				FromCache:    true,
				TrainedAt:    rec.TrainedAt,
			}, nil
		}
	}

	battles, err := s.battles.RecentBattles(ctx, playerTag, s.limit)
	if err != nil {
		return nil, err
	}

	trained := s.trainer.Train(battles)
	result := &Result{
		Model:        trained.Model,
		Distribution: trained.Distribution,
		Samples:      trained.Samples,
	}

	if trained.Model == nil {
		// Insufficient data is not an error and nothing is persisted:
		// the next call should try training again.
		return result, nil
	}

	result.TrainedAt = time.Now().UTC()
	rec := &Record{
		PlayerKey:    key,
		Version:      ml.SchemaVersion,
		TrainedAt:    result.TrainedAt,
		Samples:      trained.Samples,
		Dims:         trained.Model.Dims,
		Weights:      trained.Model.Weights,
		Distribution: distributionToStrings(trained.Distribution),
	}
	if err := s.store.Put(ctx, key, rec); err != nil {
		// A failed write costs a retrain on the next call, nothing more.
		slog.Warn("model cache write failed", "player", key, "error", err)
	}
	return result, nil
}

// Invalidate drops the cached record for a player.
func (s *Service) Invalidate(ctx context.Context, playerTag string) error {
	return s.store.Delete(ctx, SanitizeKey(playerTag))
}

func distributionToStrings(dist ml.Distribution) map[string]float64 {
	out := make(map[string]float64, len(dist))
	for arch, p := range dist {
		out[string(arch)] = p
	}
	return out
}

func archetypeFromString(name string) archetype.Archetype {
	for _, a := range archetype.All {
		if string(a) == name {
			return a
		}
	}
	return archetype.Hybrid
}
