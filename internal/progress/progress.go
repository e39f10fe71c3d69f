// Package progress records per-stage completion and personal bests under
// the completed-<id> and pb-<id> storage keys.
package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/puzzlequest/pkg/types"
)

// Tracker reads and writes progress records.
type Tracker struct {
	storage types.Storage
	logger  *zap.Logger
	now     func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the tracker logger.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Tracker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithClock sets the time source stamped on personal bests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// NewTracker returns a Tracker over storage.
func NewTracker(storage types.Storage, opts ...Option) *Tracker {
	t := &Tracker{storage: storage, logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// CompletedKey returns the storage key marking stage id as completed.
func CompletedKey(id int64) string {
	return types.PrefixCompleted + strconv.FormatInt(id, 10)
}

// BestKey returns the storage key holding the personal best for stage id.
func BestKey(id int64) string {
	return types.PrefixPersonalBest + strconv.FormatInt(id, 10)
}

// MarkCompleted records that stage id has been solved at least once.
func (t *Tracker) MarkCompleted(id int64) error {
	if err := t.storage.Set(CompletedKey(id), []byte("true")); err != nil {
		return fmt.Errorf("mark completed %d: %w", id, err)
	}
	return nil
}

// Completed reports whether stage id has been solved.
func (t *Tracker) Completed(id int64) (bool, error) {
	v, err := t.storage.Get(CompletedKey(id))
	if errors.Is(err, types.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read completed %d: %w", id, err)
	}
	return string(v) == "true", nil
}

// Best returns the personal best for stage id. The bool is false when no run
// has been recorded. An unreadable record counts as no record.
func (t *Tracker) Best(id int64) (types.PersonalBest, bool, error) {
	v, err := t.storage.Get(BestKey(id))
	if errors.Is(err, types.ErrKeyNotFound) {
		return types.PersonalBest{}, false, nil
	}
	if err != nil {
		return types.PersonalBest{}, false, fmt.Errorf("read personal best %d: %w", id, err)
	}
	var pb types.PersonalBest
	if err := json.Unmarshal(v, &pb); err != nil {
		t.logger.Warn("ignoring unreadable personal best", zap.Int64("stage", id), zap.Error(err))
		return types.PersonalBest{}, false, nil
	}
	return pb, true, nil
}

// Record marks stage id completed and stores the run as the personal best
// when it beats the previous one. Returns the stored best and whether this
// run replaced it.
func (t *Tracker) Record(id int64, moves int, elapsed time.Duration) (types.PersonalBest, bool, error) {
	if err := t.MarkCompleted(id); err != nil {
		return types.PersonalBest{}, false, err
	}

	run := types.PersonalBest{
		RunID:      newRunID(),
		Moves:      moves,
		Millis:     elapsed.Milliseconds(),
		RecordedAt: t.now().UTC(),
	}

	prev, ok, err := t.Best(id)
	if err != nil {
		return types.PersonalBest{}, false, err
	}
	if ok && !run.Beats(prev) {
		return prev, false, nil
	}

	data, err := json.Marshal(run)
	if err != nil {
		return types.PersonalBest{}, false, fmt.Errorf("encode personal best: %w", err)
	}
	if err := t.storage.Set(BestKey(id), data); err != nil {
		return types.PersonalBest{}, false, fmt.Errorf("write personal best %d: %w", id, err)
	}
	t.logger.Info("new personal best",
		zap.Int64("stage", id), zap.Int("moves", moves), zap.Duration("elapsed", elapsed))
	return run, true, nil
}

// Reset deletes every completion and personal best record. Returns the
// number of keys removed.
func (t *Tracker) Reset() (int, error) {
	removed := 0
	for _, prefix := range []string{types.PrefixCompleted, types.PrefixPersonalBest} {
		keys, err := t.storage.Keys(prefix)
		if err != nil {
			return removed, fmt.Errorf("list %s keys: %w", prefix, err)
		}
		for _, k := range keys {
			if err := t.storage.Delete(k); err != nil {
				return removed, fmt.Errorf("delete %s: %w", k, err)
			}
			removed++
		}
	}
	t.logger.Info("progress reset", zap.Int("removed", removed))
	return removed, nil
}

// newRunID generates a time-ordered run id.
func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
