package database

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/PixelCode01/syllabo/pkg/models"
)

// Store is the durable collection of topics keyed by name.
//
// Callers performing a read-modify-write cycle must hold the lock for
// the whole cycle: Lock, Load, mutate, Save, release. Plain reads may
// call Load without the lock because Save replaces the backing state
// atomically.
type Store interface {
	// Lock acquires an exclusive cross-process lock. It fails with a
	// PersistenceError when the lock cannot be acquired before the
	// context deadline. The returned release function is safe to call
	// on every exit path.
	Lock(ctx context.Context) (release func(), err error)

	// Load reads the persisted collection. A missing store is an empty
	// collection, not an error. Records that violate invariants are
	// clamped or skipped with a logged warning.
	Load() (map[string]*models.Topic, error)

	// Save replaces the whole collection atomically. On failure the
	// previously persisted state is intact.
	Save(topics map[string]*models.Topic) error

	Close() error
}

// coerceTopic forces one loaded record into a valid state, per the
// invalid-state policy: clamp interval_index into range, recompute
// next_review_at from last_review_at, reconcile counters. It returns
// false when the record is missing required fields and must be skipped.
func coerceTopic(name string, t *models.Topic, intervals []int, log *zap.Logger) bool {
	if strings.TrimSpace(name) == "" || t.CreatedAt.IsZero() {
		log.Warn("skipping unusable topic record",
			zap.String("topic", name),
			zap.Error(ErrInvalidState))
		return false
	}
	t.Name = name

	if t.LastReviewAt.IsZero() {
		log.Warn("topic record has no last review time, using created_at",
			zap.String("topic", name))
		t.LastReviewAt = t.CreatedAt
	}

	if t.IntervalIndex < 0 || t.IntervalIndex >= len(intervals) {
		log.Warn("clamping out-of-range interval index",
			zap.String("topic", name),
			zap.Int("interval_index", t.IntervalIndex),
			zap.Error(ErrInvalidState))
		if t.IntervalIndex < 0 {
			t.IntervalIndex = 0
		} else {
			t.IntervalIndex = len(intervals) - 1
		}
	}

	want := t.LastReviewAt.Add(time.Duration(intervals[t.IntervalIndex]) * 24 * time.Hour)
	if !t.NextReviewAt.Equal(want) {
		if !t.NextReviewAt.IsZero() {
			log.Warn("recomputing inconsistent next review time",
				zap.String("topic", name),
				zap.Time("stored", t.NextReviewAt),
				zap.Time("recomputed", want),
				zap.Error(ErrInvalidState))
		}
		t.NextReviewAt = want
	}

	if t.TotalSuccesses < 0 || t.TotalReviews < 0 || t.SuccessStreak < 0 {
		log.Warn("resetting negative counters", zap.String("topic", name), zap.Error(ErrInvalidState))
		t.TotalSuccesses = max(t.TotalSuccesses, 0)
		t.TotalReviews = max(t.TotalReviews, 0)
		t.SuccessStreak = max(t.SuccessStreak, 0)
	}
	if t.TotalSuccesses > t.TotalReviews {
		log.Warn("clamping success count to review count", zap.String("topic", name), zap.Error(ErrInvalidState))
		t.TotalSuccesses = t.TotalReviews
	}
	if t.ReviewCount != t.TotalReviews {
		t.ReviewCount = t.TotalReviews
	}

	return true
}
