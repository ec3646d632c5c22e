// Package spaced_repetition implements the review scheduling engine: a
// fixed Leitner interval ladder, deterministic success/failure
// transitions, due-item selection and mastery classification, backed by
// a pluggable topic store.
package spaced_repetition

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/PixelCode01/syllabo/internal/database"
	"github.com/PixelCode01/syllabo/pkg/models"
)

// MaxNameLength bounds topic names in characters.
const MaxNameLength = 200

// ErrInvalidName is returned when a topic name is empty after trimming
// or longer than MaxNameLength characters.
var ErrInvalidName = errors.New("topic name must be 1-200 characters")

// Engine owns the topic store and applies the ladder policy. Every
// mutation runs as one lock-load-mutate-save cycle so concurrent
// processes never interleave partial updates.
type Engine struct {
	store  database.Store
	ladder Ladder
	log    *zap.Logger
	now    func() time.Time
}

// NewEngine validates the ladder and wires the engine to a store.
func NewEngine(store database.Store, ladder Ladder, log *zap.Logger) (*Engine, error) {
	if err := ladder.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		store:  store,
		ladder: ladder,
		log:    log,
		now:    time.Now,
	}, nil
}

// Ladder returns the engine's interval ladder.
func (e *Engine) Ladder() Ladder {
	return e.ladder
}

// SetClock overrides the engine's time source. Used by tests.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// AddTopic creates a topic at the bottom of the ladder. It fails with
// database.ErrDuplicateTopic when the name is already taken
// (case-sensitive exact match).
func (e *Engine) AddTopic(ctx context.Context, name, description string) (*models.Topic, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return nil, ErrInvalidName
	}

	var created *models.Topic
	err := e.mutate(ctx, func(topics map[string]*models.Topic) error {
		if _, ok := topics[name]; ok {
			return database.ErrDuplicateTopic
		}
		t := NewTopic(name, description, e.now(), e.ladder)
		topics[name] = &t
		created = t.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.log.Info("topic added", zap.String("topic", name))
	return created, nil
}

// MarkReview records one review outcome for the named topic and returns
// the updated topic. Reviews are accepted whether or not the topic was
// due.
func (e *Engine) MarkReview(ctx context.Context, name string, outcome Outcome) (*models.Topic, error) {
	var updated *models.Topic
	err := e.mutate(ctx, func(topics map[string]*models.Topic) error {
		t, ok := topics[name]
		if !ok {
			return database.ErrTopicNotFound
		}
		next := Apply(*t, outcome, e.now(), e.ladder)
		topics[name] = &next
		updated = next.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.log.Info("review recorded",
		zap.String("topic", name),
		zap.Stringer("outcome", outcome),
		zap.Int("interval_index", updated.IntervalIndex),
		zap.Time("next_review_at", updated.NextReviewAt))
	return updated, nil
}

// RemoveTopic deletes a topic permanently.
func (e *Engine) RemoveTopic(ctx context.Context, name string) error {
	err := e.mutate(ctx, func(topics map[string]*models.Topic) error {
		if _, ok := topics[name]; !ok {
			return database.ErrTopicNotFound
		}
		delete(topics, name)
		return nil
	})
	if err != nil {
		return err
	}
	e.log.Info("topic removed", zap.String("topic", name))
	return nil
}

// GetTopic returns a single topic by exact name.
func (e *Engine) GetTopic(ctx context.Context, name string) (*models.Topic, error) {
	topics, err := e.store.Load()
	if err != nil {
		return nil, err
	}
	t, ok := topics[name]
	if !ok {
		return nil, database.ErrTopicNotFound
	}
	return t, nil
}

// ListAll returns every topic. No ordering is guaranteed to callers;
// the slice happens to follow the schedule so display output is stable.
func (e *Engine) ListAll(ctx context.Context) ([]*models.Topic, error) {
	topics, err := e.store.Load()
	if err != nil {
		return nil, err
	}
	all := make([]*models.Topic, 0, len(topics))
	for _, t := range topics {
		all = append(all, t)
	}
	sortBySchedule(all)
	return all, nil
}

// ListDue returns the topics due at the given time, most overdue first.
func (e *Engine) ListDue(ctx context.Context, now time.Time) ([]*models.Topic, error) {
	all, err := e.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return Due(all, now), nil
}

// ListUpcoming returns topics due within the next daysAhead days but not
// yet due, soonest first.
func (e *Engine) ListUpcoming(ctx context.Context, now time.Time, daysAhead int) ([]*models.Topic, error) {
	all, err := e.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return Upcoming(all, now, daysAhead), nil
}

// TopicStats returns the display snapshot for one topic.
func (e *Engine) TopicStats(ctx context.Context, name string, now time.Time) (*TopicStats, error) {
	t, err := e.GetTopic(ctx, name)
	if err != nil {
		return nil, err
	}
	stats := Stats(t, now, e.ladder)
	return &stats, nil
}

// Summary aggregates progress across the whole schedule.
func (e *Engine) Summary(ctx context.Context, now time.Time) (*Summary, error) {
	all, err := e.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	s := Summarize(all, now)
	return &s, nil
}

// mutate runs one read-modify-write cycle under the store lock. A
// failure anywhere leaves the persisted state untouched.
func (e *Engine) mutate(ctx context.Context, fn func(map[string]*models.Topic) error) error {
	release, err := e.store.Lock(ctx)
	if err != nil {
		return err
	}
	defer release()

	topics, err := e.store.Load()
	if err != nil {
		return err
	}
	if err := fn(topics); err != nil {
		return err
	}
	return e.store.Save(topics)
}
