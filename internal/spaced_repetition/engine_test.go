package spaced_repetition

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/PixelCode01/syllabo/internal/database"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	ladder := DefaultLadder()
	store, err := database.NewJSONStore(
		filepath.Join(t.TempDir(), "spaced_repetition.json"),
		ladder, time.Second, zap.NewNop())
	require.NoError(t, err)

	engine, err := NewEngine(store, ladder, zap.NewNop())
	require.NoError(t, err)
	return engine
}

// fixedClock pins the engine to a settable instant.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func TestEngineAddTopic(t *testing.T) {
	engine := newTestEngine(t)
	clock := &fixedClock{now: day(0)}
	engine.SetClock(clock.Now)
	ctx := context.Background()

	topic, err := engine.AddTopic(ctx, "Calculus", "limits")
	require.NoError(t, err)
	assert.Equal(t, 0, topic.IntervalIndex)
	assert.Equal(t, day(1), topic.NextReviewAt)

	// Duplicate names are rejected case-sensitively.
	_, err = engine.AddTopic(ctx, "Calculus", "")
	assert.ErrorIs(t, err, database.ErrDuplicateTopic)

	_, err = engine.AddTopic(ctx, "calculus", "")
	assert.NoError(t, err, "different case is a different topic")
}

func TestEngineAddTopicValidatesName(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.AddTopic(ctx, "   ", "")
	assert.ErrorIs(t, err, ErrInvalidName)

	long := make([]rune, MaxNameLength+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err = engine.AddTopic(ctx, string(long), "")
	assert.ErrorIs(t, err, ErrInvalidName)

	// Leading and trailing space is trimmed, not rejected.
	topic, err := engine.AddTopic(ctx, "  Algebra  ", "")
	require.NoError(t, err)
	assert.Equal(t, "Algebra", topic.Name)
}

func TestEngineMarkReviewLifecycle(t *testing.T) {
	engine := newTestEngine(t)
	clock := &fixedClock{now: day(0)}
	engine.SetClock(clock.Now)
	ctx := context.Background()

	_, err := engine.AddTopic(ctx, "Calculus", "")
	require.NoError(t, err)

	clock.now = day(1)
	topic, err := engine.MarkReview(ctx, "Calculus", Success)
	require.NoError(t, err)
	assert.Equal(t, 1, topic.IntervalIndex)
	assert.Equal(t, day(4), topic.NextReviewAt)

	clock.now = day(4)
	topic, err = engine.MarkReview(ctx, "Calculus", Success)
	require.NoError(t, err)
	assert.Equal(t, 2, topic.IntervalIndex)
	assert.Equal(t, day(9), topic.NextReviewAt)

	clock.now = day(9)
	topic, err = engine.MarkReview(ctx, "Calculus", Failure)
	require.NoError(t, err)
	assert.Equal(t, 1, topic.IntervalIndex)
	assert.Equal(t, day(12), topic.NextReviewAt)
	assert.Zero(t, topic.SuccessStreak)

	// The mutation is durable: a fresh read sees the same state.
	got, err := engine.GetTopic(ctx, "Calculus")
	require.NoError(t, err)
	assert.Equal(t, topic, got)

	_, err = engine.MarkReview(ctx, "Nope", Success)
	assert.ErrorIs(t, err, database.ErrTopicNotFound)
}

func TestEngineRemoveTopic(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.AddTopic(ctx, "Calculus", "")
	require.NoError(t, err)

	require.NoError(t, engine.RemoveTopic(ctx, "Calculus"))

	_, err = engine.GetTopic(ctx, "Calculus")
	assert.ErrorIs(t, err, database.ErrTopicNotFound)

	assert.ErrorIs(t, engine.RemoveTopic(ctx, "Calculus"), database.ErrTopicNotFound)
}

func TestEngineListDue(t *testing.T) {
	engine := newTestEngine(t)
	clock := &fixedClock{now: day(0)}
	engine.SetClock(clock.Now)
	ctx := context.Background()

	_, err := engine.AddTopic(ctx, "Calculus", "")
	require.NoError(t, err)
	_, err = engine.AddTopic(ctx, "Algebra", "")
	require.NoError(t, err)

	clock.now = day(1)
	_, err = engine.MarkReview(ctx, "Algebra", Success) // next due day 4
	require.NoError(t, err)

	due, err := engine.ListDue(ctx, day(2))
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "Calculus", due[0].Name)

	due, err = engine.ListDue(ctx, day(5))
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, "Calculus", due[0].Name, "most overdue first")

	upcoming, err := engine.ListUpcoming(ctx, day(2), 7)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "Algebra", upcoming[0].Name)
}

func TestEngineSummaryAndStats(t *testing.T) {
	engine := newTestEngine(t)
	clock := &fixedClock{now: day(0)}
	engine.SetClock(clock.Now)
	ctx := context.Background()

	_, err := engine.AddTopic(ctx, "Calculus", "")
	require.NoError(t, err)

	clock.now = day(1)
	_, err = engine.MarkReview(ctx, "Calculus", Success)
	require.NoError(t, err)

	stats, err := engine.TopicStats(ctx, "Calculus", day(2))
	require.NoError(t, err)
	assert.Equal(t, MasteryBeginner, stats.Mastery)
	assert.InDelta(t, 100.0, stats.SuccessRate, 0.01)

	summary, err := engine.Summary(ctx, day(2))
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalTopics)
	assert.Zero(t, summary.DueNow)

	_, err = engine.TopicStats(ctx, "Nope", day(2))
	assert.ErrorIs(t, err, database.ErrTopicNotFound)
}

func TestEngineRejectsInvalidLadder(t *testing.T) {
	store, err := database.NewJSONStore(
		filepath.Join(t.TempDir(), "s.json"), []int{1}, time.Second, zap.NewNop())
	require.NoError(t, err)

	_, err = NewEngine(store, Ladder{5, 3}, zap.NewNop())
	assert.Error(t, err)
}
