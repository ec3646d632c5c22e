package spaced_repetition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PixelCode01/syllabo/pkg/models"
)

var testBase = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// day converts a days-since-base offset into a timestamp.
func day(n int) time.Time {
	return testBase.Add(time.Duration(n) * 24 * time.Hour)
}

func requireInvariants(t *testing.T, topic models.Topic, ladder Ladder) {
	t.Helper()
	require.GreaterOrEqual(t, topic.IntervalIndex, 0)
	require.LessOrEqual(t, topic.IntervalIndex, ladder.Top())
	require.Equal(t, topic.LastReviewAt.Add(ladder.Gap(topic.IntervalIndex)), topic.NextReviewAt)
	require.LessOrEqual(t, topic.TotalSuccesses, topic.TotalReviews)
	require.Equal(t, topic.TotalReviews, topic.ReviewCount)
}

func TestNewTopic(t *testing.T) {
	ladder := DefaultLadder()
	topic := NewTopic("Calculus", "limits and derivatives", day(0), ladder)

	assert.Equal(t, "Calculus", topic.Name)
	assert.Equal(t, 0, topic.IntervalIndex)
	assert.Equal(t, day(0), topic.CreatedAt)
	assert.Equal(t, day(0), topic.LastReviewAt)
	assert.Equal(t, day(1), topic.NextReviewAt)
	assert.Zero(t, topic.ReviewCount)
	assert.Zero(t, topic.SuccessStreak)
	requireInvariants(t, topic, ladder)
}

func TestApplySuccessClimbsLadder(t *testing.T) {
	ladder := DefaultLadder()
	topic := NewTopic("Calculus", "", day(0), ladder)

	topic = Apply(topic, Success, day(1), ladder)
	assert.Equal(t, 1, topic.IntervalIndex)
	assert.Equal(t, day(4), topic.NextReviewAt) // 1 + 3
	assert.Equal(t, 1, topic.SuccessStreak)
	requireInvariants(t, topic, ladder)

	topic = Apply(topic, Success, day(4), ladder)
	assert.Equal(t, 2, topic.IntervalIndex)
	assert.Equal(t, day(9), topic.NextReviewAt) // 4 + 5
	assert.Equal(t, 2, topic.SuccessStreak)
	requireInvariants(t, topic, ladder)
}

func TestApplyFailureDropsLadderAndResetsStreak(t *testing.T) {
	ladder := DefaultLadder()
	topic := NewTopic("Calculus", "", day(0), ladder)
	topic = Apply(topic, Success, day(1), ladder)
	topic = Apply(topic, Success, day(4), ladder)

	topic = Apply(topic, Failure, day(9), ladder)
	assert.Equal(t, 1, topic.IntervalIndex)
	assert.Equal(t, day(12), topic.NextReviewAt) // 9 + 3
	assert.Zero(t, topic.SuccessStreak)
	assert.Equal(t, 3, topic.ReviewCount)
	assert.Equal(t, 2, topic.TotalSuccesses)
	requireInvariants(t, topic, ladder)
}

func TestApplySaturatesAtTop(t *testing.T) {
	ladder := DefaultLadder()
	topic := NewTopic("Calculus", "", day(0), ladder)

	now := day(0)
	for i := 0; i < 20; i++ {
		now = now.Add(24 * time.Hour)
		topic = Apply(topic, Success, now, ladder)
		requireInvariants(t, topic, ladder)
	}
	assert.Equal(t, ladder.Top(), topic.IntervalIndex)
	assert.Equal(t, 20, topic.SuccessStreak)

	// A mastered topic stays reviewable and stays at the top rung.
	topic = Apply(topic, Success, now.Add(24*time.Hour), ladder)
	assert.Equal(t, ladder.Top(), topic.IntervalIndex)
}

func TestApplySaturatesAtBottom(t *testing.T) {
	ladder := DefaultLadder()
	topic := NewTopic("Calculus", "", day(0), ladder)

	now := day(0)
	for i := 0; i < 5; i++ {
		now = now.Add(24 * time.Hour)
		topic = Apply(topic, Failure, now, ladder)
		requireInvariants(t, topic, ladder)
	}
	assert.Equal(t, 0, topic.IntervalIndex)
	assert.Zero(t, topic.SuccessStreak)
	assert.Equal(t, 5, topic.TotalReviews)
	assert.Zero(t, topic.TotalSuccesses)
}

func TestApplyMonotonicity(t *testing.T) {
	ladder := DefaultLadder()
	for start := 0; start <= ladder.Top(); start++ {
		topic := NewTopic("X", "", day(0), ladder)
		topic.IntervalIndex = start
		topic.NextReviewAt = topic.LastReviewAt.Add(ladder.Gap(start))

		up := Apply(topic, Success, day(1), ladder)
		assert.GreaterOrEqual(t, up.IntervalIndex, start, "success must never decrease the index")

		down := Apply(topic, Failure, day(1), ladder)
		assert.LessOrEqual(t, down.IntervalIndex, start, "failure must never increase the index")
	}
}

func TestApplyAcceptsEarlyReview(t *testing.T) {
	ladder := DefaultLadder()
	topic := NewTopic("Calculus", "", day(0), ladder)

	// Reviewed well before next_review_at; still counts.
	early := day(0).Add(time.Hour)
	topic = Apply(topic, Success, early, ladder)
	assert.Equal(t, 1, topic.ReviewCount)
	assert.Equal(t, early, topic.LastReviewAt)
	requireInvariants(t, topic, ladder)
}

func TestOutcomeText(t *testing.T) {
	assert.Equal(t, "success", Success.String())
	assert.Equal(t, "failure", Failure.String())

	var o Outcome
	require.NoError(t, o.UnmarshalText([]byte("success")))
	assert.Equal(t, Success, o)
	require.NoError(t, o.UnmarshalText([]byte("failure")))
	assert.Equal(t, Failure, o)
	assert.Error(t, o.UnmarshalText([]byte("meh")))
}

func TestLadderValidate(t *testing.T) {
	tests := []struct {
		name    string
		ladder  Ladder
		wantErr bool
	}{
		{"default", DefaultLadder(), false},
		{"empty", Ladder{}, true},
		{"not increasing", Ladder{1, 3, 3}, true},
		{"negative", Ladder{-1, 3}, true},
		{"single rung", Ladder{2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ladder.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
