package spaced_repetition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/PixelCode01/syllabo/pkg/models"
)

func TestStatsSnapshot(t *testing.T) {
	ladder := DefaultLadder()
	topic := NewTopic("Calculus", "limits", day(0), ladder)
	topic = Apply(topic, Success, day(1), ladder)
	topic = Apply(topic, Success, day(4), ladder)
	topic = Apply(topic, Failure, day(9), ladder)

	s := Stats(&topic, day(10), ladder)
	assert.Equal(t, "Calculus", s.Name)
	assert.Equal(t, "limits", s.Description)
	assert.InDelta(t, 66.7, s.SuccessRate, 0.01)
	assert.Zero(t, s.SuccessStreak)
	assert.Equal(t, 3, s.TotalReviews)
	assert.Equal(t, 3, s.IntervalDays)
	assert.Equal(t, 2, s.DaysUntilReview) // due day 12, asked at day 10
	assert.Equal(t, MasteryBeginner, s.Mastery)
}

func TestStatsFloorsOverdueAtZero(t *testing.T) {
	ladder := DefaultLadder()
	topic := NewTopic("Old", "", day(0), ladder)
	s := Stats(&topic, day(30), ladder)
	assert.Zero(t, s.DaysUntilReview)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, day(0))
	assert.Zero(t, s.TotalTopics)
	assert.Zero(t, s.DueNow)
	assert.Zero(t, s.AverageSuccessRate)
}

func TestSummarize(t *testing.T) {
	now := time.Date(2024, 1, 11, 10, 0, 0, 0, time.UTC)
	mastered := &models.Topic{
		Name:           "done",
		IntervalIndex:  5,
		TotalSuccesses: 9,
		TotalReviews:   10,
		NextReviewAt:   now.Add(40 * 24 * time.Hour),
	}
	dueNow := &models.Topic{
		Name:           "urgent",
		TotalSuccesses: 1,
		TotalReviews:   2,
		NextReviewAt:   now.Add(-time.Hour),
	}
	dueTonight := &models.Topic{
		Name:         "tonight",
		NextReviewAt: now.Add(5 * time.Hour), // before end of day
	}

	s := Summarize([]*models.Topic{mastered, dueNow, dueTonight}, now)
	assert.Equal(t, 3, s.TotalTopics)
	assert.Equal(t, 1, s.DueNow)
	assert.Equal(t, 2, s.DueToday)
	assert.Equal(t, 1, s.MasteredTopics)
	assert.InDelta(t, 83.3, s.AverageSuccessRate, 0.01) // 10 of 12
}
