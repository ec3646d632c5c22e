package spaced_repetition

import (
	"math"
	"time"

	"github.com/PixelCode01/syllabo/pkg/models"
)

// TopicStats is a display-oriented snapshot of one topic's progress.
type TopicStats struct {
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	SuccessRate     float64      `json:"success_rate"` // Percentage, one decimal
	SuccessStreak   int          `json:"success_streak"`
	TotalReviews    int          `json:"total_reviews"`
	IntervalDays    int          `json:"current_interval"`
	DaysUntilReview int          `json:"days_until_review"` // Floored at 0 for overdue topics
	NextReviewAt    time.Time    `json:"next_review_at"`
	Mastery         MasteryLevel `json:"mastery_level"`
}

// Summary aggregates the whole schedule.
type Summary struct {
	TotalTopics        int     `json:"total_topics"`
	DueNow             int     `json:"due_now"`
	DueToday           int     `json:"due_today"`
	MasteredTopics     int     `json:"mastered_topics"`
	AverageSuccessRate float64 `json:"average_success_rate"` // Percentage, one decimal
}

// Stats builds the per-topic snapshot for display.
func Stats(t *models.Topic, now time.Time, ladder Ladder) TopicStats {
	daysUntil := int(t.NextReviewAt.Sub(now).Hours() / 24)
	if daysUntil < 0 {
		daysUntil = 0
	}
	return TopicStats{
		Name:            t.Name,
		Description:     t.Description,
		SuccessRate:     roundPercent(SuccessRate(t)),
		SuccessStreak:   t.SuccessStreak,
		TotalReviews:    t.TotalReviews,
		IntervalDays:    ladder.Days(t.IntervalIndex),
		DaysUntilReview: daysUntil,
		NextReviewAt:    t.NextReviewAt,
		Mastery:         Classify(t),
	}
}

// Summarize aggregates study progress across all topics. DueToday counts
// topics due before the end of the local calendar day.
func Summarize(topics []*models.Topic, now time.Time) Summary {
	s := Summary{TotalTopics: len(topics)}
	if len(topics) == 0 {
		return s
	}

	year, month, day := now.Date()
	endOfDay := time.Date(year, month, day, 23, 59, 59, 0, now.Location())

	var totalReviews, totalSuccesses int
	for _, t := range topics {
		if !t.NextReviewAt.After(now) {
			s.DueNow++
		}
		if !t.NextReviewAt.After(endOfDay) {
			s.DueToday++
		}
		if Classify(t) == MasteryMastered {
			s.MasteredTopics++
		}
		totalReviews += t.TotalReviews
		totalSuccesses += t.TotalSuccesses
	}

	if totalReviews > 0 {
		s.AverageSuccessRate = roundPercent(float64(totalSuccesses) / float64(totalReviews))
	}
	return s
}

func roundPercent(rate float64) float64 {
	return math.Round(rate*1000) / 10
}
