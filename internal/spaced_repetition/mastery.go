package spaced_repetition

import "github.com/PixelCode01/syllabo/pkg/models"

// MasteryLevel is a derived, display-only classification of learning
// progress. It never feeds back into scheduling.
type MasteryLevel string

const (
	MasteryLearning     MasteryLevel = "Learning"
	MasteryBeginner     MasteryLevel = "Beginner"
	MasteryIntermediate MasteryLevel = "Intermediate"
	MasteryAdvanced     MasteryLevel = "Advanced"
	MasteryMastered     MasteryLevel = "Mastered"
)

// SuccessRate returns the fraction of reviews that succeeded, or 0 when
// the topic has never been reviewed.
func SuccessRate(t *models.Topic) float64 {
	if t.TotalReviews == 0 {
		return 0
	}
	return float64(t.TotalSuccesses) / float64(t.TotalReviews)
}

// Classify derives the mastery level from the ladder position and the
// historical success rate. Rules are evaluated top-down, first match wins.
func Classify(t *models.Topic) MasteryLevel {
	rate := SuccessRate(t)
	switch {
	case t.IntervalIndex >= 5 && rate >= 0.80:
		return MasteryMastered
	case t.IntervalIndex >= 3 && rate >= 0.70:
		return MasteryAdvanced
	case t.IntervalIndex >= 2 && rate >= 0.60:
		return MasteryIntermediate
	case t.IntervalIndex >= 1:
		return MasteryBeginner
	default:
		return MasteryLearning
	}
}
