package spaced_repetition

import (
	"encoding"
	"fmt"
	"time"

	"github.com/PixelCode01/syllabo/pkg/models"
)

// Outcome is the result of a single review: the learner either recalled
// the topic or did not.
type Outcome int

const (
	Failure Outcome = iota
	Success
)

var (
	_ fmt.Stringer             = Outcome(0)
	_ encoding.TextMarshaler   = Outcome(0)
	_ encoding.TextUnmarshaler = (*Outcome)(nil)
)

// String returns "success" or "failure".
func (o Outcome) String() string {
	if o == Success {
		return "success"
	}
	return "failure"
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "success":
		*o = Success
	case "failure":
		*o = Failure
	default:
		return fmt.Errorf("unknown review outcome: %q", text)
	}
	return nil
}

// Apply records one review outcome on a topic and returns the updated
// copy. It is a pure function of (topic, outcome, now, ladder).
//
// Success climbs one rung on the ladder, saturating at the top; failure
// drops one rung, saturating at the bottom, and resets the streak. The
// review is accepted regardless of whether the topic was due, so ad-hoc
// reviews count like any other.
func Apply(t models.Topic, outcome Outcome, now time.Time, ladder Ladder) models.Topic {
	now = now.UTC()

	if outcome == Success {
		t.IntervalIndex = ladder.Clamp(t.IntervalIndex + 1)
		t.SuccessStreak++
		t.TotalSuccesses++
	} else {
		t.IntervalIndex = ladder.Clamp(t.IntervalIndex - 1)
		t.SuccessStreak = 0
	}

	t.ReviewCount++
	t.TotalReviews++
	t.LastReviewAt = now
	t.NextReviewAt = now.Add(ladder.Gap(t.IntervalIndex))

	return t
}

// NewTopic creates a topic at the bottom of the ladder with the first
// review scheduled one gap away from creation.
func NewTopic(name, description string, now time.Time, ladder Ladder) models.Topic {
	now = now.UTC()
	return models.Topic{
		Name:         name,
		Description:  description,
		CreatedAt:    now,
		LastReviewAt: now,
		NextReviewAt: now.Add(ladder.Gap(0)),
	}
}
