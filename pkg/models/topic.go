package models

import "time"

// Topic is a study topic tracked by the spaced repetition scheduler.
// Name is the unique identifier (case-sensitive). All timestamps are UTC.
type Topic struct {
	Name           string    `json:"name" db:"name"`
	Description    string    `json:"description" db:"description"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	LastReviewAt   time.Time `json:"last_review_at" db:"last_review_at"`
	NextReviewAt   time.Time `json:"next_review_at" db:"next_review_at"`
	IntervalIndex  int       `json:"interval_index" db:"interval_index"`   // Position on the interval ladder
	ReviewCount    int       `json:"review_count" db:"review_count"`       // Reviews recorded, success or failure
	SuccessStreak  int       `json:"success_streak" db:"success_streak"`   // Consecutive successes since last failure
	TotalSuccesses int       `json:"total_successes" db:"total_successes"`
	TotalReviews   int       `json:"total_reviews" db:"total_reviews"`
}

// Clone returns a copy of the topic so callers never hold a reference
// into the store's collection.
func (t *Topic) Clone() *Topic {
	c := *t
	return &c
}
