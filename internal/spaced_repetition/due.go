package spaced_repetition

import (
	"sort"
	"time"

	"github.com/PixelCode01/syllabo/pkg/models"
)

// Due returns the topics whose next review is at or before now, most
// overdue first. Topics not yet due are excluded entirely.
func Due(topics []*models.Topic, now time.Time) []*models.Topic {
	var due []*models.Topic
	for _, t := range topics {
		if !t.NextReviewAt.After(now) {
			due = append(due, t)
		}
	}
	sortBySchedule(due)
	return due
}

// Upcoming returns topics due strictly after now but within the next
// daysAhead days, soonest first.
func Upcoming(topics []*models.Topic, now time.Time, daysAhead int) []*models.Topic {
	cutoff := now.Add(time.Duration(daysAhead) * 24 * time.Hour)
	var upcoming []*models.Topic
	for _, t := range topics {
		if t.NextReviewAt.After(now) && !t.NextReviewAt.After(cutoff) {
			upcoming = append(upcoming, t)
		}
	}
	sortBySchedule(upcoming)
	return upcoming
}

// sortBySchedule orders by ascending next review time, which for due
// items means most overdue first. Names break ties so the order is
// deterministic.
func sortBySchedule(topics []*models.Topic) {
	sort.Slice(topics, func(i, j int) bool {
		if topics[i].NextReviewAt.Equal(topics[j].NextReviewAt) {
			return topics[i].Name < topics[j].Name
		}
		return topics[i].NextReviewAt.Before(topics[j].NextReviewAt)
	})
}
