package spaced_repetition

import (
	"fmt"
	"time"
)

// Ladder is the ordered sequence of review gaps in days, indexed from
// least practiced (0) to most practiced (len-1). Gaps must be strictly
// increasing.
type Ladder []int

// DefaultLadder returns the standard review intervals in days.
func DefaultLadder() Ladder {
	return Ladder{1, 3, 5, 11, 25, 44, 88}
}

// Validate checks that the ladder is usable: non-empty, positive gaps,
// strictly increasing.
func (l Ladder) Validate() error {
	if len(l) == 0 {
		return fmt.Errorf("ladder must not be empty")
	}
	prev := 0
	for i, days := range l {
		if days <= prev {
			return fmt.Errorf("ladder must be strictly increasing: interval %d at index %d", days, i)
		}
		prev = days
	}
	return nil
}

// Gap returns the review gap at the given index as a duration.
// The index is clamped into range so that a corrupt record can never
// cause an out-of-bounds read.
func (l Ladder) Gap(index int) time.Duration {
	return time.Duration(l.Days(l.Clamp(index))) * 24 * time.Hour
}

// Days returns the review gap at the given index in days.
func (l Ladder) Days(index int) int {
	return l[l.Clamp(index)]
}

// Clamp forces an index into the valid range [0, len-1].
func (l Ladder) Clamp(index int) int {
	if index < 0 {
		return 0
	}
	if index > len(l)-1 {
		return len(l) - 1
	}
	return index
}

// Top returns the highest ladder index.
func (l Ladder) Top() int {
	return len(l) - 1
}
