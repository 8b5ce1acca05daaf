package service

import (
	"maps"
	"slices"
)

// RatingTally counts occurrences of each distinct rating in a question column.
type RatingTally map[Rating]int

// Tally counts the normalized values in a single pass. Blank cells are
// counted under the blank rating rather than skipped.
func Tally(values []string) RatingTally {
	tally := make(RatingTally)
	for _, v := range values {
		tally[ParseRating(v)]++
	}
	return tally
}

// Total is the number of responses counted.
func (t RatingTally) Total() int {
	total := 0
	for _, c := range t {
		total += c
	}
	return total
}

// Ratings returns the distinct ratings in presentation order.
func (t RatingTally) Ratings() []Rating {
	return slices.SortedFunc(maps.Keys(t), compareRatings)
}
