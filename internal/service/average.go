package service

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrDivisionUndefined = errors.New("average undefined: no responses tallied")
	ErrTypeMismatch      = errors.New("rating is not numeric")
)

// Average returns the occurrence-weighted mean of the tally.
// Every rating must be numeric; blank and text ratings fail with ErrTypeMismatch.
func Average(t RatingTally) (float64, error) {
	total := t.Total()
	if total == 0 {
		return 0, ErrDivisionUndefined
	}

	var sum float64
	for _, r := range t.Ratings() {
		if !r.numeric {
			return 0, fmt.Errorf("%w: %q", ErrTypeMismatch, r.text)
		}
		sum += r.value * float64(t[r])
	}
	return sum / float64(total), nil
}

// RoundAverage rounds an average to two decimals for presentation. Halves round away
// from zero, so 4.125 becomes 4.13; Python's round-half-even would give 4.12.
func RoundAverage(avg float64) float64 {
	return math.Round(avg*100) / 100
}
