package service

import (
	"cmp"
	"math"
	"strconv"
	"strings"
)

// Rating is a normalized survey cell used as a tally key. Numeric cells are
// canonicalized, so "5", " 5 " and "5.0" are the same rating; empty cells are
// the blank rating; anything else is kept as trimmed text.
type Rating struct {
	text    string
	value   float64
	numeric bool
}

// ParseRating normalizes a raw cell value.
func ParseRating(raw string) Rating {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Rating{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Rating{text: s}
	}
	return NumericRating(v)
}

// NumericRating returns the rating for v.
func NumericRating(v float64) Rating {
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return Rating{text: strconv.FormatFloat(v, 'f', -1, 64), value: v, numeric: true}
}

func (r Rating) String() string { return r.text }

func (r Rating) IsNumeric() bool { return r.numeric }

func (r Rating) IsBlank() bool { return !r.numeric && r.text == "" }

// Value is the numeric value; zero for non-numeric ratings.
func (r Rating) Value() float64 { return r.value }

// compareRatings orders numeric ratings by value, then the blank rating, then text.
func compareRatings(a, b Rating) int {
	switch {
	case a.numeric && b.numeric:
		return cmp.Compare(a.value, b.value)
	case a.numeric:
		return -1
	case b.numeric:
		return 1
	}
	return strings.Compare(a.text, b.text)
}
