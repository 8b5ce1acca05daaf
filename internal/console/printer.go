// Package console renders feedback reports for a human reading a terminal.
package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/godilite/feedback-report/internal/service"
)

// FormatTallies renders the report as a mapping from question label to its tally,
// e.g. {Experience: {4: 1, 5: 2}, Relevancy: {3: 4}}. Text ratings are quoted.
func FormatTallies(report service.FeedbackReport) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, q := range report.Questions {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(string(q.Question))
		b.WriteString(": {")
		for j, r := range q.Tally.Ratings() {
			if j > 0 {
				b.WriteString(", ")
			}
			if r.IsNumeric() {
				b.WriteString(r.String())
			} else {
				b.WriteString(strconv.Quote(r.String()))
			}
			b.WriteString(": ")
			b.WriteString(strconv.Itoa(q.Tally[r]))
		}
		b.WriteByte('}')
	}
	b.WriteByte('}')
	return b.String()
}

// Print writes the tally mapping followed by one average line per question.
func Print(w io.Writer, report service.FeedbackReport) error {
	if _, err := fmt.Fprintln(w, FormatTallies(report)); err != nil {
		return err
	}
	for _, q := range report.Questions {
		if _, err := fmt.Fprintf(w, "Average %s Rating:\t%.2f\n", q.Question, q.Rounded); err != nil {
			return err
		}
	}
	return nil
}
