package console

import (
	"bytes"
	"errors"
	"testing"

	"github.com/godilite/feedback-report/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func question(q service.Question, values ...string) service.QuestionReport {
	tally := service.Tally(values)
	avg, _ := service.Average(tally)
	return service.QuestionReport{
		Question: q,
		Tally:    tally,
		Average:  avg,
		Rounded:  service.RoundAverage(avg),
	}
}

func sampleReport() service.FeedbackReport {
	return service.FeedbackReport{
		Source: "feedback.xlsx[Sheet1]",
		Questions: []service.QuestionReport{
			question(service.Experience, "5", "5", "4"),
			question(service.Relevancy, "3", "3", "3", "3"),
			question(service.Comprehension, "4", "5", "10"),
			question(service.Usefulness, "2"),
		},
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Print(&buf, sampleReport()))

	expected := "{Experience: {4: 1, 5: 2}, Relevancy: {3: 4}, Comprehension: {4: 1, 5: 1, 10: 1}, Usefulness: {2: 1}}\n" +
		"Average Experience Rating:\t4.67\n" +
		"Average Relevancy Rating:\t3.00\n" +
		"Average Comprehension Rating:\t6.33\n" +
		"Average Usefulness Rating:\t2.00\n"
	assert.Equal(t, expected, buf.String())
}

func TestFormatTallies_NonNumericRatings(t *testing.T) {
	report := service.FeedbackReport{
		Questions: []service.QuestionReport{
			{Question: service.Experience, Tally: service.Tally([]string{"5", "", "great"})},
		},
	}

	assert.Equal(t, `{Experience: {5: 1, "": 1, "great": 1}}`, FormatTallies(report))
}

func TestFormatTallies_Empty(t *testing.T) {
	assert.Equal(t, "{}", FormatTallies(service.FeedbackReport{}))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestPrint_WriteError(t *testing.T) {
	err := Print(failingWriter{}, sampleReport())
	assert.EqualError(t, err, "closed pipe")
}
