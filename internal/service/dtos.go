package service

// Question labels one of the four rating questions of the feedback survey.
type Question string

const (
	Experience    Question = "Experience"
	Relevancy     Question = "Relevancy"
	Comprehension Question = "Comprehension"
	Usefulness    Question = "Usefulness"
)

// Questions lists the survey questions in report order.
var Questions = []Question{Experience, Relevancy, Comprehension, Usefulness}

// QuestionColumns holds the source column header of each question.
type QuestionColumns struct {
	Experience    string
	Relevancy     string
	Comprehension string
	Usefulness    string
}

// Header returns the column header configured for q.
func (c QuestionColumns) Header(q Question) string {
	switch q {
	case Experience:
		return c.Experience
	case Relevancy:
		return c.Relevancy
	case Comprehension:
		return c.Comprehension
	case Usefulness:
		return c.Usefulness
	}
	return ""
}

// Headers returns the configured headers in report order.
func (c QuestionColumns) Headers() []string {
	out := make([]string, len(Questions))
	for i, q := range Questions {
		out[i] = c.Header(q)
	}
	return out
}

type QuestionReport struct {
	Question Question
	Header   string
	Tally    RatingTally
	// Average is the unrounded weighted mean; Rounded is the presented value.
	Average float64
	Rounded float64
}

type FeedbackReport struct {
	Source    string
	Questions []QuestionReport
}

// Question returns the report for q.
func (r FeedbackReport) Question(q Question) (QuestionReport, bool) {
	for _, qr := range r.Questions {
		if qr.Question == q {
			return qr, true
		}
	}
	return QuestionReport{}, false
}
