package grpc

import (
	"github.com/godilite/feedback-report/internal/service"
	"google.golang.org/protobuf/types/known/structpb"
)

// ReportSnapshot is the cacheable, wire-ready form of a FeedbackReport.
type ReportSnapshot struct {
	Source    string             `json:"source"`
	Questions []QuestionSnapshot `json:"questions"`
}

type QuestionSnapshot struct {
	Label   string        `json:"label"`
	Header  string        `json:"header"`
	Average float64       `json:"average"`
	Total   int           `json:"total"`
	Tally   []RatingCount `json:"tally"`
}

type RatingCount struct {
	Rating string `json:"rating"`
	Count  int    `json:"count"`
}

func NewReportSnapshot(report service.FeedbackReport) ReportSnapshot {
	snap := ReportSnapshot{
		Source:    report.Source,
		Questions: make([]QuestionSnapshot, len(report.Questions)),
	}
	for i, q := range report.Questions {
		ratings := q.Tally.Ratings()
		tally := make([]RatingCount, len(ratings))
		for j, r := range ratings {
			tally[j] = RatingCount{Rating: r.String(), Count: q.Tally[r]}
		}
		snap.Questions[i] = QuestionSnapshot{
			Label:   string(q.Question),
			Header:  q.Header,
			Average: q.Rounded,
			Total:   q.Tally.Total(),
			Tally:   tally,
		}
	}
	return snap
}

// ToStruct converts the snapshot into the GetReport response message.
func (s ReportSnapshot) ToStruct() (*structpb.Struct, error) {
	questions := make([]any, len(s.Questions))
	for i, q := range s.Questions {
		tally := make([]any, len(q.Tally))
		for j, rc := range q.Tally {
			tally[j] = map[string]any{"rating": rc.Rating, "count": rc.Count}
		}
		questions[i] = map[string]any{
			"label":   q.Label,
			"header":  q.Header,
			"average": q.Average,
			"total":   q.Total,
			"tally":   tally,
		}
	}
	return structpb.NewStruct(map[string]any{
		"source":    s.Source,
		"questions": questions,
	})
}
