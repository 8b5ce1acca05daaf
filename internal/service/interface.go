package service

import (
	"context"

	"github.com/godilite/feedback-report/internal/repository/models"
)

// TableLoader defines the data access the report service needs from a survey source.
type TableLoader interface {
	Load(ctx context.Context, headers []string) (*models.Table, error)
	Fingerprint() (string, error)
}

// Recorder receives report outcomes, typically for metrics.
type Recorder interface {
	QuestionTallied(question string, responses int)
	ReportBuilt()
	ReportFailed(reason string)
}

type nopRecorder struct{}

func (nopRecorder) QuestionTallied(string, int) {}
func (nopRecorder) ReportBuilt()                {}
func (nopRecorder) ReportFailed(string)         {}
