package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/godilite/feedback-report/internal/repository/models"
	"go.uber.org/zap"
)

// Failure reasons reported to the Recorder.
const (
	ReasonDataAccess        = "data_access"
	ReasonDivisionUndefined = "division_undefined"
	ReasonTypeMismatch      = "type_mismatch"
	ReasonCanceled          = "canceled"
	ReasonOther             = "other"
)

// ReportService builds feedback reports from a survey source.
type ReportService struct {
	loader   TableLoader
	columns  QuestionColumns
	logger   *zap.Logger
	recorder Recorder
}

// NewReportService creates a new ReportService instance. A nil recorder disables recording.
func NewReportService(loader TableLoader, columns QuestionColumns, logger *zap.Logger, recorder Recorder) *ReportService {
	if loader == nil {
		panic("loader must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &ReportService{
		loader:   loader,
		columns:  columns,
		logger:   logger.Named("report-service"),
		recorder: recorder,
	}
}

// FailureReason classifies a BuildReport error.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, models.ErrDataAccess):
		return ReasonDataAccess
	case errors.Is(err, ErrDivisionUndefined):
		return ReasonDivisionUndefined
	case errors.Is(err, ErrTypeMismatch):
		return ReasonTypeMismatch
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ReasonCanceled
	}
	return ReasonOther
}

// BuildReport loads the source once, then tallies and averages every question
// in report order. The first failure aborts the build; no partial report is returned.
func (s *ReportService) BuildReport(ctx context.Context) (FeedbackReport, error) {
	report, err := s.build(ctx)
	if err != nil {
		s.recorder.ReportFailed(FailureReason(err))
		s.logger.Debug("report build failed", zap.Error(err))
		return FeedbackReport{}, err
	}
	s.recorder.ReportBuilt()
	return report, nil
}

func (s *ReportService) build(ctx context.Context) (FeedbackReport, error) {
	table, err := s.loader.Load(ctx, s.columns.Headers())
	if err != nil {
		return FeedbackReport{}, fmt.Errorf("load responses: %w", err)
	}

	report := FeedbackReport{
		Source:    table.Source,
		Questions: make([]QuestionReport, 0, len(Questions)),
	}

	for _, q := range Questions {
		header := s.columns.Header(q)
		values, ok := table.Column(header)
		if !ok {
			return FeedbackReport{}, fmt.Errorf("%s: %w: column %q not loaded", q, models.ErrDataAccess, header)
		}

		tally := Tally(values)
		s.recorder.QuestionTallied(string(q), tally.Total())

		avg, err := Average(tally)
		if err != nil {
			return FeedbackReport{}, fmt.Errorf("%s: %w", q, err)
		}

		report.Questions = append(report.Questions, QuestionReport{
			Question: q,
			Header:   header,
			Tally:    tally,
			Average:  avg,
			Rounded:  RoundAverage(avg),
		})
	}

	s.logger.Info("report built",
		zap.String("source", report.Source),
		zap.Int("questions", len(report.Questions)))

	return report, nil
}

// SourceFingerprint identifies the current revision of the survey source.
func (s *ReportService) SourceFingerprint() (string, error) {
	return s.loader.Fingerprint()
}
