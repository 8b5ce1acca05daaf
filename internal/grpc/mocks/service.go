package mocks

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/godilite/feedback-report/internal/service"
)

// MockReportService is a mock implementation of the ReportService interface
// for testing the handler layer. It uses function-based mocking for flexibility.
type MockReportService struct {
	BuildReportFunc       func(ctx context.Context) (service.FeedbackReport, error)
	SourceFingerprintFunc func() (string, error)
	BuildCalls            atomic.Int32
}

// BuildReport implements the ReportService interface
func (m *MockReportService) BuildReport(ctx context.Context) (service.FeedbackReport, error) {
	m.BuildCalls.Add(1)
	if m.BuildReportFunc != nil {
		return m.BuildReportFunc(ctx)
	}
	return service.FeedbackReport{}, errors.New("BuildReportFunc not implemented")
}

// SourceFingerprint implements the ReportService interface
func (m *MockReportService) SourceFingerprint() (string, error) {
	if m.SourceFingerprintFunc != nil {
		return m.SourceFingerprintFunc()
	}
	return "feedback.xlsx:1:1", nil
}
