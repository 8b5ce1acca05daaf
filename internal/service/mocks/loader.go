package mocks

import (
	"context"
	"errors"

	"github.com/godilite/feedback-report/internal/repository/models"
)

// MockTableLoader is a mock implementation of the TableLoader interface
// for testing the service layer.
type MockTableLoader struct {
	LoadFunc        func(ctx context.Context, headers []string) (*models.Table, error)
	FingerprintFunc func() (string, error)
	LoadCalls       int
}

// Load implements the TableLoader interface
func (m *MockTableLoader) Load(ctx context.Context, headers []string) (*models.Table, error) {
	m.LoadCalls++
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, headers)
	}
	return nil, errors.New("LoadFunc not implemented")
}

// Fingerprint implements the TableLoader interface
func (m *MockTableLoader) Fingerprint() (string, error) {
	if m.FingerprintFunc != nil {
		return m.FingerprintFunc()
	}
	return "", errors.New("FingerprintFunc not implemented")
}

// RecordingRecorder captures recorder calls.
type RecordingRecorder struct {
	Tallied  map[string]int
	Built    int
	Failures []string
}

func (r *RecordingRecorder) QuestionTallied(question string, responses int) {
	if r.Tallied == nil {
		r.Tallied = make(map[string]int)
	}
	r.Tallied[question] += responses
}

func (r *RecordingRecorder) ReportBuilt() { r.Built++ }

func (r *RecordingRecorder) ReportFailed(reason string) { r.Failures = append(r.Failures, reason) }
