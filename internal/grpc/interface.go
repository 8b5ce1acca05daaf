package grpc

import (
	"context"
	"time"

	"github.com/godilite/feedback-report/internal/service"
)

// Cacher defines the interface for cache operations.
type Cacher interface {
	Close() error
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// CacheObserver is notified of every cache lookup outcome.
type CacheObserver interface {
	CacheHit()
	CacheMiss()
}

type ReportService interface {
	BuildReport(ctx context.Context) (service.FeedbackReport, error)
	SourceFingerprint() (string, error)
}

type nopObserver struct{}

func (nopObserver) CacheHit()  {}
func (nopObserver) CacheMiss() {}
