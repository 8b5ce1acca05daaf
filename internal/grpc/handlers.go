package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/godilite/feedback-report/internal/repository/models"
	"github.com/godilite/feedback-report/internal/service"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	defaultCacheDuration = 10 * time.Minute
	defaultGRPCTimeout   = 30 * time.Second
)

const cacheKeyReport = "grpc:feedback_report"

type GRPCHandlers struct {
	reports  ReportService
	cache    Cacher
	observer CacheObserver
	logger   *zap.Logger
	sfGroup  singleflight.Group
	cacheTTL time.Duration
}

// NewGRPCHandlers initializes the gRPC handlers. A nil cache serves every request from the source.
func NewGRPCHandlers(reports ReportService, cache Cacher, observer CacheObserver, logger *zap.Logger, ttl time.Duration) *GRPCHandlers {
	if reports == nil {
		panic("nil ReportService provided to NewGRPCHandlers")
	}
	if ttl <= 0 {
		ttl = defaultCacheDuration
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &GRPCHandlers{
		reports:  reports,
		cache:    cache,
		observer: observer,
		logger:   logger.Named("grpc-handler"),
		cacheTTL: ttl,
	}
}

// reportCacheKey ties a cached report to one revision of the source file.
func reportCacheKey(fingerprint string) string {
	return cacheKeyReport + ":" + fingerprint
}

func (s *GRPCHandlers) handleError(ctx context.Context, op string, err error) error {
	switch ctx.Err() {
	case context.Canceled:
		s.logger.Warn("request canceled", zap.String("op", op))
		return status.Error(codes.Canceled, "request canceled")
	case context.DeadlineExceeded:
		s.logger.Warn("request timeout", zap.String("op", op))
		return status.Error(codes.DeadlineExceeded, "request timed out")
	}

	switch {
	case errors.Is(err, models.ErrDataAccess):
		s.logger.Error("survey source unavailable", zap.String("op", op), zap.Error(err))
		return status.Errorf(codes.FailedPrecondition, "survey source unavailable: %v", err)
	case errors.Is(err, service.ErrDivisionUndefined), errors.Is(err, service.ErrTypeMismatch):
		s.logger.Warn("report cannot be computed", zap.String("op", op), zap.Error(err))
		return status.Errorf(codes.FailedPrecondition, "report cannot be computed: %v", err)
	default:
		s.logger.Error("unexpected error", zap.String("op", op), zap.Error(err))
		return status.Errorf(codes.Internal, "%s failed: %v", op, err)
	}
}

func (s *GRPCHandlers) GetReport(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	fingerprint, err := s.reports.SourceFingerprint()
	if err != nil {
		return nil, s.handleError(ctx, "GetReport", err)
	}

	snapshot, err := FindAndCache(ctx, s.cache, &s.sfGroup, reportCacheKey(fingerprint), s.cacheTTL, s.logger, s.observer,
		func(fetchCtx context.Context) (ReportSnapshot, error) {
			report, err := s.reports.BuildReport(fetchCtx)
			if err != nil {
				return ReportSnapshot{}, err
			}
			return NewReportSnapshot(report), nil
		})
	if err != nil {
		return nil, s.handleError(ctx, "GetReport", err)
	}

	resp, err := snapshot.ToStruct()
	if err != nil {
		return nil, s.handleError(ctx, "GetReport", err)
	}
	return resp, nil
}
