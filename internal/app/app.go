package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/godilite/feedback-report/internal/config"
	"github.com/godilite/feedback-report/internal/console"
	handler "github.com/godilite/feedback-report/internal/grpc"
	"github.com/godilite/feedback-report/internal/metrics"
	"github.com/godilite/feedback-report/internal/repository"
	"github.com/godilite/feedback-report/internal/service"
	"github.com/godilite/feedback-report/pkg/cache"
	grpcsrv "github.com/godilite/feedback-report/pkg/grpc/server"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

const shutdownTimeout = 10 * time.Second

func newReportService(cfg *config.Config, logger *zap.Logger, recorder service.Recorder) (*service.ReportService, error) {
	loader, err := repository.NewLoader(repository.LoaderOptions{
		Path:   cfg.FilePath,
		Source: cfg.Source,
		Sheet:  cfg.Sheet,
		Table:  cfg.Table,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}
	return service.NewReportService(loader, service.QuestionColumns(cfg.ColumnHeaders), logger, recorder), nil
}

// RunReport builds the report once and prints it to w. Nothing is written when the
// report cannot be built.
func RunReport(ctx context.Context, cfg *config.Config, logger *zap.Logger, w io.Writer) error {
	reports, err := newReportService(cfg, logger, nil)
	if err != nil {
		return err
	}

	report, err := reports.BuildReport(ctx)
	if err != nil {
		return err
	}

	if err := console.Print(w, report); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// App serves the report over gRPC and exposes Prometheus metrics over HTTP.
type App struct {
	logger      *zap.Logger
	cache       handler.Cacher
	grpcServer  *grpcsrv.Server
	httpServer  *http.Server
	metricsLis  net.Listener
	httpStopped chan struct{}
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	registry := metrics.NewRegistry()
	reportMetrics := metrics.NewReportMetrics(registry)

	reports, err := newReportService(cfg, logger, reportMetrics)
	if err != nil {
		return nil, fmt.Errorf("report service init failed: %w", err)
	}

	var cacher handler.Cacher
	if cfg.RedisAddr != "" {
		cacheClient, err := cache.New(ctx, cache.WithAddress(cfg.RedisAddr))
		if err != nil {
			return nil, fmt.Errorf("cache init failed: %w", err)
		}
		cacher = cacheClient
		logger.Info("Cache client initialized", zap.String("addr", cfg.RedisAddr))
	} else {
		logger.Info("Cache disabled, every request reads the survey source")
	}

	grpcHandlers := handler.NewGRPCHandlers(reports, cacher, reportMetrics, logger, cfg.CacheTTL)

	var metricsLis net.Listener
	if cfg.MetricsAddr != "" {
		metricsLis, err = net.Listen("tcp", cfg.MetricsAddr)
		if err != nil {
			closeCache(cacher, logger)
			return nil, fmt.Errorf("failed to listen on metrics address %s: %w", cfg.MetricsAddr, err)
		}
	}

	grpcServer, err := grpcsrv.New(
		grpcsrv.WithPort(cfg.GRPCPort),
		grpcsrv.WithLogger(logger),
		grpcsrv.WithReflection(cfg.GRPCReflectionEnabled),
		grpcsrv.WithLogging(true),
		grpcsrv.WithRecovery(true),
	)
	if err != nil {
		if metricsLis != nil {
			_ = metricsLis.Close()
		}
		closeCache(cacher, logger)
		return nil, fmt.Errorf("failed to create gRPC server: %w", err)
	}

	grpcServer.RegisterServiceWithHealth(handler.FeedbackReportServiceName, func(s *grpc.Server) {
		handler.RegisterFeedbackReportServer(s, grpcHandlers)
	})

	a := &App{
		logger:     logger,
		cache:      cacher,
		grpcServer: grpcServer,
	}

	if metricsLis != nil {
		a.metricsLis = metricsLis
		a.httpServer = &http.Server{
			Handler:           newMetricsRouter(registry),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	return a, nil
}

func newMetricsRouter(registry *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", metrics.Handler(registry))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

func closeCache(c handler.Cacher, logger *zap.Logger) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		logger.Error("cache shutdown error", zap.Error(err))
	}
}

// GRPCAddr returns the address the gRPC server listens on.
func (a *App) GRPCAddr() net.Addr {
	return a.grpcServer.Addr()
}

// MetricsAddr returns the metrics listener address, or nil when metrics are disabled.
func (a *App) MetricsAddr() net.Addr {
	if a.metricsLis == nil {
		return nil
	}
	return a.metricsLis.Addr()
}

// Serve starts both servers and blocks until ctx is done, then shuts them down.
func (a *App) Serve(ctx context.Context) error {
	a.logger.Info("application starting")

	a.grpcServer.Start()

	if a.httpServer != nil {
		a.httpStopped = make(chan struct{})
		go func() {
			defer close(a.httpStopped)
			a.logger.Info("metrics server started", zap.String("addr", a.metricsLis.Addr().String()))
			if err := a.httpServer.Serve(a.metricsLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	<-ctx.Done()

	a.logger.Info("application shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.grpcServer.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("grpc shutdown: %w", err))
	}
	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("metrics shutdown: %w", err))
		}
		<-a.httpStopped
	}
	closeCache(a.cache, a.logger)

	if shutdownCtx.Err() == context.DeadlineExceeded {
		a.logger.Warn("shutdown completed but deadline exceeded")
	} else {
		a.logger.Info("graceful shutdown completed successfully")
	}

	_ = a.logger.Sync()
	return errors.Join(errs...)
}

// Run starts the application and blocks until a shutdown signal is received.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return a.Serve(ctx)
}
