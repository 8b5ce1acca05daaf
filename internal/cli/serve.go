package cli

import (
	"fmt"

	"github.com/godilite/feedback-report/internal/app"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the report over gRPC",
	Long: `Start a gRPC server exposing FeedbackReportService/GetReport together with the
standard gRPC health service, and an HTTP server exposing Prometheus metrics.

When a Redis address is configured, reports are cached per revision of the survey file.

Examples:
  feedback serve --file feedback.xlsx
  feedback serve --port 9000 --metrics-addr :9100 --redis-addr localhost:6379`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		application, err := app.NewApp(cmd.Context(), cfg, logger)
		if err != nil {
			return fmt.Errorf("initialize application: %w", err)
		}
		return application.Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 50051, "gRPC listen port")
	serveCmd.Flags().String("metrics-addr", "", "metrics HTTP listen address (config default :9090); \"\" disables metrics")
	serveCmd.Flags().String("redis-addr", "", "Redis address for the report cache; empty disables caching")
	serveCmd.Flags().Bool("reflection", false, "enable gRPC server reflection")
}
