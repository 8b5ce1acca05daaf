package cli

import (
	"github.com/godilite/feedback-report/internal/app"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var reportCmd = &cobra.Command{
	Use:   "report [file]",
	Short: "Print rating tallies and averages for every question",
	Long: `Print one line holding the rating tally of every question, followed by one
"Average <Question> Rating" line per question.

Examples:
  feedback report                      # read ./feedback.xlsx
  feedback report survey.csv           # read a CSV export
  feedback report --file answers.db --table responses`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if err := app.RunReport(cmd.Context(), cfg, logger, cmd.OutOrStdout()); err != nil {
		logger.Debug("report failed", zap.String("file", cfg.FilePath), zap.Error(err))
		return err
	}
	return nil
}
