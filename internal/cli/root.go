package cli

import (
	"fmt"

	"github.com/godilite/feedback-report/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var cfgFile string

// flagKeys maps command-line flags onto configuration keys.
var flagKeys = map[string]string{
	"file":         "file_path",
	"source":       "source",
	"sheet":        "sheet",
	"table":        "table",
	"port":         "grpc_port",
	"metrics-addr": "metrics_addr",
	"redis-addr":   "redis_addr",
	"reflection":   "grpc_reflection_enabled",
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "feedback [file]",
	Short: "Summarize post-event feedback ratings",
	Long: `feedback reads the post-event survey export and reports, for each rated question,
how many respondents gave each rating and the average rating.

Running feedback without a subcommand is the same as running "feedback report".

Configuration is read from --config, FEEDBACK_* environment variables (a .env file
in the working directory is honoured) and flags, flags taking precedence.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runReport,
}

// Execute runs the root command. It is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(func() {
		_ = godotenv.Load()
	})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("file", "", "survey file (.xlsx, .csv or SQLite .db)")
	rootCmd.PersistentFlags().String("source", "", "source kind (xlsx, csv, sqlite); detected from the extension when empty")
	rootCmd.PersistentFlags().String("sheet", "", "worksheet to read (default: first sheet)")
	rootCmd.PersistentFlags().String("table", "", "table to read from a SQLite source")
}

// loadConfig resolves configuration for cmd. A fresh viper instance is used per
// invocation so repeated runs in one process never share state.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, *zap.Logger, error) {
	if len(args) == 1 {
		if err := cmd.Flags().Set("file", args[0]); err != nil {
			return nil, nil, err
		}
	}

	v := viper.New()
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return nil, nil, err
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger, nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}
