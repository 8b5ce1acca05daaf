package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Source kinds accepted by the "source" option. Empty means detect by extension.
const (
	SourceXLSX   = "xlsx"
	SourceCSV    = "csv"
	SourceSQLite = "sqlite"
)

const envPrefix = "FEEDBACK"

var ErrInvalidConfig = errors.New("invalid configuration")

// ColumnHeaders maps each survey question to the header of its column in the source sheet.
type ColumnHeaders struct {
	Experience    string `mapstructure:"experience"`
	Relevancy     string `mapstructure:"relevancy"`
	Comprehension string `mapstructure:"comprehension"`
	Usefulness    string `mapstructure:"usefulness"`
}

// Config holds all configuration for the application.
type Config struct {
	AppEnv                string        `mapstructure:"app_env"`
	FilePath              string        `mapstructure:"file_path"`
	Source                string        `mapstructure:"source"`
	Sheet                 string        `mapstructure:"sheet"`
	Table                 string        `mapstructure:"table"`
	ColumnHeaders         ColumnHeaders `mapstructure:"column_headers"`
	RedisAddr             string        `mapstructure:"redis_addr"`
	CacheTTL              time.Duration `mapstructure:"cache_ttl"`
	GRPCPort              int           `mapstructure:"grpc_port"`
	GRPCReflectionEnabled bool          `mapstructure:"grpc_reflection_enabled"`
	MetricsAddr           string        `mapstructure:"metrics_addr"`
}

// SetDefaults registers the default value of every recognised option on v.
// Env lookups only work for keys viper already knows about, so every key gets one.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")
	v.SetDefault("file_path", "feedback.xlsx")
	v.SetDefault("source", "")
	v.SetDefault("sheet", "")
	v.SetDefault("table", "responses")
	v.SetDefault("column_headers.experience", "How would you rate your experience at the event")
	v.SetDefault("column_headers.relevancy", "How would you rate the relevance of the event for your career planning?")
	v.SetDefault("column_headers.comprehension", "How would you describe the ease of understanding the session content?")
	v.SetDefault("column_headers.usefulness", "How would you rate the usefulness of the information provided to you in this session?")
	v.SetDefault("redis_addr", "")
	v.SetDefault("cache_ttl", 10*time.Minute)
	v.SetDefault("grpc_port", 50051)
	v.SetDefault("grpc_reflection_enabled", false)
	v.SetDefault("metrics_addr", ":9090")
}

// Load builds a Config from defaults, an optional config file, FEEDBACK_* environment
// variables and whatever flags the caller already bound on v, then validates it.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the options the report pipeline cannot run without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.FilePath) == "" {
		return fmt.Errorf("%w: file_path is required", ErrInvalidConfig)
	}

	switch c.Source {
	case "", SourceXLSX, SourceCSV, SourceSQLite:
	default:
		return fmt.Errorf("%w: unknown source %q", ErrInvalidConfig, c.Source)
	}

	headers := map[string]string{
		"experience":    c.ColumnHeaders.Experience,
		"relevancy":     c.ColumnHeaders.Relevancy,
		"comprehension": c.ColumnHeaders.Comprehension,
		"usefulness":    c.ColumnHeaders.Usefulness,
	}
	seen := make(map[string]string, len(headers))
	for _, name := range []string{"experience", "relevancy", "comprehension", "usefulness"} {
		h := headers[name]
		if h == "" {
			return fmt.Errorf("%w: column_headers.%s is required", ErrInvalidConfig, name)
		}
		if other, dup := seen[h]; dup {
			return fmt.Errorf("%w: column_headers.%s duplicates column_headers.%s", ErrInvalidConfig, name, other)
		}
		seen[h] = name
	}

	if c.GRPCPort < 1 || c.GRPCPort > 65535 {
		return fmt.Errorf("%w: grpc_port %d out of range", ErrInvalidConfig, c.GRPCPort)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("%w: cache_ttl must be positive", ErrInvalidConfig)
	}
	return nil
}

// NewLogger creates a new Zap logger based on the config.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.AppEnv == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
