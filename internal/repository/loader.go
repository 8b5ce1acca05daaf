package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/godilite/feedback-report/internal/config"
	"github.com/godilite/feedback-report/internal/repository/models"
	"go.uber.org/zap"
)

// Loader reads a survey source and projects it down to the requested columns.
type Loader interface {
	Load(ctx context.Context, headers []string) (*models.Table, error)
	Fingerprint() (string, error)
}

// LoaderOptions selects and configures a Loader.
type LoaderOptions struct {
	Path   string
	Source string
	Sheet  string
	Table  string
	Logger *zap.Logger
}

// DetectSource resolves the source kind from an explicit setting or the file extension.
func DetectSource(path, source string) (string, error) {
	if source != "" {
		switch source {
		case config.SourceXLSX, config.SourceCSV, config.SourceSQLite:
			return source, nil
		}
		return "", fmt.Errorf("%w: unsupported source %q", models.ErrDataAccess, source)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return config.SourceXLSX, nil
	case ".csv":
		return config.SourceCSV, nil
	case ".db", ".sqlite", ".sqlite3":
		return config.SourceSQLite, nil
	}
	return "", fmt.Errorf("%w: %s: unsupported file format", models.ErrDataAccess, path)
}

// NewLoader returns the Loader for the configured source.
func NewLoader(opts LoaderOptions) (Loader, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	source, err := DetectSource(opts.Path, opts.Source)
	if err != nil {
		return nil, err
	}

	switch source {
	case config.SourceCSV:
		return NewCSVLoader(opts.Path, logger), nil
	case config.SourceSQLite:
		return NewSQLiteLoader(opts.Path, opts.Table, logger), nil
	default:
		return NewXLSXLoader(opts.Path, opts.Sheet, logger), nil
	}
}

// fingerprint identifies a file revision by path, size and modification time.
func fingerprint(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: stat %s: %v", models.ErrDataAccess, path, err)
	}
	return fmt.Sprintf("%s:%d:%d", path, info.Size(), info.ModTime().UnixNano()), nil
}

// project keeps the requested headers of a header row plus data rows.
// Rows shorter than the header row yield blanks for the missing cells.
func project(source string, header []string, rows [][]string, headers []string) (*models.Table, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	var missing []string
	for _, h := range headers {
		if _, ok := index[h]; !ok {
			missing = append(missing, fmt.Sprintf("%q", h))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s: missing column(s) %s", models.ErrDataAccess, source, strings.Join(missing, ", "))
	}

	columns := make(map[string][]string, len(headers))
	for _, h := range headers {
		idx := index[h]
		values := make([]string, len(rows))
		for r, row := range rows {
			if idx < len(row) {
				values[r] = row[idx]
			}
		}
		columns[h] = values
	}

	return &models.Table{Source: source, Columns: columns}, nil
}
