package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/godilite/feedback-report/internal/repository/models"
	"go.uber.org/zap"
)

const utf8BOM = "\ufeff"

// CSVLoader reads survey responses from a CSV export of the feedback sheet.
// The first record holds the column headers.
type CSVLoader struct {
	path   string
	logger *zap.Logger
}

func NewCSVLoader(path string, logger *zap.Logger) *CSVLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CSVLoader{path: path, logger: logger.Named("csv-loader")}
}

func (l *CSVLoader) Load(ctx context.Context, headers []string) (*models.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", models.ErrDataAccess, l.path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: parse csv: %v", models.ErrDataAccess, l.path, err)
	}

	var header []string
	var data [][]string
	if len(records) > 0 {
		header, data = records[0], records[1:]
		if len(header) > 0 {
			// Spreadsheet exports often start with a byte order mark.
			header[0] = strings.TrimPrefix(header[0], utf8BOM)
		}
	}

	table, err := project(l.path, header, data, headers)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("csv loaded", zap.String("path", l.path), zap.Int("rows", len(data)))
	return table, nil
}

func (l *CSVLoader) Fingerprint() (string, error) {
	return fingerprint(l.path)
}
