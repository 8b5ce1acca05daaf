package repository

import (
	"context"
	"fmt"
	"slices"

	"github.com/godilite/feedback-report/internal/repository/models"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// XLSXLoader reads survey responses from an Excel workbook. The first row of
// the sheet holds the column headers.
type XLSXLoader struct {
	path   string
	sheet  string
	logger *zap.Logger
}

// NewXLSXLoader creates a loader for path. An empty sheet selects the first sheet.
func NewXLSXLoader(path, sheet string, logger *zap.Logger) *XLSXLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &XLSXLoader{path: path, sheet: sheet, logger: logger.Named("xlsx-loader")}
}

func (l *XLSXLoader) Load(ctx context.Context, headers []string) (*models.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", models.ErrDataAccess, l.path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			l.logger.Warn("failed to close workbook", zap.String("path", l.path), zap.Error(err))
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: %s: workbook has no sheets", models.ErrDataAccess, l.path)
	}

	sheet := l.sheet
	if sheet == "" {
		sheet = sheets[0]
	} else if !slices.Contains(sheets, sheet) {
		return nil, fmt.Errorf("%w: %s: sheet %q not found", models.ErrDataAccess, l.path, sheet)
	}

	// Stored values, not display text: a "0" number format would turn 4.5 into 5.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read sheet %q: %v", models.ErrDataAccess, l.path, sheet, err)
	}

	var header []string
	var data [][]string
	if len(rows) > 0 {
		header, data = rows[0], rows[1:]
	}

	source := fmt.Sprintf("%s[%s]", l.path, sheet)
	table, err := project(source, header, data, headers)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("workbook loaded",
		zap.String("path", l.path),
		zap.String("sheet", sheet),
		zap.Int("rows", len(data)))

	return table, nil
}

func (l *XLSXLoader) Fingerprint() (string, error) {
	return fingerprint(l.path)
}
