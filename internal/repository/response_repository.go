package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/godilite/feedback-report/internal/repository/models"
	dbbuilder "github.com/godilite/feedback-report/pkg/database"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// ResponseRepository reads survey responses stored one row per respondent in a SQL table
// whose column names are the question headers.
type ResponseRepository struct {
	db *sql.DB
}

func NewResponseRepository(db *sql.DB) *ResponseRepository {
	return &ResponseRepository{db: db}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// GetResponses returns every row of table projected onto headers. NULL cells become blanks.
func (r *ResponseRepository) GetResponses(ctx context.Context, table string, headers []string) (*models.Table, error) {
	query := "SELECT * FROM " + quoteIdent(table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: query %s: %v", models.ErrDataAccess, table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: columns of %s: %v", models.ErrDataAccess, table, err)
	}

	var data [][]string
	for rows.Next() {
		cells := make([]sql.NullString, len(columns))
		dest := make([]any, len(columns))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: scan %s row: %v", models.ErrDataAccess, table, err)
		}

		record := make([]string, len(columns))
		for i, c := range cells {
			if c.Valid {
				record[i] = c.String
			}
		}
		data = append(data, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate %s: %v", models.ErrDataAccess, table, err)
	}

	return project(table, columns, data, headers)
}

// SQLiteLoader reads survey responses from a table of a SQLite database file.
// The database is opened read-only for the duration of a single Load.
type SQLiteLoader struct {
	path   string
	table  string
	logger *zap.Logger
}

func NewSQLiteLoader(path, table string, logger *zap.Logger) *SQLiteLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SQLiteLoader{path: path, table: table, logger: logger.Named("sqlite-loader")}
}

func (l *SQLiteLoader) Load(ctx context.Context, headers []string) (*models.Table, error) {
	db, err := dbbuilder.New(ctx,
		dbbuilder.WithDriver("sqlite3"),
		dbbuilder.WithDataSource(l.path),
		dbbuilder.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", models.ErrDataAccess, l.path, err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			l.logger.Warn("failed to close database", zap.String("path", l.path), zap.Error(err))
		}
	}()

	table, err := NewResponseRepository(db).GetResponses(ctx, l.table, headers)
	if err != nil {
		return nil, err
	}
	table.Source = fmt.Sprintf("%s[%s]", l.path, l.table)

	l.logger.Debug("table loaded", zap.String("path", l.path), zap.String("table", l.table))
	return table, nil
}

func (l *SQLiteLoader) Fingerprint() (string, error) {
	return fingerprint(l.path)
}
