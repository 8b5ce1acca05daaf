package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/godilite/feedback-report/internal/config"
	"github.com/godilite/feedback-report/internal/repository/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectSource(t *testing.T) {
	cases := []struct {
		name    string
		path    string
		source  string
		want    string
		wantErr bool
	}{
		{name: "xlsx extension", path: "feedback.xlsx", want: config.SourceXLSX},
		{name: "upper case extension", path: "FEEDBACK.XLSX", want: config.SourceXLSX},
		{name: "macro workbook", path: "feedback.xlsm", want: config.SourceXLSX},
		{name: "csv extension", path: "export.csv", want: config.SourceCSV},
		{name: "sqlite extension", path: "survey.sqlite3", want: config.SourceSQLite},
		{name: "db extension", path: "survey.db", want: config.SourceSQLite},
		{name: "explicit source wins", path: "feedback.dat", source: config.SourceCSV, want: config.SourceCSV},
		{name: "unknown extension", path: "feedback.ods", wantErr: true},
		{name: "unknown explicit source", path: "feedback.xlsx", source: "json", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DetectSource(tc.path, tc.source)
			if tc.wantErr {
				assert.ErrorIs(t, err, models.ErrDataAccess)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewLoader(t *testing.T) {
	t.Run("picks loader by extension", func(t *testing.T) {
		l, err := NewLoader(LoaderOptions{Path: "a.xlsx"})
		require.NoError(t, err)
		assert.IsType(t, &XLSXLoader{}, l)

		l, err = NewLoader(LoaderOptions{Path: "a.csv"})
		require.NoError(t, err)
		assert.IsType(t, &CSVLoader{}, l)

		l, err = NewLoader(LoaderOptions{Path: "a.db", Table: "responses"})
		require.NoError(t, err)
		assert.IsType(t, &SQLiteLoader{}, l)
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := NewLoader(LoaderOptions{Path: "a.txt"})
		assert.ErrorIs(t, err, models.ErrDataAccess)
	})
}

func TestProject(t *testing.T) {
	header := []string{"Name", "Q1", "Q2", "Q1"}
	rows := [][]string{
		{"ann", "5", "4", "ignored"},
		{"bob", "3"},
		{},
	}

	t.Run("keeps requested columns in row order", func(t *testing.T) {
		table, err := project("src", header, rows, []string{"Q1", "Q2"})
		require.NoError(t, err)

		assert.Equal(t, "src", table.Source)
		assert.Len(t, table.Columns, 2)
		assert.Equal(t, []string{"5", "3", ""}, table.Columns["Q1"])
		assert.Equal(t, []string{"4", "", ""}, table.Columns["Q2"])
	})

	t.Run("reports every missing header", func(t *testing.T) {
		_, err := project("src", header, rows, []string{"Q1", "Q3", "Q4"})
		require.ErrorIs(t, err, models.ErrDataAccess)
		assert.Contains(t, err.Error(), `"Q3"`)
		assert.Contains(t, err.Error(), `"Q4"`)
		assert.NotContains(t, err.Error(), `"Q1"`)
	})

	t.Run("no header row", func(t *testing.T) {
		_, err := project("src", nil, nil, []string{"Q1"})
		assert.ErrorIs(t, err, models.ErrDataAccess)
	})

	t.Run("header only yields empty columns", func(t *testing.T) {
		table, err := project("src", header, nil, []string{"Q1"})
		require.NoError(t, err)
		assert.Empty(t, table.Columns["Q1"])
	})
}

func TestFingerprint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.csv")
	require.NoError(t, os.WriteFile(path, []byte("Q1\n5\n"), 0o600))

	first, err := fingerprint(path)
	require.NoError(t, err)
	assert.Contains(t, first, path+":6:")

	again, err := fingerprint(path)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	_, err = fingerprint(filepath.Join(t.TempDir(), "absent.csv"))
	assert.ErrorIs(t, err, models.ErrDataAccess)
}
