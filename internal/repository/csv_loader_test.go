package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/godilite/feedback-report/internal/repository"
	"github.com/godilite/feedback-report/internal/repository/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feedback.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCSVLoader_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("projects requested columns", func(t *testing.T) {
		path := writeCSV(t, "\ufeffExperience?,Relevance?,Comprehension?,Usefulness?,Comments\n"+
			"5,4,5,3,\"great, really\"\n"+
			"5,4,4\n"+
			"4,,5,5,ok\n")
		loader := repository.NewCSVLoader(path, nil)

		table, err := loader.Load(ctx, surveyHeaders)
		require.NoError(t, err)

		assert.Equal(t, path, table.Source)
		assert.Equal(t, []string{"5", "5", "4"}, table.Columns["Experience?"])
		assert.Equal(t, []string{"4", "4", ""}, table.Columns["Relevance?"])
		assert.Equal(t, []string{"3", "", "5"}, table.Columns["Usefulness?"])
	})

	t.Run("missing header", func(t *testing.T) {
		path := writeCSV(t, "Experience?,Relevance?\n5,4\n")
		loader := repository.NewCSVLoader(path, nil)

		_, err := loader.Load(ctx, surveyHeaders)
		require.ErrorIs(t, err, models.ErrDataAccess)
		assert.Contains(t, err.Error(), `"Comprehension?"`)
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeCSV(t, "")
		loader := repository.NewCSVLoader(path, nil)

		_, err := loader.Load(ctx, surveyHeaders)
		assert.ErrorIs(t, err, models.ErrDataAccess)
	})

	t.Run("malformed quoting", func(t *testing.T) {
		path := writeCSV(t, "Experience?\n\"5\n")
		loader := repository.NewCSVLoader(path, nil)

		_, err := loader.Load(ctx, []string{"Experience?"})
		assert.ErrorIs(t, err, models.ErrDataAccess)
	})

	t.Run("missing file", func(t *testing.T) {
		loader := repository.NewCSVLoader(filepath.Join(t.TempDir(), "absent.csv"), nil)

		_, err := loader.Load(ctx, surveyHeaders)
		assert.ErrorIs(t, err, models.ErrDataAccess)
	})
}
