package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/godilite/feedback-report/internal/config"
	handler "github.com/godilite/feedback-report/internal/grpc"
	"github.com/godilite/feedback-report/internal/repository/models"
	"github.com/godilite/feedback-report/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const surveyCSV = `Timestamp,Experience?,Relevance?,Comprehension?,Usefulness?
2024-07-01,5,3,4,2
2024-07-01,5,3,5,2
2024-07-02,4,3,4,1
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testConfig(path string) *config.Config {
	return &config.Config{
		AppEnv:   "test",
		FilePath: path,
		ColumnHeaders: config.ColumnHeaders{
			Experience:    "Experience?",
			Relevancy:     "Relevance?",
			Comprehension: "Comprehension?",
			Usefulness:    "Usefulness?",
		},
		CacheTTL: time.Minute,
		GRPCPort: 50051,
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := lis.Addr().(*net.TCPAddr).Port
	require.NoError(t, lis.Close())
	return port
}

func TestRunReport(t *testing.T) {
	ctx := context.Background()
	logger := zaptest.NewLogger(t)

	t.Run("prints tallies and averages", func(t *testing.T) {
		var out bytes.Buffer
		cfg := testConfig(writeFile(t, "feedback.csv", surveyCSV))

		require.NoError(t, RunReport(ctx, cfg, logger, &out))

		expected := "{Experience: {4: 1, 5: 2}, Relevancy: {3: 3}, Comprehension: {4: 2, 5: 1}, Usefulness: {1: 1, 2: 2}}\n" +
			"Average Experience Rating:\t4.67\n" +
			"Average Relevancy Rating:\t3.00\n" +
			"Average Comprehension Rating:\t4.33\n" +
			"Average Usefulness Rating:\t1.67\n"
		assert.Equal(t, expected, out.String())
	})

	t.Run("missing column prints nothing", func(t *testing.T) {
		var out bytes.Buffer
		cfg := testConfig(writeFile(t, "feedback.csv", "Experience?,Relevance?\n5,4\n"))

		err := RunReport(ctx, cfg, logger, &out)

		require.ErrorIs(t, err, models.ErrDataAccess)
		assert.Empty(t, out.String())
	})

	t.Run("non-numeric rating prints nothing", func(t *testing.T) {
		var out bytes.Buffer
		cfg := testConfig(writeFile(t, "feedback.csv",
			"Experience?,Relevance?,Comprehension?,Usefulness?\n5,4,n/a,3\n"))

		err := RunReport(ctx, cfg, logger, &out)

		require.ErrorIs(t, err, service.ErrTypeMismatch)
		assert.Empty(t, out.String())
	})

	t.Run("unsupported extension", func(t *testing.T) {
		cfg := testConfig(writeFile(t, "feedback.txt", surveyCSV))

		err := RunReport(ctx, cfg, logger, io.Discard)
		assert.ErrorIs(t, err, models.ErrDataAccess)
	})
}

// writeSurveyWorkbook saves the survey rows; styled applies a "0" number format to every rating cell.
func writeSurveyWorkbook(t *testing.T, name string, styled bool) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	rows := [][]any{
		{"Experience?", "Relevance?", "Comprehension?", "Usefulness?"},
		{4.5, 3, 4.5, 2},
		{4, 3, 5, 2},
		{3, 3, 4, 1},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	if styled {
		style, err := f.NewStyle(&excelize.Style{NumFmt: 1})
		require.NoError(t, err)
		require.NoError(t, f.SetCellStyle("Sheet1", "A2", "D4", style))
	}

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestRunReport_FormattedWorkbook(t *testing.T) {
	ctx := context.Background()
	logger := zaptest.NewLogger(t)

	var plain, formatted bytes.Buffer
	require.NoError(t, RunReport(ctx, testConfig(writeSurveyWorkbook(t, "plain.xlsx", false)), logger, &plain))
	require.NoError(t, RunReport(ctx, testConfig(writeSurveyWorkbook(t, "formatted.xlsx", true)), logger, &formatted))

	assert.Equal(t, plain.String(), formatted.String())
	assert.Contains(t, formatted.String(), "Experience: {3: 1, 4: 1, 4.5: 1}")
	assert.Contains(t, formatted.String(), "Average Experience Rating:\t3.83\n")
	assert.Contains(t, formatted.String(), "Average Comprehension Rating:\t4.50\n")
}

func TestApp_Serve(t *testing.T) {
	logger := zaptest.NewLogger(t)

	cfg := testConfig(writeFile(t, "feedback.csv", surveyCSV))
	cfg.GRPCPort = freePort(t)
	cfg.MetricsAddr = "127.0.0.1:0"

	application, err := NewApp(context.Background(), cfg, logger)
	require.NoError(t, err)

	assert.Equal(t, cfg.GRPCPort, application.GRPCAddr().(*net.TCPAddr).Port)

	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)
	go func() { served <- application.Serve(ctx) }()

	conn, err := grpc.NewClient(fmt.Sprintf("127.0.0.1:%d", cfg.GRPCPort), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	callCtx, callCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer callCancel()

	resp, err := handler.GetReport(callCtx, conn, grpc.WaitForReady(true))
	require.NoError(t, err)
	assert.Equal(t, cfg.FilePath, resp.Fields["source"].GetStringValue())
	assert.Len(t, resp.Fields["questions"].GetListValue().GetValues(), 4)

	metricsURL := "http://" + application.MetricsAddr().String()
	require.Eventually(t, func() bool {
		res, err := http.Get(metricsURL + "/healthz")
		if err != nil {
			return false
		}
		res.Body.Close()
		return res.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	res, err := http.Get(metricsURL + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(res.Body)
	res.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), "feedback_report_built_total 1")
	assert.Contains(t, string(body), `feedback_report_responses_tallied_total{question="Experience"} 3`)

	cancel()
	select {
	case err := <-served:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestNewApp_UnreachableCache(t *testing.T) {
	cfg := testConfig(writeFile(t, "feedback.csv", surveyCSV))
	cfg.GRPCPort = freePort(t)
	cfg.RedisAddr = "127.0.0.1:1"

	_, err := NewApp(context.Background(), cfg, zaptest.NewLogger(t))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache init failed")
}

func TestNewApp_BadMetricsAddr(t *testing.T) {
	cfg := testConfig(writeFile(t, "feedback.csv", surveyCSV))
	cfg.GRPCPort = freePort(t)
	cfg.MetricsAddr = "256.0.0.1:bad"

	_, err := NewApp(context.Background(), cfg, zaptest.NewLogger(t))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "metrics address")
}
