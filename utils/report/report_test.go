package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scottierieh/statistica-frontend-sub010/utils/statsapi"
)

func sampleResult() *statsapi.Result {
	return &statsapi.Result{
		Analysis: "naive-bayes",
		Metrics: map[string]float64{
			"accuracy":  0.91,
			"precision": 0.88,
		},
		Interpretation: "The classifier separates the groups well.",
		Tables: []statsapi.Table{
			{
				Title:   "Confusion Matrix",
				Columns: []string{"", "yes", "no"},
				Rows:    [][]string{{"yes", "40", "3"}, {"no", "5", "52"}},
			},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResult()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Equal(t, "metric,value", lines[0])
	require.Equal(t, "accuracy,0.91", lines[1])
	require.Equal(t, "precision,0.88", lines[2])
	require.Equal(t, "Confusion Matrix", lines[3])
	require.Equal(t, ",yes,no", lines[4])
	require.Equal(t, "yes,40,3", lines[5])
}

func TestWriteCSVRequiresResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := WriteCSV(&buf, nil)
	require.IsType(t, NoResultError{}, err)
	require.Zero(t, buf.Len())
}

func TestSaveCSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "result.csv")
	require.NoError(t, SaveCSV(path, sampleResult()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), "accuracy,0.91")
}

func TestMetricLines(t *testing.T) {
	t.Parallel()

	lines := strings.Split(MetricLines(sampleResult()), "\n")
	require.Equal(t, []string{"accuracy = 0.91", "precision = 0.88"}, lines)

	require.Empty(t, MetricLines(nil))
}

func TestSummary(t *testing.T) {
	t.Parallel()

	text := Summary(sampleResult())
	require.Contains(t, text, "Analysis: naive-bayes")
	require.Contains(t, text, "accuracy: 0.91")
	require.Contains(t, text, "separates the groups well")

	require.Empty(t, Summary(nil))
}
