// Package report exports analysis results for use outside the workbench:
// CSV files for spreadsheets and plain-text summaries for the clipboard.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/scottierieh/statistica-frontend-sub010/utils/statsapi"
)

// WriteCSV writes the result's metrics and tables as CSV sections.
func WriteCSV(w io.Writer, result *statsapi.Result) error {
	if result == nil {
		return NoResultError{}
	}
	cw := csv.NewWriter(w)

	if len(result.Metrics) > 0 {
		if err := cw.Write([]string{"metric", "value"}); err != nil {
			return fmt.Errorf("write metrics header: %w", err)
		}
		for _, name := range sortedMetricNames(result) {
			value := strconv.FormatFloat(result.Metrics[name], 'g', -1, 64)
			if err := cw.Write([]string{name, value}); err != nil {
				return fmt.Errorf("write metric %q: %w", name, err)
			}
		}
	}

	for _, table := range result.Tables {
		if err := cw.Write([]string{table.Title}); err != nil {
			return fmt.Errorf("write table title: %w", err)
		}
		if err := cw.Write(table.Columns); err != nil {
			return fmt.Errorf("write table header: %w", err)
		}
		for _, row := range table.Rows {
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write table row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the result to a new CSV file at path.
func SaveCSV(path string, result *statsapi.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := WriteCSV(f, result); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Summary renders a compact plain-text digest of the result.
func Summary(result *statsapi.Result) string {
	if result == nil {
		return ""
	}
	var b strings.Builder
	if result.Analysis != "" {
		fmt.Fprintf(&b, "Analysis: %s\n", result.Analysis)
	}
	for _, name := range sortedMetricNames(result) {
		fmt.Fprintf(&b, "%s: %g\n", name, result.Metrics[name])
	}
	if result.Interpretation != "" {
		b.WriteString("\n")
		b.WriteString(strings.TrimSpace(result.Interpretation))
		b.WriteString("\n")
	}
	return b.String()
}

// MetricLines renders the result's metrics as "name = value" lines in
// alphabetical order.
func MetricLines(result *statsapi.Result) string {
	if result == nil {
		return ""
	}
	lines := make([]string, 0, len(result.Metrics))
	for _, name := range sortedMetricNames(result) {
		lines = append(lines, fmt.Sprintf("%s = %g", name, result.Metrics[name]))
	}
	return strings.Join(lines, "\n")
}

// CopySummary places the plain-text digest on the system clipboard.
func CopySummary(result *statsapi.Result) error {
	if result == nil {
		return NoResultError{}
	}
	if err := clipboard.WriteAll(Summary(result)); err != nil {
		return fmt.Errorf("copy summary: %w", err)
	}
	return nil
}

func sortedMetricNames(result *statsapi.Result) []string {
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
