package naivebayes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scottierieh/statistica-frontend-sub010/analyses"
	"github.com/scottierieh/statistica-frontend-sub010/utils/dataset"
	"github.com/scottierieh/statistica-frontend-sub010/utils/statsapi"
	"github.com/scottierieh/statistica-frontend-sub010/wizard"
)

func testDataset(t *testing.T, rows int) *dataset.Dataset {
	t.Helper()
	var b strings.Builder
	b.WriteString("age,income,region,defaulted\n")
	for i := 0; i < rows; i++ {
		outcome := "no"
		if i%3 == 0 {
			outcome = "yes"
		}
		fmt.Fprintf(&b, "%d,%d,north,%s\n", 25+i, 40000+i*500, outcome)
	}
	ds, err := dataset.Parse("loans", []byte(b.String()))
	require.NoError(t, err)
	return ds
}

func validInputs(t *testing.T) analyses.Inputs {
	t.Helper()
	return analyses.Inputs{
		Dataset:  testDataset(t, 32),
		Target:   "defaulted",
		Selected: []string{"age", "income"},
	}
}

func TestChecksPassWithValidInputs(t *testing.T) {
	t.Parallel()

	a := New(nil)
	checks := a.Checks(validInputs(t))
	require.True(t, wizard.AllPassed(checks), "failed: %v", wizard.FailedChecks(checks))
}

func TestChecksFailOnSmallOrMisconfiguredDataset(t *testing.T) {
	t.Parallel()

	a := New(nil)

	in := validInputs(t)
	in.Dataset = testDataset(t, 10)
	require.False(t, wizard.AllPassed(a.Checks(in)))

	in = validInputs(t)
	in.Target = "age"
	require.False(t, wizard.AllPassed(a.Checks(in)))

	in = validInputs(t)
	in.Params = map[string]string{ParamSplit: "0.99"}
	require.False(t, wizard.AllPassed(a.Checks(in)))
}

func TestRunPostsConfiguredRequest(t *testing.T) {
	t.Parallel()

	var gotPath string
	var got request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(statsapi.Result{
			Analysis: "naive-bayes",
			Metrics:  map[string]float64{"accuracy": 0.9},
		})
	}))
	defer server.Close()

	client, err := statsapi.New(server.URL)
	require.NoError(t, err)

	in := validInputs(t)
	in.Params = map[string]string{ParamSmoothing: "0.5"}

	result, err := New(client).Run(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, "/api/analysis/naive-bayes", gotPath)
	require.Equal(t, "defaulted", got.Target)
	require.Len(t, got.Labels, 32)
	require.Len(t, got.Features, 2)
	require.InDelta(t, 0.5, got.Smoothing, 1e-9)
	require.InDelta(t, 0.8, got.Split, 1e-9)

	accuracy, ok := result.Metric("accuracy")
	require.True(t, ok)
	require.InDelta(t, 0.9, accuracy, 1e-9)
}
