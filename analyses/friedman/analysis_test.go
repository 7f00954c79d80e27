package friedman

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scottierieh/statistica-frontend-sub010/analyses"
	"github.com/scottierieh/statistica-frontend-sub010/utils/dataset"
	"github.com/scottierieh/statistica-frontend-sub010/utils/statsapi"
	"github.com/scottierieh/statistica-frontend-sub010/wizard"
)

const measurementsCSV = `before,week1,week2,subject
12.1,11.4,10.9,s1
13.0,12.2,11.8,s2
11.7,11.9,10.2,s3
14.2,13.1,12.5,s4
12.8,12.0,11.1,s5
`

func validInputs(t *testing.T) analyses.Inputs {
	t.Helper()
	ds, err := dataset.Parse("trial", []byte(measurementsCSV))
	require.NoError(t, err)
	return analyses.Inputs{
		Dataset:  ds,
		Selected: []string{"before", "week1", "week2"},
	}
}

func TestChecksPassWithValidInputs(t *testing.T) {
	t.Parallel()

	checks := New(nil).Checks(validInputs(t))
	require.True(t, wizard.AllPassed(checks), "failed: %v", wizard.FailedChecks(checks))
}

func TestChecksRequireThreeNumericColumns(t *testing.T) {
	t.Parallel()

	a := New(nil)

	in := validInputs(t)
	in.Selected = []string{"before", "week1"}
	require.False(t, wizard.AllPassed(a.Checks(in)))

	in = validInputs(t)
	in.Selected = []string{"before", "week1", "subject"}
	require.False(t, wizard.AllPassed(a.Checks(in)))
}

func TestRunPostsMeasurements(t *testing.T) {
	t.Parallel()

	var got request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/analysis/friedman", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(statsapi.Result{
			Analysis: "friedman",
			Metrics:  map[string]float64{"chi_square": 7.6, "p_value": 0.022},
		})
	}))
	defer server.Close()

	client, err := statsapi.New(server.URL)
	require.NoError(t, err)

	in := validInputs(t)
	in.Params = map[string]string{ParamAlpha: "0.01"}

	result, err := New(client).Run(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, got.Measurements, 3)
	require.Len(t, got.Measurements["before"], 5)
	require.InDelta(t, 0.01, got.Alpha, 1e-9)

	p, ok := result.Metric("p_value")
	require.True(t, ok)
	require.InDelta(t, 0.022, p, 1e-9)
}
