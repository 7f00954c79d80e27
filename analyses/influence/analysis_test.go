package influence

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

func validInputs(t *testing.T) analyses.Inputs {
	t.Helper()
	var b strings.Builder
	b.WriteString("price,sqft,rooms,city\n")
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&b, "%d,%d,%d,metro\n", 200000+i*9000, 900+i*40, 2+i%3)
	}
	ds, err := dataset.Parse("housing", []byte(b.String()))
	require.NoError(t, err)
	return analyses.Inputs{
		Dataset:  ds,
		Target:   "price",
		Selected: []string{"sqft", "rooms"},
	}
}

func TestChecksPassWithValidInputs(t *testing.T) {
	t.Parallel()

	checks := New(nil).Checks(validInputs(t))
	require.True(t, wizard.AllPassed(checks), "failed: %v", wizard.FailedChecks(checks))
}

func TestChecksRequireNumericResponse(t *testing.T) {
	t.Parallel()

	a := New(nil)

	in := validInputs(t)
	in.Target = "city"
	require.False(t, wizard.AllPassed(a.Checks(in)))

	in = validInputs(t)
	in.Params = map[string]string{ParamCutoffs: "loose"}
	require.False(t, wizard.AllPassed(a.Checks(in)))
}

func TestRunPostsRegressionSpec(t *testing.T) {
	t.Parallel()

	var got request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/analysis/influence", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(statsapi.Result{Analysis: "influence"})
	}))
	defer server.Close()

	client, err := statsapi.New(server.URL)
	require.NoError(t, err)

	_, err = New(client).Run(context.Background(), validInputs(t))
	require.NoError(t, err)
	require.Equal(t, "price", got.Response)
	require.Len(t, got.Values, 12)
	require.Len(t, got.Predictors, 2)
	require.Equal(t, "conventional", got.Cutoffs)
}
