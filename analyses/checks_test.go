package analyses

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scottierieh/statistica-frontend-sub010/utils/dataset"
)

const checksCSV = `age,income,region,defaulted
34,52000,north,no
29,48000,south,yes
51,91000,north,no
`

func checksDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Parse("loans", []byte(checksCSV))
	require.NoError(t, err)
	return ds
}

func TestCheckDatasetLoaded(t *testing.T) {
	t.Parallel()

	require.False(t, CheckDatasetLoaded(Inputs{}).Passed)

	check := CheckDatasetLoaded(Inputs{Dataset: checksDataset(t)})
	require.True(t, check.Passed)
	require.Contains(t, check.Detail, "loans")
}

func TestCheckMinRows(t *testing.T) {
	t.Parallel()

	in := Inputs{Dataset: checksDataset(t)}
	require.True(t, CheckMinRows(in, 3).Passed)
	require.False(t, CheckMinRows(in, 4).Passed)
	require.False(t, CheckMinRows(Inputs{}, 1).Passed)
}

func TestCheckTarget(t *testing.T) {
	t.Parallel()

	ds := checksDataset(t)

	require.False(t, CheckTargetSelected(Inputs{Dataset: ds}).Passed)
	require.False(t, CheckTargetSelected(Inputs{Dataset: ds, Target: "nope"}).Passed)
	require.True(t, CheckTargetSelected(Inputs{Dataset: ds, Target: "defaulted"}).Passed)

	require.True(t, CheckTargetCategorical(Inputs{Dataset: ds, Target: "defaulted"}).Passed)
	require.False(t, CheckTargetCategorical(Inputs{Dataset: ds, Target: "age"}).Passed)

	require.True(t, CheckTargetNumeric(Inputs{Dataset: ds, Target: "income"}).Passed)
	require.False(t, CheckTargetNumeric(Inputs{Dataset: ds, Target: "region"}).Passed)
}

func TestCheckMinSelected(t *testing.T) {
	t.Parallel()

	ds := checksDataset(t)

	check := CheckMinSelected(Inputs{Dataset: ds, Selected: []string{"age", "income"}}, 2, "features")
	require.True(t, check.Passed)

	require.False(t, CheckMinSelected(Inputs{Dataset: ds, Selected: []string{"age"}}, 2, "features").Passed)
	require.False(t, CheckMinSelected(Inputs{Dataset: ds, Selected: []string{"nope"}}, 1, "features").Passed)

	// The target must not double as a feature.
	check = CheckMinSelected(Inputs{Dataset: ds, Target: "age", Selected: []string{"age"}}, 1, "features")
	require.False(t, check.Passed)
}

func TestCheckSelectedNumeric(t *testing.T) {
	t.Parallel()

	ds := checksDataset(t)
	require.True(t, CheckSelectedNumeric(Inputs{Dataset: ds, Selected: []string{"age", "income"}}).Passed)
	require.False(t, CheckSelectedNumeric(Inputs{Dataset: ds, Selected: []string{"age", "region"}}).Passed)
}

func TestCheckParamRanges(t *testing.T) {
	t.Parallel()

	in := Inputs{Params: map[string]string{"paths": "5000", "alpha": "0.05"}}

	require.True(t, CheckParamInt(in, "paths", "Paths", "1000", 1000, 10000).Passed)
	require.False(t, CheckParamInt(in, "paths", "Paths", "1000", 6000, 10000).Passed)
	require.False(t, CheckParamInt(Inputs{Params: map[string]string{"paths": "lots"}}, "paths", "Paths", "1000", 0, 10000).Passed)

	require.True(t, CheckParamFloat(in, "alpha", "Alpha", "0.05", 0.001, 0.2).Passed)
	require.False(t, CheckParamFloat(in, "alpha", "Alpha", "0.05", 0.1, 0.2).Passed)

	// Unset parameters fall back to their defaults.
	require.True(t, CheckParamFloat(Inputs{}, "alpha", "Alpha", "0.05", 0.001, 0.2).Passed)
}

func TestInputsParamFallback(t *testing.T) {
	t.Parallel()

	in := Inputs{Params: map[string]string{"kernel": "  rbf  ", "empty": "   "}}
	require.Equal(t, "rbf", in.Param("kernel", "linear"))
	require.Equal(t, "linear", in.Param("empty", "linear"))
	require.Equal(t, "linear", in.Param("missing", "linear"))
}

func TestColumnPayload(t *testing.T) {
	t.Parallel()

	ds := checksDataset(t)
	payload := ColumnPayload(Inputs{Dataset: ds, Selected: []string{"age", "region", "nope"}})
	require.Len(t, payload, 2)
	require.Equal(t, []string{"34", "29", "51"}, payload["age"])
	require.Equal(t, []string{"north", "south", "north"}, payload["region"])
}
