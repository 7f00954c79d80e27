// Package friedman configures and submits Friedman rank tests.
package friedman

import (
	"context"
	"strconv"

	"github.com/scottierieh/statistica-frontend-sub010/analyses"
	"github.com/scottierieh/statistica-frontend-sub010/utils/statsapi"
	"github.com/scottierieh/statistica-frontend-sub010/wizard"
)

const (
	analysisID = "friedman"

	// Parameter identifiers
	ParamAlpha = "alpha"

	defaultAlpha = "0.05"

	minRows        = 5
	minMeasurement = 3
)

// Analysis submits Friedman tests to the statistica API.
type Analysis struct {
	client *statsapi.Client
}

// New creates the analysis bound to an API client.
func New(client *statsapi.Client) *Analysis {
	return &Analysis{client: client}
}

func (a *Analysis) Metadata() analyses.Metadata {
	return analyses.Metadata{
		ID:          analysisID,
		Title:       "Friedman Test",
		Description: "Non-parametric test for differences between related measurement columns.",
		Tags:        []string{"hypothesis-test", "non-parametric"},
	}
}

func (a *Analysis) WizardConfig() wizard.Config {
	return analyses.StandardSteps()
}

func (a *Analysis) Params() []analyses.ParamDefinition {
	return []analyses.ParamDefinition{
		{
			ID:          ParamAlpha,
			Label:       "Significance level",
			Description: "Alpha used to decide whether to reject the null hypothesis.",
			Kind:        analyses.ParamKindSelect,
			Required:    true,
			Default:     defaultAlpha,
			Options: []analyses.ParamOption{
				{Value: "0.01", Label: "0.01"},
				{Value: "0.05", Label: "0.05"},
				{Value: "0.10", Label: "0.10"},
			},
		},
	}
}

func (a *Analysis) Checks(in analyses.Inputs) []wizard.ValidationCheck {
	return []wizard.ValidationCheck{
		analyses.CheckDatasetLoaded(in),
		analyses.CheckMinRows(in, minRows),
		analyses.CheckMinSelected(in, minMeasurement, "measurement columns"),
		analyses.CheckSelectedNumeric(in),
		analyses.CheckParamFloat(in, ParamAlpha, "Significance level in range", defaultAlpha, 0.001, 0.2),
	}
}

type request struct {
	Measurements map[string][]float64 `json:"measurements"`
	Alpha        float64              `json:"alpha"`
}

func (a *Analysis) Run(ctx context.Context, in analyses.Inputs) (*statsapi.Result, error) {
	measurements := make(map[string][]float64, len(in.Selected))
	for _, name := range in.Selected {
		col, ok := in.Dataset.Column(name)
		if !ok {
			continue
		}
		values, err := col.Floats()
		if err != nil {
			return nil, err
		}
		measurements[name] = values
	}

	alpha, err := strconv.ParseFloat(in.Param(ParamAlpha, defaultAlpha), 64)
	if err != nil {
		alpha = 0.05
	}

	return a.client.Run(ctx, analysisID, request{
		Measurements: measurements,
		Alpha:        alpha,
	})
}
