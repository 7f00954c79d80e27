// Package influence configures and submits regression influence diagnostics.
package influence

import (
	"context"
	"fmt"

	"github.com/scottierieh/statistica-frontend-sub010/analyses"
	"github.com/scottierieh/statistica-frontend-sub010/utils/statsapi"
	"github.com/scottierieh/statistica-frontend-sub010/wizard"
)

const (
	analysisID = "influence"

	// Parameter identifiers
	ParamCutoffs = "cutoffs"

	cutoffConventional = "conventional"
	cutoffStrict       = "strict"

	defaultCutoffs = cutoffConventional

	minRows = 10
)

// Analysis submits influence diagnostics to the statistica API.
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
		Title:       "Influence Diagnostics",
		Description: "Flag observations that disproportionately drive a linear regression fit.",
		Tags:        []string{"regression", "diagnostics"},
	}
}

func (a *Analysis) WizardConfig() wizard.Config {
	return analyses.StandardSteps()
}

func (a *Analysis) Params() []analyses.ParamDefinition {
	return []analyses.ParamDefinition{
		{
			ID:          ParamCutoffs,
			Label:       "Flagging cutoffs",
			Description: "Conventional uses the textbook thresholds (e.g. Cook's D > 4/n); strict halves them.",
			Kind:        analyses.ParamKindSelect,
			Required:    true,
			Default:     defaultCutoffs,
			Options: []analyses.ParamOption{
				{Value: cutoffConventional, Label: "Conventional"},
				{Value: cutoffStrict, Label: "Strict"},
			},
		},
	}
}

func (a *Analysis) Checks(in analyses.Inputs) []wizard.ValidationCheck {
	checks := []wizard.ValidationCheck{
		analyses.CheckDatasetLoaded(in),
		analyses.CheckMinRows(in, minRows),
		analyses.CheckTargetSelected(in),
		analyses.CheckTargetNumeric(in),
		analyses.CheckMinSelected(in, 1, "predictors"),
		analyses.CheckSelectedNumeric(in),
	}
	checks = append(checks, a.checkCutoffs(in))
	return checks
}

func (a *Analysis) checkCutoffs(in analyses.Inputs) wizard.ValidationCheck {
	check := wizard.ValidationCheck{Label: "Cutoff policy selected"}
	policy := in.Param(ParamCutoffs, defaultCutoffs)
	switch policy {
	case cutoffConventional, cutoffStrict:
		check.Passed = true
		check.Detail = policy
	default:
		check.Detail = fmt.Sprintf("unknown policy %q", policy)
	}
	return check
}

type request struct {
	Response   string               `json:"response"`
	Values     []float64            `json:"values"`
	Predictors map[string][]float64 `json:"predictors"`
	Cutoffs    string               `json:"cutoffs"`
}

func (a *Analysis) Run(ctx context.Context, in analyses.Inputs) (*statsapi.Result, error) {
	response, ok := in.Dataset.Column(in.Target)
	if !ok {
		return nil, fmt.Errorf("response column %q not in dataset", in.Target)
	}
	values, err := response.Floats()
	if err != nil {
		return nil, err
	}

	predictors := make(map[string][]float64, len(in.Selected))
	for _, name := range in.Selected {
		col, ok := in.Dataset.Column(name)
		if !ok {
			return nil, fmt.Errorf("predictor column %q not in dataset", name)
		}
		floats, err := col.Floats()
		if err != nil {
			return nil, err
		}
		predictors[name] = floats
	}

	return a.client.Run(ctx, analysisID, request{
		Response:   in.Target,
		Values:     values,
		Predictors: predictors,
		Cutoffs:    in.Param(ParamCutoffs, defaultCutoffs),
	})
}
