// Package naivebayes configures and submits Naive Bayes classification runs.
package naivebayes

import (
	"context"
	"fmt"
	"strconv"

	"github.com/scottierieh/statistica-frontend-sub010/analyses"
	"github.com/scottierieh/statistica-frontend-sub010/utils/statsapi"
	"github.com/scottierieh/statistica-frontend-sub010/wizard"
)

const (
	analysisID = "naive-bayes"

	// Parameter identifiers
	ParamSmoothing = "smoothing"
	ParamSplit     = "split"

	defaultSmoothing = "1.0"
	defaultSplit     = "0.8"

	minRows = 30
)

// Analysis submits Naive Bayes classification to the statistica API.
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
		Title:       "Naive Bayes",
		Description: "Classify a categorical target from selected feature columns.",
		Tags:        []string{"classification", "supervised"},
	}
}

func (a *Analysis) WizardConfig() wizard.Config {
	return analyses.StandardSteps()
}

func (a *Analysis) Params() []analyses.ParamDefinition {
	return []analyses.ParamDefinition{
		{
			ID:          ParamSmoothing,
			Label:       "Laplace smoothing",
			Description: "Smoothing constant for categorical likelihoods; 0 disables smoothing.",
			Kind:        analyses.ParamKindNumber,
			Default:     defaultSmoothing,
		},
		{
			ID:          ParamSplit,
			Label:       "Training split",
			Description: "Fraction of rows used for training; the rest is held out for evaluation.",
			Kind:        analyses.ParamKindNumber,
			Default:     defaultSplit,
		},
	}
}

func (a *Analysis) Checks(in analyses.Inputs) []wizard.ValidationCheck {
	return []wizard.ValidationCheck{
		analyses.CheckDatasetLoaded(in),
		analyses.CheckMinRows(in, minRows),
		analyses.CheckTargetSelected(in),
		analyses.CheckTargetCategorical(in),
		analyses.CheckMinSelected(in, 1, "features"),
		analyses.CheckParamFloat(in, ParamSmoothing, "Smoothing in range", defaultSmoothing, 0, 100),
		analyses.CheckParamFloat(in, ParamSplit, "Training split in range", defaultSplit, 0.5, 0.95),
	}
}

type request struct {
	Target    string              `json:"target"`
	Labels    []string            `json:"labels"`
	Features  map[string][]string `json:"features"`
	Smoothing float64             `json:"smoothing"`
	Split     float64             `json:"split"`
}

func (a *Analysis) Run(ctx context.Context, in analyses.Inputs) (*statsapi.Result, error) {
	target, ok := in.Dataset.Column(in.Target)
	if !ok {
		return nil, fmt.Errorf("target column %q not in dataset", in.Target)
	}
	smoothing, err := strconv.ParseFloat(in.Param(ParamSmoothing, defaultSmoothing), 64)
	if err != nil {
		return nil, fmt.Errorf("parse smoothing: %w", err)
	}
	split, err := strconv.ParseFloat(in.Param(ParamSplit, defaultSplit), 64)
	if err != nil {
		return nil, fmt.Errorf("parse split: %w", err)
	}

	return a.client.Run(ctx, analysisID, request{
		Target:    in.Target,
		Labels:    target.Values,
		Features:  analyses.ColumnPayload(in),
		Smoothing: smoothing,
		Split:     split,
	})
}
