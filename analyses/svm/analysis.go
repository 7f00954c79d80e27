// Package svm configures and submits support vector machine runs.
package svm

import (
	"context"
	"fmt"
	"strconv"

	"github.com/scottierieh/statistica-frontend-sub010/analyses"
	"github.com/scottierieh/statistica-frontend-sub010/utils/statsapi"
	"github.com/scottierieh/statistica-frontend-sub010/wizard"
)

const (
	analysisID = "svm"

	// Parameter identifiers
	ParamKernel = "kernel"
	ParamC      = "c"
	ParamGamma  = "gamma"

	defaultKernel = kernelRBF
	defaultC      = "1.0"
	defaultGamma  = "0.1"

	kernelLinear = "linear"
	kernelPoly   = "poly"
	kernelRBF    = "rbf"

	minRows = 20
)

// Analysis submits SVM classification to the statistica API.
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
		Title:       "Support Vector Machine",
		Description: "Classify a categorical target from numeric features with an SVM.",
		Tags:        []string{"classification", "supervised"},
	}
}

func (a *Analysis) WizardConfig() wizard.Config {
	return analyses.StandardSteps()
}

func (a *Analysis) Params() []analyses.ParamDefinition {
	return []analyses.ParamDefinition{
		{
			ID:          ParamKernel,
			Label:       "Kernel",
			Description: "Kernel function used for the decision boundary.",
			Kind:        analyses.ParamKindSelect,
			Required:    true,
			Default:     defaultKernel,
			Options: []analyses.ParamOption{
				{Value: kernelLinear, Label: "Linear"},
				{Value: kernelPoly, Label: "Polynomial"},
				{Value: kernelRBF, Label: "RBF"},
			},
		},
		{
			ID:          ParamC,
			Label:       "C",
			Description: "Regularization strength.",
			Kind:        analyses.ParamKindNumber,
			Default:     defaultC,
		},
		{
			ID:          ParamGamma,
			Label:       "Gamma",
			Description: "Kernel coefficient for RBF and polynomial kernels.",
			Kind:        analyses.ParamKindNumber,
			Default:     defaultGamma,
		},
	}
}

func (a *Analysis) Checks(in analyses.Inputs) []wizard.ValidationCheck {
	checks := []wizard.ValidationCheck{
		analyses.CheckDatasetLoaded(in),
		analyses.CheckMinRows(in, minRows),
		analyses.CheckTargetSelected(in),
		analyses.CheckTargetCategorical(in),
		analyses.CheckMinSelected(in, 2, "features"),
		analyses.CheckSelectedNumeric(in),
		analyses.CheckParamFloat(in, ParamC, "C in range", defaultC, 0.001, 1000),
		analyses.CheckParamFloat(in, ParamGamma, "Gamma in range", defaultGamma, 0.0001, 100),
	}
	checks = append(checks, a.checkKernel(in))
	return checks
}

func (a *Analysis) checkKernel(in analyses.Inputs) wizard.ValidationCheck {
	check := wizard.ValidationCheck{Label: "Kernel selected"}
	kernel := in.Param(ParamKernel, defaultKernel)
	switch kernel {
	case kernelLinear, kernelPoly, kernelRBF:
		check.Passed = true
		check.Detail = kernel
	default:
		check.Detail = fmt.Sprintf("unknown kernel %q", kernel)
	}
	return check
}

type request struct {
	Target   string               `json:"target"`
	Labels   []string             `json:"labels"`
	Features map[string][]float64 `json:"features"`
	Kernel   string               `json:"kernel"`
	C        float64              `json:"c"`
	Gamma    float64              `json:"gamma"`
}

func (a *Analysis) Run(ctx context.Context, in analyses.Inputs) (*statsapi.Result, error) {
	target, ok := in.Dataset.Column(in.Target)
	if !ok {
		return nil, fmt.Errorf("target column %q not in dataset", in.Target)
	}

	features := make(map[string][]float64, len(in.Selected))
	for _, name := range in.Selected {
		col, ok := in.Dataset.Column(name)
		if !ok {
			return nil, fmt.Errorf("feature column %q not in dataset", name)
		}
		values, err := col.Floats()
		if err != nil {
			return nil, err
		}
		features[name] = values
	}

	c, err := strconv.ParseFloat(in.Param(ParamC, defaultC), 64)
	if err != nil {
		return nil, fmt.Errorf("parse C: %w", err)
	}
	gamma, err := strconv.ParseFloat(in.Param(ParamGamma, defaultGamma), 64)
	if err != nil {
		return nil, fmt.Errorf("parse gamma: %w", err)
	}

	return a.client.Run(ctx, analysisID, request{
		Target:   in.Target,
		Labels:   target.Values,
		Features: features,
		Kernel:   in.Param(ParamKernel, defaultKernel),
		C:        c,
		Gamma:    gamma,
	})
}
