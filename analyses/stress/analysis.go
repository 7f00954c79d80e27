// Package stress configures and submits deterministic stress-test runs.
package stress

import (
	"context"
	"fmt"
	"strconv"

	"github.com/scottierieh/statistica-frontend-sub010/analyses"
	"github.com/scottierieh/statistica-frontend-sub010/utils/statsapi"
	"github.com/scottierieh/statistica-frontend-sub010/wizard"
)

const (
	analysisID = "stress"

	// Parameter identifiers
	ParamScenario = "scenario"
	ParamSeverity = "severity"

	scenarioRatesUp      = "rates_up"
	scenarioSpreadsWiden = "spreads_widen"
	scenarioCombined     = "combined"

	defaultScenario = scenarioCombined
	defaultSeverity = "1.0"
)

// Analysis submits stress-test scenarios to the statistica API.
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
		Title:       "Stress Testing",
		Description: "Revalue exposure columns under deterministic shock scenarios.",
		Tags:        []string{"credit-risk", "scenario"},
	}
}

func (a *Analysis) WizardConfig() wizard.Config {
	return analyses.StandardSteps()
}

func (a *Analysis) Params() []analyses.ParamDefinition {
	return []analyses.ParamDefinition{
		{
			ID:          ParamScenario,
			Label:       "Scenario",
			Description: "Named shock set applied to the selected exposures.",
			Kind:        analyses.ParamKindSelect,
			Required:    true,
			Default:     defaultScenario,
			Options: []analyses.ParamOption{
				{Value: scenarioRatesUp, Label: "Rates up"},
				{Value: scenarioSpreadsWiden, Label: "Spreads widening"},
				{Value: scenarioCombined, Label: "Combined"},
			},
		},
		{
			ID:          ParamSeverity,
			Label:       "Severity",
			Description: "Multiplier applied to the base shocks.",
			Kind:        analyses.ParamKindNumber,
			Default:     defaultSeverity,
		},
	}
}

func (a *Analysis) Checks(in analyses.Inputs) []wizard.ValidationCheck {
	checks := []wizard.ValidationCheck{
		analyses.CheckDatasetLoaded(in),
		analyses.CheckMinSelected(in, 1, "exposure columns"),
		analyses.CheckSelectedNumeric(in),
		analyses.CheckParamFloat(in, ParamSeverity, "Severity in range", defaultSeverity, 0.1, 5),
	}
	checks = append(checks, a.checkScenario(in))
	return checks
}

func (a *Analysis) checkScenario(in analyses.Inputs) wizard.ValidationCheck {
	check := wizard.ValidationCheck{Label: "Scenario selected"}
	scenario := in.Param(ParamScenario, defaultScenario)
	switch scenario {
	case scenarioRatesUp, scenarioSpreadsWiden, scenarioCombined:
		check.Passed = true
		check.Detail = scenario
	default:
		check.Detail = fmt.Sprintf("unknown scenario %q", scenario)
	}
	return check
}

type request struct {
	Exposures map[string][]float64 `json:"exposures"`
	Scenario  string               `json:"scenario"`
	Severity  float64              `json:"severity"`
}

func (a *Analysis) Run(ctx context.Context, in analyses.Inputs) (*statsapi.Result, error) {
	exposures := make(map[string][]float64, len(in.Selected))
	for _, name := range in.Selected {
		col, ok := in.Dataset.Column(name)
		if !ok {
			return nil, fmt.Errorf("exposure column %q not in dataset", name)
		}
		values, err := col.Floats()
		if err != nil {
			return nil, err
		}
		exposures[name] = values
	}

	severity, err := strconv.ParseFloat(in.Param(ParamSeverity, defaultSeverity), 64)
	if err != nil {
		return nil, fmt.Errorf("parse severity: %w", err)
	}

	return a.client.Run(ctx, analysisID, request{
		Exposures: exposures,
		Scenario:  in.Param(ParamScenario, defaultScenario),
		Severity:  severity,
	})
}
