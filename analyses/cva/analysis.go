// Package cva configures and submits CVA/DVA credit-risk simulations.
package cva

import (
	"context"
	"fmt"
	"strconv"

	"github.com/scottierieh/statistica-frontend-sub010/analyses"
	"github.com/scottierieh/statistica-frontend-sub010/utils/statsapi"
	"github.com/scottierieh/statistica-frontend-sub010/wizard"
)

const (
	analysisID = "cva"

	// Parameter identifiers
	ParamPaths              = "paths"
	ParamHorizon            = "horizon"
	ParamCounterpartySpread = "counterparty_spread"
	ParamOwnSpread          = "own_spread"

	defaultPaths              = "10000"
	defaultHorizon            = "1.0"
	defaultCounterpartySpread = "100"
	defaultOwnSpread          = "80"

	minPaths = 1000
	maxPaths = 1000000
)

// Analysis submits Monte Carlo CVA/DVA simulations to the statistica API.
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
		Title:       "CVA / DVA Simulation",
		Description: "Monte Carlo credit and debit valuation adjustments for exposure columns.",
		Tags:        []string{"credit-risk", "simulation"},
	}
}

func (a *Analysis) WizardConfig() wizard.Config {
	return analyses.StandardSteps()
}

func (a *Analysis) Params() []analyses.ParamDefinition {
	return []analyses.ParamDefinition{
		{
			ID:          ParamPaths,
			Label:       "Simulation paths",
			Description: "Number of Monte Carlo scenarios.",
			Kind:        analyses.ParamKindNumber,
			Required:    true,
			Default:     defaultPaths,
		},
		{
			ID:          ParamHorizon,
			Label:       "Horizon (years)",
			Description: "Simulation horizon.",
			Kind:        analyses.ParamKindNumber,
			Default:     defaultHorizon,
		},
		{
			ID:          ParamCounterpartySpread,
			Label:       "Counterparty spread (bp)",
			Description: "Flat CDS spread used for counterparty default probabilities.",
			Kind:        analyses.ParamKindNumber,
			Default:     defaultCounterpartySpread,
		},
		{
			ID:          ParamOwnSpread,
			Label:       "Own spread (bp)",
			Description: "Flat CDS spread used for own default probabilities (DVA).",
			Kind:        analyses.ParamKindNumber,
			Default:     defaultOwnSpread,
		},
	}
}

func (a *Analysis) Checks(in analyses.Inputs) []wizard.ValidationCheck {
	return []wizard.ValidationCheck{
		analyses.CheckDatasetLoaded(in),
		analyses.CheckMinSelected(in, 1, "exposure columns"),
		analyses.CheckSelectedNumeric(in),
		analyses.CheckParamInt(in, ParamPaths, "Path count in range", defaultPaths, minPaths, maxPaths),
		analyses.CheckParamFloat(in, ParamHorizon, "Horizon in range", defaultHorizon, 0.1, 30),
		analyses.CheckParamInt(in, ParamCounterpartySpread, "Counterparty spread in range", defaultCounterpartySpread, 1, 5000),
		analyses.CheckParamInt(in, ParamOwnSpread, "Own spread in range", defaultOwnSpread, 1, 5000),
	}
}

type request struct {
	Exposures          map[string][]float64 `json:"exposures"`
	Paths              int                  `json:"paths"`
	HorizonYears       float64              `json:"horizon_years"`
	CounterpartySpread int                  `json:"counterparty_spread_bp"`
	OwnSpread          int                  `json:"own_spread_bp"`
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

	paths, err := strconv.Atoi(in.Param(ParamPaths, defaultPaths))
	if err != nil {
		return nil, fmt.Errorf("parse paths: %w", err)
	}
	horizon, err := strconv.ParseFloat(in.Param(ParamHorizon, defaultHorizon), 64)
	if err != nil {
		return nil, fmt.Errorf("parse horizon: %w", err)
	}
	ccySpread, err := strconv.Atoi(in.Param(ParamCounterpartySpread, defaultCounterpartySpread))
	if err != nil {
		return nil, fmt.Errorf("parse counterparty spread: %w", err)
	}
	ownSpread, err := strconv.Atoi(in.Param(ParamOwnSpread, defaultOwnSpread))
	if err != nil {
		return nil, fmt.Errorf("parse own spread: %w", err)
	}

	return a.client.Run(ctx, analysisID, request{
		Exposures:          exposures,
		Paths:              paths,
		HorizonYears:       horizon,
		CounterpartySpread: ccySpread,
		OwnSpread:          ownSpread,
	})
}
