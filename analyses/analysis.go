// Package analyses defines the catalog contract for the statistical methods
// the workbench can configure and submit. Each method declares its wizard
// shape, parameter fields, and validation checks; the actual computation is
// performed by the remote statistica API.
package analyses

import (
	"context"
	"strings"

	"github.com/scottierieh/statistica-frontend-sub010/utils/dataset"
	"github.com/scottierieh/statistica-frontend-sub010/utils/statsapi"
	"github.com/scottierieh/statistica-frontend-sub010/wizard"
)

// Analysis represents one method in the catalog.
type Analysis interface {
	Metadata() Metadata
	WizardConfig() wizard.Config
	Params() []ParamDefinition
	Checks(in Inputs) []wizard.ValidationCheck
	Run(ctx context.Context, in Inputs) (*statsapi.Result, error)
}

// Metadata contains descriptive information used by presentation layers.
type Metadata struct {
	ID          string
	Title       string
	Description string
	Tags        []string
}

// ParamKind identifies how a parameter should be rendered.
type ParamKind string

const (
	ParamKindText   ParamKind = "text"
	ParamKindNumber ParamKind = "number"
	ParamKindSelect ParamKind = "select"
)

// ParamDefinition describes one setting collected at the Parameters step.
type ParamDefinition struct {
	ID          string
	Label       string
	Description string
	Kind        ParamKind
	Required    bool
	Options     []ParamOption
	Default     string
}

// ParamOption represents a selectable value.
type ParamOption struct {
	Value string
	Label string
}

// Inputs is the host-owned configuration an analysis runs against.
type Inputs struct {
	Dataset  *dataset.Dataset
	Target   string
	Selected []string
	Params   map[string]string
}

// Param returns the trimmed value for a parameter id, falling back to def
// when unset.
func (in Inputs) Param(id, def string) string {
	if v, ok := in.Params[id]; ok {
		v = strings.TrimSpace(v)
		if v != "" {
			return v
		}
	}
	return def
}

// ColumnPayload collects the selected columns' values keyed by column name,
// the shape every analysis endpoint accepts for its data block.
func ColumnPayload(in Inputs) map[string][]string {
	payload := make(map[string][]string, len(in.Selected))
	for _, name := range in.Selected {
		if col, ok := in.Dataset.Column(name); ok {
			payload[name] = col.Values
		}
	}
	return payload
}
