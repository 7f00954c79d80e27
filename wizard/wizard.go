package wizard

import "context"

// Step identifies one screen of a configuration-then-results wizard.
// Steps are numbered 1..N in the order the host declares them.
type Step int

// StepInfo contains descriptive information used by presentation layers (e.g., TUI).
type StepInfo struct {
	Title       string
	Description string
	// ResultsTier marks a step that displays computed output. Results-tier
	// steps become reachable once a successful run exists, regardless of the
	// high-water mark. When false, steps at or after Config.ResultsStep are
	// treated as results tier anyway.
	ResultsTier bool
}

// Config describes the shape of a wizard: its ordered steps, the step whose
// "next" action submits the configured analysis, and the step shown first
// once a result exists.
type Config struct {
	Steps       []StepInfo
	SubmitStep  Step
	ResultsStep Step
}

// Count returns the number of configured steps.
func (c Config) Count() int {
	return len(c.Steps)
}

// Valid reports whether s names a configured step.
func (c Config) Valid(s Step) bool {
	return s >= 1 && int(s) <= len(c.Steps)
}

// Info returns the StepInfo for s, or a zero value for unknown steps.
func (c Config) Info(s Step) StepInfo {
	if !c.Valid(s) {
		return StepInfo{}
	}
	return c.Steps[s-1]
}

func (c Config) resultsTier(s Step) bool {
	if !c.Valid(s) {
		return false
	}
	return c.Steps[s-1].ResultsTier || s >= c.ResultsStep
}

func (c Config) validate() error {
	if len(c.Steps) == 0 {
		return ConfigError{Reason: "at least one step must be declared"}
	}
	if !c.Valid(c.SubmitStep) {
		return ConfigError{Reason: "submit step out of range"}
	}
	if !c.Valid(c.ResultsStep) {
		return ConfigError{Reason: "results step out of range"}
	}
	if c.ResultsStep <= c.SubmitStep {
		return ConfigError{Reason: "results step must follow the submit step"}
	}
	return nil
}

// State is the complete observable wizard state, replaced wholesale on each
// transition. MaxReached is monotonically non-decreasing for the lifetime of
// a controller generation; Current may move below it freely.
type State struct {
	Current    Step
	MaxReached Step
	HasResult  bool
	Submitting bool
}

// ValidationCheck is a named predicate over the host's current inputs,
// evaluated freshly whenever submission gating is consulted.
type ValidationCheck struct {
	Label  string
	Passed bool
	Detail string
}

// AllPassed reports whether every check passed.
func AllPassed(checks []ValidationCheck) bool {
	for _, c := range checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

// FailedChecks returns the subset of checks that did not pass.
func FailedChecks(checks []ValidationCheck) []ValidationCheck {
	var failed []ValidationCheck
	for _, c := range checks {
		if !c.Passed {
			failed = append(failed, c)
		}
	}
	return failed
}

// SubmitFunc performs the remote analysis call. It is invoked at most once
// per submission attempt and must honor ctx cancellation.
type SubmitFunc func(ctx context.Context) (any, error)

// CheckFunc evaluates the host's validation checks against its current inputs.
type CheckFunc func() []ValidationCheck

// Observer receives lifecycle callbacks as the wizard transitions.
type Observer interface {
	StepChanged(state State)
	SubmissionStarted(state State)
	SubmissionSettled(state State, err error)
}
