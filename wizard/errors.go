package wizard

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSuperseded reports that a submission settled after the controller was
// reset; its outcome was discarded.
var ErrSuperseded = errors.New("wizard: submission superseded by reset")

// ConfigError represents an invalid wizard configuration.
type ConfigError struct {
	Reason string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("wizard config invalid: %s", e.Reason)
}

// InvalidStepError occurs when a navigation call names a step outside 1..N.
type InvalidStepError struct {
	Step  Step
	Count int
}

func (e InvalidStepError) Error() string {
	return fmt.Sprintf("step %d out of range 1..%d", e.Step, e.Count)
}

// ChecksFailedError occurs when submission is attempted while one or more
// validation checks do not pass. The wizard state is left untouched.
type ChecksFailedError struct {
	Failed []ValidationCheck
}

func (e ChecksFailedError) Error() string {
	if len(e.Failed) == 0 {
		return "validation checks failed"
	}
	labels := make([]string, 0, len(e.Failed))
	for _, c := range e.Failed {
		labels = append(labels, c.Label)
	}
	return fmt.Sprintf("validation checks failed: %s", strings.Join(labels, ", "))
}

// SubmissionError wraps a failure reported by the injected submit function.
type SubmissionError struct {
	Err error
}

func (e SubmissionError) Error() string {
	return fmt.Sprintf("analysis submission failed: %v", e.Err)
}

func (e SubmissionError) Unwrap() error {
	return e.Err
}
