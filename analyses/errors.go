package analyses

import "fmt"

// DuplicateAnalysisError occurs when an analysis with an existing ID is registered.
type DuplicateAnalysisError struct {
	ID string
}

func (e DuplicateAnalysisError) Error() string {
	return fmt.Sprintf("analysis with id %q already registered", e.ID)
}

// ValidationError represents invalid registry/analysis configuration.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("analysis validation failed: %s", e.Reason)
}
