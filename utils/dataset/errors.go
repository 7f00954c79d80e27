package dataset

import "fmt"

// FormatError represents a malformed or unusable dataset file.
type FormatError struct {
	Reason string
}

func (e FormatError) Error() string {
	return fmt.Sprintf("dataset format error: %s", e.Reason)
}
