package statsapi

import "fmt"

// ConfigError represents invalid client configuration or arguments.
type ConfigError struct {
	Reason string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("statsapi: %s", e.Reason)
}

// APIError is a non-2xx response from the analysis service, carrying the
// human-readable reason from its {detail, error} payload.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("analysis API error (status %d): %s", e.Status, e.Detail)
}
