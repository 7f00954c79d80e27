package report

// NoResultError occurs when an export is requested before any successful run.
type NoResultError struct{}

func (NoResultError) Error() string {
	return "no analysis result to export"
}
