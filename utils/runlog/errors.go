package runlog

import "fmt"

// UnknownRunError occurs when an outcome is recorded for a run id that was
// never begun (or belongs to another database).
type UnknownRunError struct {
	ID string
}

func (e UnknownRunError) Error() string {
	return fmt.Sprintf("run %q not found in run log", e.ID)
}
