package helpdocs

import "fmt"

// UnknownTopicError occurs when a help topic id has no embedded document.
type UnknownTopicError struct {
	ID string
}

func (e UnknownTopicError) Error() string {
	return fmt.Sprintf("help topic %q not found", e.ID)
}
