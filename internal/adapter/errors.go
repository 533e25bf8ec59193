// Package adapter converts a validated widget envelope into a structured
// CV document, grouping, filtering, sorting, and enriching from the
// source profile.
package adapter

import "fmt"

// Error represents an error during widget-to-CV conversion
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}
