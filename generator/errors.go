package generator

import (
	"fmt"
	"strings"
)

// ValidationError reports required form input that is missing or malformed.
// No completion call is made when it is returned.
type ValidationError struct {
	Fields []string
	Msg    string
}

func (e *ValidationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// MissingRequired is the warning shown when module name or user story is blank.
func MissingRequired() *ValidationError {
	return &ValidationError{
		Fields: []string{"Module Name", "User Story"},
		Msg:    "Please enter both Module Name and User Story / Issue details.",
	}
}

// TransportError wraps a failed completion call: network failure, timeout or a
// non-success HTTP status. StatusCode is zero when no response was received.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("completion request failed with status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("completion request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// EmptyResponseError means the call succeeded but produced nothing usable.
type EmptyResponseError struct {
	NoChoices bool
}

func (e *EmptyResponseError) Error() string {
	if e.NoChoices {
		return "AI response is empty. Try again."
	}
	return "AI returned empty content."
}
