package domain

import (
	"errors"
	"fmt"
)

// ErrAnalysisNotFound is returned when no cached analysis exists for a URL.
var ErrAnalysisNotFound = errors.New("analysis not found")

// ConfigurationError reports a missing credential or setting. It is fatal to
// the feature that needs the setting, not to the process.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration missing: %s", e.Setting)
}

// DatabaseError wraps a storage-layer fault. Callers must treat it as a hard
// stop for the current analysis rather than defaulting to an empty result.
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database error during %s: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// APIError reports a third-party collaborator failure. Status carries the
// HTTP status when one was received, 0 otherwise. Collaborator failures are
// never retried automatically.
type APIError struct {
	Collaborator string
	Status       int
	Message      string
	Err          error
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s API error (status %d): %s", e.Collaborator, e.Status, e.Message)
	}
	return fmt.Sprintf("%s API error: %s", e.Collaborator, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// InvalidModelOutputError reports model output that could not be parsed into
// a verdict. Raw carries the unparsed text for diagnostics.
type InvalidModelOutputError struct {
	Reason string
	Raw    string
}

func (e *InvalidModelOutputError) Error() string {
	return fmt.Sprintf("invalid model output: %s", e.Reason)
}
