package errors

import (
	"fmt"
	"time"
)

// OperationalError represents enhanced error information for debugging.
//
// It wraps errors with operational context including the diagram ID, the
// block ID if one is involved, and a timestamp. This enables better error
// tracking when a template fetch or simulation run fails mid-session.
type OperationalError struct {
	Operation  string                 // What operation was being performed
	DiagramID  string                 // Which diagram
	BlockID    string                 // Which block (if applicable)
	Timestamp  time.Time              // When error occurred
	Attributes map[string]interface{} // Additional context (optional)
	Cause      error                  // Underlying error
}

// NewOperationalError creates an OperationalError wrapping an error.
//
// Returns nil if cause is nil (no error to wrap).
func NewOperationalError(operation, diagramID, blockID string, cause error) *OperationalError {
	if cause == nil {
		return nil
	}

	return &OperationalError{
		Operation: operation,
		DiagramID: diagramID,
		BlockID:   blockID,
		Timestamp: time.Now(),
		Cause:     cause,
	}
}

// NewOperationalErrorWithAttrs creates an OperationalError with additional
// attributes attached for debugging.
func NewOperationalErrorWithAttrs(operation, diagramID, blockID string, cause error, attrs map[string]interface{}) *OperationalError {
	if cause == nil {
		return nil
	}

	return &OperationalError{
		Operation:  operation,
		DiagramID:  diagramID,
		BlockID:    blockID,
		Timestamp:  time.Now(),
		Attributes: attrs,
		Cause:      cause,
	}
}

// Error implements the error interface
func (e *OperationalError) Error() string {
	if e.BlockID != "" {
		return fmt.Sprintf("%s (diagram=%s block=%s): %v", e.Operation, e.DiagramID, e.BlockID, e.Cause)
	}
	if e.DiagramID != "" {
		return fmt.Sprintf("%s (diagram=%s): %v", e.Operation, e.DiagramID, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Operation, e.Cause)
}

// Unwrap returns the underlying error for errors.Is / errors.As
func (e *OperationalError) Unwrap() error {
	return e.Cause
}
