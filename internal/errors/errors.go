package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// PersonNotFound indicates a referenced person id or name doesn't exist
	PersonNotFound ErrorCode = "PERSON_NOT_FOUND"
	// RelationshipNotFound indicates a referenced relationship id doesn't exist
	RelationshipNotFound ErrorCode = "RELATIONSHIP_NOT_FOUND"
	// NoPath indicates no route was found within depth/terminal constraints.
	// This is a normal, expected outcome, not a failure.
	NoPath ErrorCode = "NO_PATH"
	// DuplicateIgnored indicates an existing relationship was returned instead
	// of creating a second record for the same ordered pair and type
	DuplicateIgnored ErrorCode = "DUPLICATE_IGNORED"
	// InvalidInput indicates a malformed argument (unknown relationship type,
	// unknown gender, empty name)
	InvalidInput ErrorCode = "INVALID_INPUT"
	// ImportInvalid indicates a snapshot payload failed validation
	ImportInvalid ErrorCode = "IMPORT_INVALID"
	// StorageFailure indicates the persistence collaborator rejected a write.
	// The in-memory state is unchanged when this is returned.
	StorageFailure ErrorCode = "STORAGE_FAILURE"
	// DecryptFailed indicates a snapshot could not be unsealed (wrong
	// passphrase or corrupted file)
	DecryptFailed ErrorCode = "DECRYPT_FAILED"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// OpenDocs suggests opening documentation
	OpenDocs FixActionType = "open-docs"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url,omitempty"`
}

// KinError represents a kin error with code, message, and suggestions
type KinError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates a new KinError
func New(code ErrorCode, message string, cause error) *KinError {
	return &KinError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: GetSuggestedFixes(code),
	}
}

// Error implements the error interface
func (e *KinError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *KinError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *KinError) WithDetails(details interface{}) *KinError {
	e.Details = details
	return e
}

// CodeOf extracts the stable error code from an error chain.
// Returns InternalError for non-kin errors and "" for nil.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	for e := err; e != nil; {
		if ke, ok := e.(*KinError); ok {
			return ke.Code
		}
		u, ok := e.(interface{ Unwrap() error })
		if !ok {
			break
		}
		e = u.Unwrap()
	}
	return InternalError
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	PersonNotFound: {
		{
			Type:        RunCommand,
			Command:     "kin person list",
			Safe:        true,
			Description: "List known people and their ids",
		},
	},
	InvalidInput: {
		{
			Type:        RunCommand,
			Command:     "kin relate --help",
			Safe:        true,
			Description: "Show accepted relationship types and genders",
		},
	},
	DecryptFailed: {
		{
			Type:        RunCommand,
			Command:     "kin import --passphrase <passphrase> <file>",
			Safe:        true,
			Description: "Retry the import with the passphrase used at export time",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
