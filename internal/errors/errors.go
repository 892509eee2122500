package errors

import (
	"errors"
	"fmt"
)

// ErrorCode is a stable identifier for a coderecon failure mode
type ErrorCode string

const (
	// RootUnreadable indicates the scan root exists but cannot be listed
	RootUnreadable ErrorCode = "ROOT_UNREADABLE"
	// SnapshotMissing indicates no current analysis snapshot exists
	SnapshotMissing ErrorCode = "SNAPSHOT_MISSING"
	// SnapshotCorrupt indicates a snapshot file could not be decoded
	SnapshotCorrupt ErrorCode = "SNAPSHOT_CORRUPT"
	// ConfigInvalid indicates the configuration failed validation
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// TargetNotFound indicates a slice target matched nothing
	TargetNotFound ErrorCode = "TARGET_NOT_FOUND"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixAction is a suggested remedy for an error
type FixAction struct {
	Command     string `json:"command,omitempty" yaml:"command,omitempty"`
	Description string `json:"description" yaml:"description"`
}

// ReconError carries a code, message, and suggested fixes
type ReconError struct {
	Code           ErrorCode   `json:"code" yaml:"code"`
	Message        string      `json:"message" yaml:"message"`
	Details        interface{} `json:"details,omitempty" yaml:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggested_fixes,omitempty" yaml:"suggested_fixes,omitempty"`
	cause          error
}

// New creates a ReconError with the default fixes for its code
func New(code ErrorCode, message string, cause error) *ReconError {
	return &ReconError{
		Code:           code,
		Message:        message,
		SuggestedFixes: GetSuggestedFixes(code),
		cause:          cause,
	}
}

// Error implements the error interface
func (e *ReconError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *ReconError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *ReconError) WithDetails(details interface{}) *ReconError {
	e.Details = details
	return e
}

// Is matches another ReconError by code, so sentinel comparisons work with errors.Is.
func (e *ReconError) Is(target error) bool {
	var t *ReconError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// CodeOf returns the code of the first ReconError in err's chain.
func CodeOf(err error) (ErrorCode, bool) {
	var re *ReconError
	if errors.As(err, &re) {
		return re.Code, true
	}
	return "", false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	c, ok := CodeOf(err)
	return ok && c == code
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	SnapshotMissing: {
		{Command: "coderecon analyze <path>", Description: "Run a scan to create the first snapshot"},
	},
	SnapshotCorrupt: {
		{Command: "coderecon analyze <path>", Description: "Re-run the scan to overwrite the damaged snapshot"},
	},
	ConfigInvalid: {
		{Command: "coderecon config init --force", Description: "Regenerate the default configuration"},
	},
	RootUnreadable: {
		{Description: "Check that the scan root is a readable directory"},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
