package types

import (
	"errors"
	"fmt"
)

// Sentinels matched with errors.Is against the typed errors below.
var (
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("username already exists")
	ErrUploadRejected     = errors.New("upload rejected")
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// ValidationError carries the per-field messages of a failed validation pass.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	for _, f := range Fields {
		if msg, ok := e.Fields[f]; ok {
			return msg
		}
	}
	return ErrValidation.Error()
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ConflictError reports that a username is already taken.
type ConflictError struct {
	Username Username
}

func (e *ConflictError) Error() string { return "Username already exists" }

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// UploadRejectedError reports a photo with the wrong type or size.
type UploadRejectedError struct {
	Reason string
}

func (e *UploadRejectedError) Error() string { return e.Reason }

func (e *UploadRejectedError) Is(target error) bool { return target == ErrUploadRejected }

// BackendUnavailableError wraps a failed persistence or lookup call.
type BackendUnavailableError struct {
	Op  string
	Err error
}

func (e *BackendUnavailableError) Error() string {
	if e.Err == nil {
		return e.Op + ": backend unavailable"
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *BackendUnavailableError) Unwrap() error { return e.Err }

func (e *BackendUnavailableError) Is(target error) bool { return target == ErrBackendUnavailable }

// Unavailable wraps err as a BackendUnavailableError for op.
func Unavailable(op string, err error) error {
	return &BackendUnavailableError{Op: op, Err: err}
}
