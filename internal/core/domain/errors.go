package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a fatal pipeline failure by the stage that raised
// it. The transport layer maps kinds to HTTP status codes.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindDuplicate     ErrorKind = "duplicate"
	KindResolution    ErrorKind = "resolution"
	KindDirectory     ErrorKind = "directory"
	KindDownload      ErrorKind = "download"
	KindTranscription ErrorKind = "transcription"
	KindInternal      ErrorKind = "internal"
)

// PipelineError is a fatal stage failure. Warnings from best-effort
// stages are logged at the stage boundary and never become one of these.
type PipelineError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *PipelineError) Unwrap() error { return e.Err }

// NewError creates a PipelineError without an underlying cause.
func NewError(kind ErrorKind, format string, args ...any) *PipelineError {
	return &PipelineError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// WrapError creates a PipelineError wrapping an underlying cause.
func WrapError(kind ErrorKind, err error, format string, args ...any) *PipelineError {
	return &PipelineError{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the error's kind, or KindInternal for untyped errors.
func KindOf(err error) ErrorKind {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindInternal
}
