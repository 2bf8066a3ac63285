// Package orchestrator sequences generation, originality gating and
// persistence into tracked operations over projects and series. Every
// method that creates a task guarantees the task reaches a terminal state
// even when the method itself returns an error.
package orchestrator

import (
	"errors"
	"fmt"
)

// NotFoundError reports a reference to a project or series id that does not
// exist. Surfaced to the caller as-is; never retried.
type NotFoundError struct {
	Kind string // "project" or "series"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// NotConfiguredError reports a missing external-service dependency at
// orchestrator construction. Fatal for the instance: nothing was built.
type NotConfiguredError struct {
	Missing string
}

func (e *NotConfiguredError) Error() string {
	return fmt.Sprintf("orchestrator not configured: missing %s", e.Missing)
}

// GenerationError wraps a content-generator failure. The triggering task is
// marked error before this is returned; the caller owns resubmission.
type GenerationError struct {
	Step  string
	Cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed at %s: %v", e.Step, e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// OriginalityRejectedError reports generated content that failed the
// originality gate. The content is discarded and never reaches the store.
type OriginalityRejectedError struct {
	Confidence float64
	Matches    int
}

func (e *OriginalityRejectedError) Error() string {
	return fmt.Sprintf("generated content may contain non-original material (confidence %.2f, %d matches)", e.Confidence, e.Matches)
}

// ValidationError reports a caller-supplied structural problem, rejected
// before any task is created.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s (value: %v)", e.Field, e.Message, e.Value)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsOriginalityRejected reports whether err is an OriginalityRejectedError.
func IsOriginalityRejected(err error) bool {
	var or *OriginalityRejectedError
	return errors.As(err, &or)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
