// internal/app/system/apperr/apperr.go

// Package apperr defines the error taxonomy shared by the graph engine
// and the HTTP feature handlers.
//
// Four categories cover every synchronous failure the engine reports:
//   - NotFound: a referenced id does not resolve
//   - Validation: a structural invariant was violated
//   - Conflict: a uniqueness or last-owner rule was violated
//   - DependencyBlocked: a deletion refused because other records still
//     reference the target
//
// Handlers match categories with errors.As and map them to HTTP status
// codes; everything else is a server error.
package apperr

import (
	"errors"
	"fmt"
)

// NotFoundError reports that a referenced entity id did not resolve.
type NotFoundError struct {
	Kind string // entity kind, e.g. "project", "component"
	ID   string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Kind + " not found"
	}
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// NotFound builds a NotFoundError for the given entity kind and id.
func NotFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// ValidationError reports a violated structural invariant.
type ValidationError struct {
	Rule   string // stable rule identifier, e.g. "self-relationship"
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return "validation failed: " + e.Rule
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Rule, e.Detail)
}

// Validation builds a ValidationError for a rule with a formatted detail.
func Validation(rule, format string, args ...any) error {
	return &ValidationError{Rule: rule, Detail: fmt.Sprintf(format, args...)}
}

// ConflictError reports a uniqueness violation or a guarded state change
// (duplicate membership, last-owner removal).
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return "conflict: " + e.Reason
}

// Conflict builds a ConflictError with the given reason.
func Conflict(reason string) error {
	return &ConflictError{Reason: reason}
}

// DependencyBlockedError reports a deletion refused because dependent
// records still reference the target. Category names the first blocking
// dependency found and Count the number of blocking rows in it.
type DependencyBlockedError struct {
	Category string
	Count    int64
}

func (e *DependencyBlockedError) Error() string {
	return fmt.Sprintf("deletion blocked: %d dependent record(s) in %s", e.Count, e.Category)
}

// DependencyBlocked builds a DependencyBlockedError.
func DependencyBlocked(category string, count int64) error {
	return &DependencyBlockedError{Category: category, Count: count}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}

// IsDependencyBlocked reports whether err is (or wraps) a
// DependencyBlockedError.
func IsDependencyBlocked(err error) bool {
	var e *DependencyBlockedError
	return errors.As(err, &e)
}
