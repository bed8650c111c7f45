package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used as targets for errors.Is classification.
// Every typed error in this package unwraps to exactly one of these.
var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsRequired   = errors.New("value is required")
	ErrIllegalTransition = errors.New("illegal transition")
	ErrInvalidAssignment = errors.New("invalid assignment")
	ErrConflict          = errors.New("conflict")
)

// sanitize removes newlines from values interpolated into error messages
// so a single error always renders as a single log line.
func sanitize(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

// ObjectNotFoundError indicates that an object could not be found by its identifier.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without an underlying cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError indicates that a supplied value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without an underlying cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsRequiredError indicates that a required value was missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without an underlying cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// IllegalTransitionError indicates that a requested order status change is not
// a legal edge of the fulfillment state machine, or that the acting role is
// not permitted to perform it. From, To and Actor carry the string forms of
// the current status, the requested status and the acting role. Permitted
// names what would have been allowed: the statuses reachable from the current
// one when the edge does not exist, or the roles allowed on the edge when the
// actor is rejected.
type IllegalTransitionError struct {
	From      string
	To        string
	Actor     string
	Reason    string
	Permitted []string
}

// NewIllegalTransitionError creates an IllegalTransitionError describing a rejected edge.
func NewIllegalTransitionError(from, to, actor, reason string, permitted ...string) *IllegalTransitionError {
	return &IllegalTransitionError{From: from, To: to, Actor: actor, Reason: reason, Permitted: permitted}
}

func (e *IllegalTransitionError) Error() string {
	msg := fmt.Sprintf("%s: %s -> %s by %s (%s)",
		ErrIllegalTransition, e.From, e.To, e.Actor, e.Reason)
	if len(e.Permitted) > 0 {
		msg += fmt.Sprintf("; permitted: %s", strings.Join(e.Permitted, ", "))
	}
	return sanitize(msg)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// InvalidAssignmentError indicates that an order already in transit or completed
// cannot be reassigned to a different delivery agent.
type InvalidAssignmentError struct {
	OrderID string
	Status  string
}

// NewInvalidAssignmentError creates an InvalidAssignmentError for the given order and status.
func NewInvalidAssignmentError(orderID, status string) *InvalidAssignmentError {
	return &InvalidAssignmentError{OrderID: orderID, Status: status}
}

func (e *InvalidAssignmentError) Error() string {
	return sanitize(fmt.Sprintf("%s: order %s cannot be reassigned while %s",
		ErrInvalidAssignment, e.OrderID, e.Status))
}

func (e *InvalidAssignmentError) Unwrap() error {
	return ErrInvalidAssignment
}

// ConflictError indicates concurrent-write contention that a bounded number of
// retries could not resolve. The caller may retry the whole operation.
type ConflictError struct {
	OrderID string
	Cause   error
}

// NewConflictError creates a ConflictError wrapping the last contention failure.
func NewConflictError(orderID string, cause error) *ConflictError {
	return &ConflictError{OrderID: orderID, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: order %s (cause: %s)", ErrConflict, e.OrderID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: order %s", ErrConflict, e.OrderID))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
