package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for simple conditions without extra context.
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrBookNotFound       = errors.New("book not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrForbidden          = errors.New("only the listing owner may modify it")
	ErrImageChanged       = errors.New("book image was replaced concurrently")
)

// TransitionError is returned when an order is not in the source state an event requires.
type TransitionError struct {
	Event   Event
	Current Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s: order is %s", e.Event, e.Current)
}

// UnauthorizedError is returned when an identity is not the order party an
// action requires. Action is an Event name or "view".
type UnauthorizedError struct {
	Action  string
	ActorID string
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("user %q is not allowed to %s this order", e.ActorID, e.Action)
}

// ValidationError is returned for malformed input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// StatusConflictError is returned by a conditional status update when the
// stored order is no longer in the expected status.
type StatusConflictError struct {
	Expected Status
	Actual   Status
}

func (e *StatusConflictError) Error() string {
	return fmt.Sprintf("order status is %q, expected %q", e.Actual, e.Expected)
}

// UserConflictError is returned when a username or email is already registered.
type UserConflictError struct {
	Field string
	Value string
}

func (e *UserConflictError) Error() string {
	return fmt.Sprintf("%s %q is already in use", e.Field, e.Value)
}
