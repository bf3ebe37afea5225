package model

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Callers match them with errors.Is.
var (
	// ErrNotFound marks a team, player or match that does not exist in the
	// fetched data. An empty but valid result is never ErrNotFound.
	ErrNotFound = errors.New("not found")

	// ErrPrecondition marks a request the data cannot answer as asked.
	ErrPrecondition = errors.New("precondition failed")

	// ErrNoSubstitution is returned by the pass network when the team made
	// no substitution in the match.
	ErrNoSubstitution = &Error{Kind: ErrPrecondition, Err: errors.New("team made no substitution")}

	// ErrMalformedRecord marks a fetched record missing an expected field.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrUpstreamUnavailable marks a provider that could not be reached or
	// answered with a non-success status.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrBadRequest marks invalid caller input.
	ErrBadRequest = errors.New("bad request")
)

// Error tags an underlying error with the operation that failed and its kind.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	var msg string
	switch {
	case e.Err != nil && e.Kind != nil:
		msg = e.Kind.Error() + ": " + e.Err.Error()
	case e.Err != nil:
		msg = e.Err.Error()
	case e.Kind != nil:
		msg = e.Kind.Error()
	default:
		msg = "unknown error"
	}
	if e.Op == "" {
		return msg
	}
	return e.Op + ": " + msg
}

// Unwrap exposes both the kind and the cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// NewKind returns an error of the given kind raised by op.
func NewKind(op string, kind error) error {
	return &Error{Op: op, Kind: kind}
}

// Wrap tags err with op. It returns nil when err is nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// WrapKind tags err with op and kind. It returns nil when err is nil.
func WrapKind(op string, kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Kind: kind, Err: err}
}

// Errorf is WrapKind with a formatted cause.
func Errorf(op string, kind error, format string, args ...any) error {
	return &Error{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindName returns a short label for the kind of err, for logs, metrics and
// API error codes.
func KindName(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrPrecondition):
		return "precondition"
	case errors.Is(err, ErrMalformedRecord):
		return "malformed_record"
	case errors.Is(err, ErrUpstreamUnavailable):
		return "upstream_unavailable"
	case errors.Is(err, ErrBadRequest):
		return "bad_request"
	default:
		return "internal"
	}
}
