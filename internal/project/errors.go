package project

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound reports an expected absence: a path segment, device,
	// item, group, block, or type that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidPattern reports a name pattern that does not compile.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrAdapterUnavailable reports that no project is active.
	ErrAdapterUnavailable = errors.New("no active project")
)

// NotFoundError describes what could not be located. It matches
// ErrNotFound with errors.Is.
type NotFoundError struct {
	What string
	Path string
}

// NotFound builds a NotFoundError.
func NotFound(what, path string) error {
	return &NotFoundError{What: what, Path: path}
}

func (e *NotFoundError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s not found", e.What)
	}
	return fmt.Sprintf("%s %q not found", e.What, e.Path)
}

// Is lets errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InvalidPattern wraps a regexp compile failure.
func InvalidPattern(pattern string, err error) error {
	return fmt.Errorf("%w %q: %v", ErrInvalidPattern, pattern, err)
}

// OpError is an unexpected adapter fault, annotated with the operation
// and the parameters it was called with.
type OpError struct {
	Op   string
	Args []string // key, value pairs
	Err  error
}

func (e *OpError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if len(e.Args) > 0 {
		b.WriteString("(")
		for i := 0; i+1 < len(e.Args); i += 2 {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%q", e.Args[i], e.Args[i+1])
		}
		b.WriteString(")")
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *OpError) Unwrap() error { return e.Err }

// Wrap annotates err with op and its parameters unless err is nil, one of
// the expected taxonomy kinds, or already an OpError.
func Wrap(op string, err error, args ...string) error {
	if err == nil || IsExpected(err) {
		return err
	}
	var opErr *OpError
	if errors.As(err, &opErr) {
		return err
	}
	return &OpError{Op: op, Args: args, Err: err}
}

// IsExpected reports whether err is NotFound, InvalidPattern, or
// AdapterUnavailable.
func IsExpected(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidPattern) ||
		errors.Is(err, ErrAdapterUnavailable)
}
