package entities

import (
	"errors"
	"fmt"
	"strings"
)

// Failure kinds. Every one of them ends the current scenario.
var (
	ErrElementNotFound   = errors.New("element not found")
	ErrAssertionFailed   = errors.New("assertion failed")
	ErrNavigationTimeout = errors.New("navigation timeout")
	ErrStateTimeout      = errors.New("state timeout")
)

// CheckError describes a failed step with what was expected and what the
// page actually showed.
type CheckError struct {
	Kind     error
	Target   string
	Expected string
	Actual   string
	Err      error
}

func (e *CheckError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Target != "" {
		fmt.Fprintf(&b, ": %s", e.Target)
	}
	if e.Expected != "" {
		fmt.Fprintf(&b, ": expected %s", e.Expected)
	}
	if e.Actual != "" {
		fmt.Fprintf(&b, ", actual %s", e.Actual)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Is matches the failure kind so errors.Is(err, ErrStateTimeout) works
func (e *CheckError) Is(target error) bool {
	return e.Kind == target
}

func (e *CheckError) Unwrap() error {
	return e.Err
}

// NewCheckError - builds a CheckError of the given kind
func NewCheckError(kind error, target, expected, actual string, cause error) *CheckError {
	return &CheckError{
		Kind:     kind,
		Target:   target,
		Expected: expected,
		Actual:   actual,
		Err:      cause,
	}
}

// Reclassify keeps the details of a CheckError but changes its kind. Errors
// of other types are wrapped into a new CheckError.
func Reclassify(err error, kind error, target string) error {
	if err == nil {
		return nil
	}
	var ce *CheckError
	if errors.As(err, &ce) {
		out := *ce
		out.Kind = kind
		if out.Target == "" {
			out.Target = target
		}
		return &out
	}
	return NewCheckError(kind, target, "", "", err)
}

// FailureKind returns the taxonomy entry an error belongs to, or nil
func FailureKind(err error) error {
	for _, kind := range []error{ErrElementNotFound, ErrAssertionFailed, ErrNavigationTimeout, ErrStateTimeout} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
