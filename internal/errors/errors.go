// Package errors is the single errors import for application code: matching
// goes through the standard library and wrapping through pkg/errors so that
// every wrapped error carries a stack trace.
package errors

import (
	stderrors "errors"

	pkgerrors "github.com/pkg/errors"
)

// New returns a plain sentinel without a stack; wrap it at the call site.
func New(text string) error {
	return stderrors.New(text)
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// AsType returns the first error in err's chain of type T.
func AsType[T error](err error) (T, bool) {
	var target T
	ok := stderrors.As(err, &target)

	return target, ok
}

func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}

func Wrapf(err error, format string, args ...any) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// WithStack records the caller's stack without changing the message.
func WithStack(err error) error {
	return pkgerrors.WithStack(err)
}

func Errorf(format string, args ...any) error {
	return pkgerrors.Errorf(format, args...)
}
