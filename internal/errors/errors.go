package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/archiver/internal/logger"
)

// Day parsing failures. Always recoverable at the input boundary.
var (
	ErrInvalidFormat       = stderrors.New("invalid day format, use YYYY-MM-DD")
	ErrInvalidField        = stderrors.New("invalid day field")
	ErrInvalidCalendarDate = stderrors.New("not a calendar date")
)

// Startup failures. Fatal to the session.
var (
	ErrConnection = stderrors.New("archive connection failed")
	ErrSchema     = stderrors.New("archive schema failed")
)

// Runtime failures and policy rejections. The store stays usable.
var (
	ErrStore         = stderrors.New("archive store failure")
	ErrClosed        = stderrors.New("archive store is closed")
	ErrDayNotEmpty   = stderrors.New("day still has entries")
	ErrDayNotFound   = stderrors.New("day not found")
	ErrEntryNotFound = stderrors.New("entry not found")
	ErrEmptyContent  = stderrors.New("entry content is empty")
)

// StoreError records the failed operation and the key it was applied to.
// errors.Is matches both Kind and the underlying cause.
type StoreError struct {
	Kind error
	Op   string
	Key  string
	Err  error
}

// NewStoreError builds a StoreError. A nil kind defaults to ErrStore.
func NewStoreError(kind error, op, key string, err error) *StoreError {
	if kind == nil {
		kind = ErrStore
	}
	return &StoreError{Kind: kind, Op: op, Key: key, Err: err}
}

func (e *StoreError) Error() string {
	target := e.Op
	if e.Key != "" {
		target = fmt.Sprintf("%s %s", e.Op, e.Key)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", target, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", target, e.Kind)
}

func (e *StoreError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// IsStartup reports whether err is a connection or schema failure.
func IsStartup(err error) bool {
	return stderrors.Is(err, ErrConnection) || stderrors.Is(err, ErrSchema)
}

// IsValidation reports whether err is a day parsing failure.
func IsValidation(err error) bool {
	return stderrors.Is(err, ErrInvalidFormat) ||
		stderrors.Is(err, ErrInvalidField) ||
		stderrors.Is(err, ErrInvalidCalendarDate)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
