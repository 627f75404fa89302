// Package notify defines the toast severity levels and the Notifier
// capability, plus the Registry that lets any part of the application raise
// a toast without a reference to the widget that renders it.
package notify

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Severity classifies the intent of a toast.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ErrInvalidSeverity is returned by ParseSeverity for values outside the
// four known severities.
var ErrInvalidSeverity = errors.New("invalid severity")

// Severities returns all severities in display order.
func Severities() []Severity {
	return []Severity{SeveritySuccess, SeverityError, SeverityWarning, SeverityInfo}
}

// Valid reports whether s is one of the four known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeveritySuccess, SeverityError, SeverityWarning, SeverityInfo:
		return true
	}
	return false
}

func (s Severity) String() string {
	return string(s)
}

// ParseSeverity converts a user supplied string into a Severity.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(strings.ToLower(strings.TrimSpace(s)))
	if !sev.Valid() {
		return "", fmt.Errorf("%w %q: must be one of success, error, warning, info", ErrInvalidSeverity, s)
	}
	return sev, nil
}

// Notifier is anything that can display or act on a toast request.
//
// The timeout is optional: callers that omit it leave the choice of default
// to the implementation. Only the first value is meaningful.
type Notifier interface {
	Success(text string, timeout ...time.Duration)
	Error(text string, timeout ...time.Duration)
	Warning(text string, timeout ...time.Duration)
	Info(text string, timeout ...time.Duration)
}
