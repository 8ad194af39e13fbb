package errors

import (
	"fmt"
	"log/slog"
)

// Category represents the type of error.
type Category string

const (
	CategoryRender Category = "render"
	CategoryQuery  Category = "query"
	CategoryStyle  Category = "style"
	CategoryEvent  Category = "event"
	CategoryBuild  Category = "build"
	CategoryConfig Category = "config"
	CategoryCLI    Category = "cli"
)

// SnappError is a coded diagnostic with an explanation and a fix hint.
type SnappError struct {
	// Code is a unique error identifier (e.g., "S001").
	Code string

	// Category is the error type (render, query, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *SnappError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *SnappError) Unwrap() error {
	return e.Wrapped
}

// LogValue implements slog.LogValuer so diagnostics log as a group.
func (e *SnappError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("code", e.Code),
		slog.String("category", string(e.Category)),
		slog.String("message", e.Message),
	}
	if e.Detail != "" {
		attrs = append(attrs, slog.String("detail", e.Detail))
	}
	if e.Wrapped != nil {
		attrs = append(attrs, slog.String("cause", e.Wrapped.Error()))
	}
	return slog.GroupValue(attrs...)
}

// WithSuggestion adds a fix suggestion to the error.
func (e *SnappError) WithSuggestion(s string) *SnappError {
	e.Suggestion = s
	return e
}

// WithDetail replaces the registered explanation.
func (e *SnappError) WithDetail(d string) *SnappError {
	e.Detail = d
	return e
}

// WithDetailf is WithDetail with a format string.
func (e *SnappError) WithDetailf(format string, args ...any) *SnappError {
	return e.WithDetail(fmt.Sprintf(format, args...))
}

// Wrap wraps another error.
func (e *SnappError) Wrap(err error) *SnappError {
	e.Wrapped = err
	return e
}

// New creates a SnappError from a registered error code.
func New(code string) *SnappError {
	template, ok := registry[code]
	if !ok {
		return &SnappError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &SnappError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Detail:     template.Detail,
		Suggestion: template.Suggestion,
	}
}

// Newf creates a new SnappError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *SnappError {
	return &SnappError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a SnappError.
func FromError(err error, code string) *SnappError {
	if err == nil {
		return nil
	}
	if se, ok := err.(*SnappError); ok {
		return se
	}
	return New(code).Wrap(err)
}

// HasCode reports whether err is, or wraps, a SnappError with code.
func HasCode(err error, code string) bool {
	for err != nil {
		if se, ok := err.(*SnappError); ok && se.Code == code {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
