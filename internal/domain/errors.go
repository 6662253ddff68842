package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the result code shared by command handlers and the dispatcher.
// The zero value means success.
type ErrorKind int

const (
	KindSuccess ErrorKind = iota
	KindInvalidArgs
	KindMemory
	KindPermission
	KindNotFound
	KindSyntax
	KindRange
	KindAlignment
	KindParse
	KindSystem
	kindCount
)

var kindMessages = [kindCount]string{
	KindSuccess:     "Success",
	KindInvalidArgs: "Invalid arguments provided",
	KindMemory:      "Memory allocation or access error",
	KindPermission:  "Permission denied or unsafe operation",
	KindNotFound:    "Command or resource not found",
	KindSyntax:      "Syntax error in command or arguments",
	KindRange:       "Value is out of valid range",
	KindAlignment:   "Address alignment error",
	KindParse:       "Failed to parse command or arguments",
	KindSystem:      "System or hardware error",
}

var kindNames = [kindCount]string{
	KindSuccess:     "success",
	KindInvalidArgs: "invalid-arguments",
	KindMemory:      "memory-fault",
	KindPermission:  "permission-denied",
	KindNotFound:    "not-found",
	KindSyntax:      "syntax-error",
	KindRange:       "out-of-range",
	KindAlignment:   "alignment-error",
	KindParse:       "parse-error",
	KindSystem:      "system-error",
}

// Message returns the fixed human-readable text for the kind.
func (k ErrorKind) Message() string {
	if k < 0 || k >= kindCount {
		return "Unknown error"
	}
	return kindMessages[k]
}

func (k ErrorKind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// OK reports whether the kind denotes success.
func (k ErrorKind) OK() bool {
	return k == KindSuccess
}

// ShellError carries an ErrorKind through Go error plumbing.
type ShellError struct {
	Kind    ErrorKind
	Command string
	Context string
	Err     error
}

// NewError builds a ShellError without an underlying cause.
func NewError(kind ErrorKind, context string) *ShellError {
	return &ShellError{Kind: kind, Context: context}
}

// WrapError builds a ShellError around err.
func WrapError(kind ErrorKind, context string, err error) *ShellError {
	return &ShellError{Kind: kind, Context: context, Err: err}
}

func (e *ShellError) Error() string {
	msg := e.Kind.Message()
	if e.Context != "" {
		msg += " (" + e.Context + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ShellError) Unwrap() error {
	return e.Err
}

// KindOf extracts the ErrorKind from err. A nil error is KindSuccess and an
// error without a kind is KindSystem.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindSuccess
	}
	var se *ShellError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindSystem
}
