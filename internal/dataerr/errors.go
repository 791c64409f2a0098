// Package dataerr classifies failures of the dataset preparation commands.
package dataerr

import (
	"errors"
	"fmt"
)

// Kind identifies the class of a data preparation failure.
type Kind int

const (
	// Unknown is returned by KindOf for errors outside the taxonomy.
	Unknown Kind = iota
	// InputNotFound means an input file is missing or unreadable.
	InputNotFound
	// MalformedInput means an input file could not be parsed.
	MalformedInput
	// SchemaViolation means a required column, key, or value type is absent.
	SchemaViolation
	// WriteFailure means the output could not be written.
	WriteFailure
)

func (k Kind) String() string {
	switch k {
	case InputNotFound:
		return "input_not_found"
	case MalformedInput:
		return "malformed_input"
	case SchemaViolation:
		return "schema_violation"
	case WriteFailure:
		return "write_failure"
	default:
		return "unknown"
	}
}

// Error carries a Kind together with the file and key involved.
type Error struct {
	Kind Kind
	Path string
	Key  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Key != "" {
		msg += fmt.Sprintf(" (key %q)", e.Key)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an Error of the given kind for path.
func New(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// Schema builds a SchemaViolation for a missing or mistyped key in path.
func Schema(path, key string, err error) *Error {
	return &Error{Kind: SchemaViolation, Path: path, Key: key, Err: err}
}

// KindOf returns the Kind of the first Error in err's chain, or Unknown.
func KindOf(err error) Kind {
	if err == nil {
		return Unknown
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return Unknown
}

// Is reports whether err (or any error in its chain) is an Error of kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
