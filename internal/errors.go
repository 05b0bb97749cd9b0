package internal

import (
	"errors"
	"fmt"
)

// NotFoundError represents a missing resource: a symbol file, a storage key,
// or a requested session
type NotFoundError struct {
	Kind string // "file", "key", "session"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s %s", e.Kind, e.Name)
}

// ParseError represents errors parsing data
type ParseError struct {
	Source string // "catalog", "session", "index"
	Key    string // storage key or file path
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error [%s] %s: %v", e.Source, e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// BackendError represents errors talking to a storage backend
type BackendError struct {
	Op  string // "list", "get", "connect"
	Key string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend error: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// WriteError represents a failed write of one storage artifact
type WriteError struct {
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write error: %s: %v", e.Key, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
