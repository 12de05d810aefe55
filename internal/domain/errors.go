package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrRecordNotFound = errors.New("record not found")

// FieldError describes one invalid field. Field uses the wire name of the field.
type FieldError struct {
	Field string
	Issue string
}

// ValidationError lists every invalid field of a candidate movie or patch.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	issues := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		issues[i] = fe.Field + " " + fe.Issue
	}

	return "validation failed: " + strings.Join(issues, "; ")
}

// StoreError wraps a failure of the underlying storage engine.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}

	return &StoreError{Op: op, Err: err}
}
