package services

import (
	"errors"
	"fmt"
)

var (
	// ErrStore marks any failure of the persistent store. Callers surface it as a
	// generic 5xx and keep the wrapped cause in server logs only.
	ErrStore = errors.New("store failure")

	ErrReadingNotFound    = errors.New("reading not found")
	ErrInvalidDeckType    = errors.New("invalid deck type")
	ErrInvalidSpreadType  = errors.New("invalid spread type")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoReadingsLeft     = errors.New("no readings left")
)

// StoreError wraps a driver or query failure with the operation that hit it.
// It matches both ErrStore and the underlying cause under errors.Is.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() []error {
	return []error{ErrStore, e.Err}
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
