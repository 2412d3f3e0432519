// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	// ErrInvalidInput marks a missing or malformed request parameter.
	// Requests failing with it are rejected without partial computation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDataUnavailable marks an external fetch that failed or returned
	// no usable record. Callers degrade to neutral defaults.
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrNoData marks a source that was readable but yielded no rows.
	ErrNoData           = errors.New("no valid data found")
	ErrRateLimited      = errors.New("rate limited")
	ErrConnectionFailed = errors.New("connection failed")
	ErrTimeout          = errors.New("operation timed out")
	ErrConfigInvalid    = errors.New("invalid configuration")
	ErrDatabaseError    = errors.New("database error")
	ErrSymbolNotFound   = errors.New("symbol not found")
)

// FetchError represents a failed call against an external data source.
type FetchError struct {
	Source string // e.g. "option-chain", "volume", "news"
	Symbol string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch error [%s] %s: status %d: %v", e.Source, e.Symbol, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch error [%s] %s: %v", e.Source, e.Symbol, e.Err)
}

func (e *FetchError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrDataUnavailable
}

// NewFetchError creates a new FetchError.
func NewFetchError(source, symbol string, status int, err error) *FetchError {
	return &FetchError{Source: source, Symbol: symbol, Status: status, Err: err}
}

// ValidationError represents an invalid request parameter.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ComputationError wraps an unexpected failure inside an extractor. It is
// produced by the engine's top-level recovery, never by the extractors
// themselves.
type ComputationError struct {
	Symbol string
	Stage  string
	Err    error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("computation error [%s] %s: %v", e.Stage, e.Symbol, e.Err)
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}

// NewComputationError creates a new ComputationError.
func NewComputationError(symbol, stage string, err error) *ComputationError {
	return &ComputationError{Symbol: symbol, Stage: stage, Err: err}
}

// DataError represents a data-quality problem in an otherwise successful
// fetch (e.g. a response body missing the expected records).
type DataError struct {
	DataType string
	Symbol   string
	Message  string
	Err      error
}

func (e *DataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data error [%s] %s: %s: %v", e.DataType, e.Symbol, e.Message, e.Err)
	}
	return fmt.Sprintf("data error [%s] %s: %s", e.DataType, e.Symbol, e.Message)
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// NewDataError creates a new DataError.
func NewDataError(dataType, symbol, message string, err error) *DataError {
	return &DataError{DataType: dataType, Symbol: symbol, Message: message, Err: err}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
