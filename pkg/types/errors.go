// Package types defines error types
package types

import (
	"errors"
	"fmt"
)

// Predefined errors
var (
	// ErrPoolClosed indicates the pool has been closed
	ErrPoolClosed = errors.New("thread pool is closed")

	// ErrNotPoolWorker indicates the caller is not one of the pool's workers
	ErrNotPoolWorker = errors.New("not a pool worker")

	// ErrInvalidLaunchMode indicates an unsupported launch mode
	ErrInvalidLaunchMode = errors.New("invalid launch mode")

	// ErrInvalidThreadCount indicates a negative thread count
	ErrInvalidThreadCount = errors.New("invalid thread count")

	// ErrNilTask indicates a nil task function was submitted
	ErrNilTask = errors.New("task function cannot be nil")

	// ErrTimeout indicates operation timeout
	ErrTimeout = errors.New("operation timeout")
)

// TaskPanicError represents a panic recovered while running a submitted task
type TaskPanicError struct {
	// Value is the value passed to panic
	Value interface{}

	// Stack is the stack trace captured at recovery
	Stack string

	// Context contains error context information
	Context map[string]interface{}
}

// NewTaskPanicError creates a new task panic error
func NewTaskPanicError(value interface{}, stack []byte) *TaskPanicError {
	return &TaskPanicError{
		Value:   value,
		Stack:   string(stack),
		Context: make(map[string]interface{}),
	}
}

// Error implements the error interface
func (e *TaskPanicError) Error() string {
	return fmt.Sprintf("task panic: %v", e.Value)
}

// Unwrap returns the panic value when it is an error
func (e *TaskPanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// WithContext adds error context
func (e *TaskPanicError) WithContext(key string, value interface{}) *TaskPanicError {
	e.Context[key] = value
	return e
}

// PanicValue returns the recovered panic value if err wraps a TaskPanicError
func PanicValue(err error) (interface{}, bool) {
	var panicErr *TaskPanicError
	if errors.As(err, &panicErr) {
		return panicErr.Value, true
	}
	return nil, false
}
