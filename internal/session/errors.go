package session

import (
	"errors"
	"fmt"
)

// Session errors.
var (
	// ErrUnreadable indicates the byte source could not be read at all.
	ErrUnreadable = errors.New("file could not be read")

	// ErrWriteFailed indicates the buffer could not be written.
	ErrWriteFailed = errors.New("file could not be written")

	// ErrNoPath indicates Save was called before the document had a path.
	ErrNoPath = errors.New("document has no file path")
)

// OperationError describes a failed load or save.
type OperationError struct {
	Op   string // "open" or "save"
	Path string
	Err  error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, path string, err error) *OperationError {
	return &OperationError{Op: op, Path: path, Err: err}
}

func (e *OperationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
