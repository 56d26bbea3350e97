package store

import (
	"errors"
	"fmt"
)

// StorageError represents a failure of a durable storage operation.
//
// Codes distinguish the two failure classes callers react to:
//   - UNAVAILABLE: the database could not be opened or reached
//   - READ_FAILED / WRITE_FAILED: an individual operation failed
//
// The in-memory state the caller holds is never touched by a failed
// operation; callers report the error and keep editing.
type StorageError struct {
	// Code identifies the error category.
	Code StorageErrorCode

	// Op names the failed operation (put, get, delete, ...).
	Op string

	// Partition identifies the affected partition, when known.
	Partition string

	// Err is the underlying driver error.
	Err error
}

// StorageErrorCode categorizes storage errors.
type StorageErrorCode string

const (
	// ErrCodeUnavailable indicates the store could not be initialized.
	ErrCodeUnavailable StorageErrorCode = "UNAVAILABLE"

	// ErrCodeReadFailed indicates a get/getAll operation failed.
	ErrCodeReadFailed StorageErrorCode = "READ_FAILED"

	// ErrCodeWriteFailed indicates a put/delete/clear operation failed.
	ErrCodeWriteFailed StorageErrorCode = "WRITE_FAILED"
)

// Error implements the error interface.
func (e *StorageError) Error() string {
	if e.Partition != "" {
		return fmt.Sprintf("%s: %s %s: %v", e.Code, e.Op, e.Partition, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Op, e.Err)
}

// Unwrap exposes the underlying driver error for errors.Is/As chains.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsUnavailable returns true if the error is an initialization failure.
// Uses errors.As to handle wrapped errors.
func IsUnavailable(err error) bool {
	var se *StorageError
	if errors.As(err, &se) {
		return se.Code == ErrCodeUnavailable
	}
	return false
}

// IsWriteFailed returns true if the error is a failed durable write.
// Uses errors.As to handle wrapped errors.
func IsWriteFailed(err error) bool {
	var se *StorageError
	if errors.As(err, &se) {
		return se.Code == ErrCodeWriteFailed
	}
	return false
}

func unavailable(op, partition string, err error) *StorageError {
	return &StorageError{Code: ErrCodeUnavailable, Op: op, Partition: partition, Err: err}
}

func readFailed(op, partition string, err error) *StorageError {
	return &StorageError{Code: ErrCodeReadFailed, Op: op, Partition: partition, Err: err}
}

func writeFailed(op, partition string, err error) *StorageError {
	return &StorageError{Code: ErrCodeWriteFailed, Op: op, Partition: partition, Err: err}
}
