package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrStorageWrite is matched by every WriteError via errors.Is
	ErrStorageWrite = errors.New("storage write failed")
	// ErrCorrupt is matched by every CorruptionError via errors.Is
	ErrCorrupt = errors.New("stored entries are corrupted")
	// ErrDuplicateID is returned when appending an entry whose id is already stored
	ErrDuplicateID = errors.New("entry id already exists")
)

// WriteError reports a mutation the storage medium could not complete.
type WriteError struct {
	Op  string // append, update, restore
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrStorageWrite) true for any WriteError.
func (e *WriteError) Is(target error) bool {
	return target == ErrStorageWrite
}

// CorruptionError reports a stored payload that could not be decoded.
type CorruptionError struct {
	Key  string
	Size int // payload size in bytes
	Err  error
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("stored entries under %q are corrupted (%d bytes): %v", e.Key, e.Size, e.Err)
}

func (e *CorruptionError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrCorrupt) true for any CorruptionError.
func (e *CorruptionError) Is(target error) bool {
	return target == ErrCorrupt
}
