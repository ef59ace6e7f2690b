// Package kv provides the key-value medium that mood entries are persisted through.
package kv

import "errors"

// ErrNotFound is returned by Get when no value has been written for the key
var ErrNotFound = errors.New("key not found")

// Store is a flat key-value medium holding one opaque payload per key.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}
