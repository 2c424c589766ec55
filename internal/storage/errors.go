// Package storage provides the key-value backends review sessions are persisted to.
package storage

import "fmt"

// StoreError represents a failed backend operation
type StoreError struct {
	Op      string
	Key     string
	Backend string
	Cause   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s on %s: %v", e.Op, e.Key, e.Backend, e.Cause)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

// InvalidKeyError is returned for keys a backend cannot address safely
type InvalidKeyError struct {
	Key string
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("invalid storage key: %q", e.Key)
}
