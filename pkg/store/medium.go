package store

import (
	"context"
	"fmt"
)

// Medium is the durable key-value capability the entity collections persist
// through. Read reports absence via ok=false rather than an error.
type Medium interface {
	Read(ctx context.Context, key string) (value string, ok bool, err error)
	Write(ctx context.Context, key string, value string) error
}

// PersistenceError signals that the underlying medium failed and the
// operation was not applied. Previously durable state is untouched.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
