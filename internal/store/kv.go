package store

import (
	"context"
	"fmt"
)

// KV is the string key-value store the app persists into. Get reports
// ok=false for a missing key; it is not an error. SetMany writes all pairs
// or none.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	SetMany(ctx context.Context, pairs map[string]string) error
	Remove(ctx context.Context, key string) error
	RemoveMany(ctx context.Context, keys ...string) error
	Close() error
}

// IOError is returned by KV implementations when the backend fails.
type IOError struct {
	Op  string
	Key string
	Err error
}

func (e *IOError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("store %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func ioErr(op, key string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Key: key, Err: err}
}
