package database

import (
	"errors"
	"fmt"
)

// Sentinel errors for store operations. Check with errors.Is.
var (
	ErrTopicNotFound  = errors.New("topic not found")
	ErrDuplicateTopic = errors.New("topic already exists")
	ErrInvalidState   = errors.New("topic record violates an invariant")
)

// PersistenceError wraps a storage failure: unreadable or unwritable
// backing store, corrupt data, or a lock that could not be acquired in
// time. The requested operation did not take effect and a retry is safe.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsPersistence reports whether err is (or wraps) a PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
