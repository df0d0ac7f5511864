package store

import (
	"errors"
	"fmt"

	"github.com/inovacc/cardvault/internal/model"
)

// ErrPersistence matches every *PersistenceError via errors.Is.
var ErrPersistence = errors.New("persistence unavailable")

var errEmptyID = errors.New("card id is empty")

// PersistenceError reports that the backend could not complete an operation:
// storage unavailable, file not writable, quota exhausted.
type PersistenceError struct {
	Backend model.Backend
	Op      string
	Err     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s store: %s failed: %v", e.Backend, e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrPersistence.
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

func persistenceError(backend model.Backend, op string, err error) error {
	if err == nil {
		return nil
	}

	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}

	return &PersistenceError{Backend: backend, Op: op, Err: err}
}
