// file: internals/features/lessons/service/errors.go
package service

import (
	"errors"
	"fmt"

	m "tutorku_backend/internals/features/lessons/model"
)

/* =======================================================
   Taksonomi error engine penjadwalan.

   - ValidationError    : input salah, tolak sebelum mutasi apa pun
   - ConflictError      : slot bentrok, bawa daftar bentrokannya
   - InvalidTransition  : perubahan status tidak diizinkan
   - ErrAlreadyHasMakeup: lesson cancelled sudah punya makeup
   - StorageError       : gagal I/O persistence, aman di-retry
   ======================================================= */

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

type ConflictError struct {
	Conflicts   []Conflict
	Suggestions []SlotSuggestion
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot conflicts with %d existing lesson(s)", len(e.Conflicts))
}

type InvalidTransitionError struct {
	From m.LessonStatus
	To   m.LessonStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid lesson status transition: %s -> %s", e.From, e.To)
}

var ErrAlreadyHasMakeup = errors.New("cancelled lesson already has a makeup lesson")

type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func wrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
