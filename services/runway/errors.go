package runway

import (
	"errors"
	"fmt"
)

var (
	ErrConflict   = errors.New("requested time conflicts with existing reservations")
	ErrEmptyStore = errors.New("no reservations made")
	ErrNotFound   = errors.New("no reservation made at this time")
)

// Conflict reasons reported by Store.Request.
const (
	ReasonDuplicate  = "duplicate"
	ReasonSeparation = "separation"
	ReasonPast       = "past"
)

// ConflictError explains why a request was rejected.
type ConflictError struct {
	Code    string
	Minute  int
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

func newConflict(code string, minute int, msg string) error {
	return &ConflictError{
		Code:    code,
		Minute:  minute,
		Message: msg,
	}
}

// ConflictReason returns the rejection code carried by err, or "" if err is not a conflict.
func ConflictReason(err error) string {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}
