package repository

import (
	"errors"
	"fmt"
	"strings"

	"pereval-backend/internal/models"
)

// ErrNotFound is returned when no pass exists for the requested id.
var ErrNotFound = errors.New("mountain pass not found")

// EditNotAllowedError is returned when an update targets a pass whose
// moderation status no longer permits edits.
type EditNotAllowedError struct {
	Status models.Status
}

func (e *EditNotAllowedError) Error() string {
	return fmt.Sprintf("editing is not allowed in status %q, only %q records can be edited",
		e.Status, models.StatusNew)
}

// ProtectedFieldsError is returned when an update tries to change
// submitter fields, which are immutable once the pass exists.
type ProtectedFieldsError struct {
	Fields []string
}

func (e *ProtectedFieldsError) Error() string {
	return "editing protected user fields is not allowed: " + strings.Join(e.Fields, ", ")
}
