package feedbackrepo

import (
	"errors"

	"github.com/Leopold1975/feedback_board/internal/feedback/domain/models"
)

var (
	ErrNotFound     = errors.New("feedback not found")
	ErrUserNotFound = errors.New("feedback owner does not exist")
)

// UpdateFunc runs against the current row while it is locked. It may change
// Title and Content; any other change is discarded. A non-nil error aborts the update.
type UpdateFunc func(f *models.Feedback) error

// CheckFunc runs against the current row while it is locked. A non-nil error aborts the delete.
type CheckFunc func(f models.Feedback) error
