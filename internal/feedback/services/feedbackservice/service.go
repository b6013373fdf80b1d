package feedbackservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/Leopold1975/feedback_board/internal/feedback/domain/apperr"
	"github.com/Leopold1975/feedback_board/internal/feedback/domain/models"
	repo "github.com/Leopold1975/feedback_board/internal/feedback/repository/feedbackrepo"
	"github.com/Leopold1975/feedback_board/internal/feedback/services/guard"
	"github.com/Leopold1975/feedback_board/internal/feedback/services/validation"
	"github.com/Leopold1975/feedback_board/pkg/logger"
)

type FeedbackService struct {
	feedbackRepo Repository
	validator    *validation.Validator
	lg           logger.Logger
}

type Repository interface {
	CreateFeedback(context.Context, models.Feedback) (models.Feedback, error)
	GetFeedback(context.Context, int64) (models.Feedback, error)
	UpdateFeedback(context.Context, int64, repo.UpdateFunc) (models.Feedback, error)
	DeleteFeedback(context.Context, int64, repo.CheckFunc) error
}

func New(feedbackRepo Repository, lg logger.Logger) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		validator:    validation.New(),
		lg:           lg,
	}
}

// AuthorizeAdd reports whether identity may write feedback as username.
func (fs *FeedbackService) AuthorizeAdd(identity models.Identity, username string) error {
	if guard.RequireSelf(identity, username) == guard.Deny {
		fs.lg.Infof("adding feedback as %q denied to %q", username, identity.Username)

		return apperr.ErrAuthorizationDenied
	}

	return nil
}

func (fs *FeedbackService) AddFeedback(ctx context.Context, identity models.Identity,
	username string, req FeedbackRequest,
) (models.Feedback, error) {
	if err := fs.AuthorizeAdd(identity, username); err != nil {
		return models.Feedback{}, err
	}

	req = req.normalized()

	if err := fs.validator.Struct(req); err != nil {
		return models.Feedback{}, err
	}

	f, err := fs.feedbackRepo.CreateFeedback(ctx, models.Feedback{
		Title:    req.Title,
		Content:  req.Content,
		Username: username,
	})
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return models.Feedback{}, apperr.ErrNotFound
		}

		return models.Feedback{}, fmt.Errorf("create feedback error: %w", err)
	}

	return f, nil
}

// GetFeedback returns the record only to its owner. Existence is checked first.
func (fs *FeedbackService) GetFeedback(ctx context.Context, identity models.Identity, id int64) (models.Feedback, error) {
	f, err := fs.feedbackRepo.GetFeedback(ctx, id)
	if err != nil {
		return models.Feedback{}, mapRepoError(err, "get feedback")
	}

	if err := fs.requireOwner(identity, f); err != nil {
		return models.Feedback{}, err
	}

	return f, nil
}

// UpdateFeedback replaces title and content. The owner check and the write
// happen against the same locked row.
func (fs *FeedbackService) UpdateFeedback(ctx context.Context, identity models.Identity,
	id int64, req FeedbackRequest,
) (models.Feedback, error) {
	req = req.normalized()

	f, err := fs.feedbackRepo.UpdateFeedback(ctx, id, func(f *models.Feedback) error {
		if err := fs.requireOwner(identity, *f); err != nil {
			return err
		}

		if err := fs.validator.Struct(req); err != nil {
			return err
		}

		f.Title = req.Title
		f.Content = req.Content

		return nil
	})
	if err != nil {
		return models.Feedback{}, mapRepoError(err, "update feedback")
	}

	return f, nil
}

// DeleteFeedback returns the deleted record.
func (fs *FeedbackService) DeleteFeedback(ctx context.Context, identity models.Identity, id int64) (models.Feedback, error) {
	var deleted models.Feedback

	err := fs.feedbackRepo.DeleteFeedback(ctx, id, func(f models.Feedback) error {
		if err := fs.requireOwner(identity, f); err != nil {
			return err
		}

		deleted = f

		return nil
	})
	if err != nil {
		return models.Feedback{}, mapRepoError(err, "delete feedback")
	}

	return deleted, nil
}

func (fs *FeedbackService) requireOwner(identity models.Identity, f models.Feedback) error {
	if guard.RequireOwner(identity, f) == guard.Deny {
		fs.lg.Infof("feedback %d of %q denied to %q", f.ID, f.Username, identity.Username)

		return apperr.ErrAuthorizationDenied
	}

	return nil
}

func mapRepoError(err error, op string) error {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return apperr.ErrNotFound
	case errors.Is(err, apperr.ErrAuthorizationDenied):
		return apperr.ErrAuthorizationDenied
	case errors.Is(err, apperr.ErrValidation):
		var ve *apperr.ValidationError
		if errors.As(err, &ve) {
			return ve
		}
	}

	return fmt.Errorf("%s error: %w", op, err)
}
