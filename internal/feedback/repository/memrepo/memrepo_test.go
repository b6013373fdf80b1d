package memrepo

import (
	"context"
	"errors"
	"testing"

	"github.com/Leopold1975/feedback_board/internal/feedback/domain/models"
	"github.com/Leopold1975/feedback_board/internal/feedback/repository/feedbackrepo"
	"github.com/Leopold1975/feedback_board/internal/feedback/repository/userrepo"
	"github.com/stretchr/testify/require"
)

func alice() models.User {
	return models.User{
		Username:     "alice",
		PasswordHash: "hash",
		Email:        "a@x.com",
		FirstName:    "Alice",
		LastName:     "A",
	}
}

func TestUserUniqueness(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.CreateUser(ctx, alice()))

	dup := alice()
	dup.Email = "other@x.com"
	require.ErrorIs(t, s.CreateUser(ctx, dup), userrepo.ErrUsernameTaken)

	dup = alice()
	dup.Username = "alice2"
	err := s.CreateUser(ctx, dup)
	require.ErrorIs(t, err, userrepo.ErrEmailTaken)
	require.ErrorIs(t, err, userrepo.ErrAlreadyExists)

	_, err = s.GetUser(ctx, "alice2")
	require.ErrorIs(t, err, userrepo.ErrNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.CreateUser(ctx, alice()))

	f, err := s.CreateFeedback(ctx, models.Feedback{Title: "t", Content: "c", Username: "alice"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteUser(ctx, "alice"))

	_, err = s.GetUser(ctx, "alice")
	require.ErrorIs(t, err, userrepo.ErrNotFound)

	_, err = s.GetFeedback(ctx, f.ID)
	require.ErrorIs(t, err, feedbackrepo.ErrNotFound)

	require.ErrorIs(t, s.DeleteUser(ctx, "alice"), userrepo.ErrNotFound)

	// the email is free again
	require.NoError(t, s.CreateUser(ctx, alice()))
}

func TestFeedbackLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.CreateFeedback(ctx, models.Feedback{Title: "t", Content: "c", Username: "ghost"})
	require.ErrorIs(t, err, feedbackrepo.ErrUserNotFound)

	require.NoError(t, s.CreateUser(ctx, alice()))

	first, err := s.CreateFeedback(ctx, models.Feedback{Title: "one", Content: "1", Username: "alice"})
	require.NoError(t, err)
	second, err := s.CreateFeedback(ctx, models.Feedback{Title: "two", Content: "2", Username: "alice"})
	require.NoError(t, err)
	require.Greater(t, second.ID, first.ID)

	updated, err := s.UpdateFeedback(ctx, first.ID, func(f *models.Feedback) error {
		f.Title = "uno"
		f.Username = "mallory"
		f.ID = 99

		return nil
	})
	require.NoError(t, err)
	require.Equal(t, models.Feedback{ID: first.ID, Title: "uno", Content: "1", Username: "alice"}, updated)

	list, err := s.ListFeedbackByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "uno", list[0].Title)

	stop := errors.New("stop")
	require.ErrorIs(t, s.DeleteFeedback(ctx, second.ID, func(models.Feedback) error { return stop }), stop)

	_, err = s.GetFeedback(ctx, second.ID)
	require.NoError(t, err)

	require.NoError(t, s.DeleteFeedback(ctx, second.ID, func(models.Feedback) error { return nil }))
	require.ErrorIs(t, s.DeleteFeedback(ctx, second.ID, func(models.Feedback) error { return nil }), feedbackrepo.ErrNotFound)

	_, err = s.UpdateFeedback(ctx, 404, func(*models.Feedback) error { return nil })
	require.ErrorIs(t, err, feedbackrepo.ErrNotFound)
}

func TestUpdateAbortLeavesRow(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.CreateUser(ctx, alice()))

	f, err := s.CreateFeedback(ctx, models.Feedback{Title: "t", Content: "c", Username: "alice"})
	require.NoError(t, err)

	stop := errors.New("stop")
	_, err = s.UpdateFeedback(ctx, f.ID, func(f *models.Feedback) error {
		f.Title = "changed"

		return stop
	})
	require.ErrorIs(t, err, stop)

	got, err := s.GetFeedback(ctx, f.ID)
	require.NoError(t, err)
	require.Equal(t, "t", got.Title)
}
