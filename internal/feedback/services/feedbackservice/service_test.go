package feedbackservice

import (
	"context"
	"strings"
	"testing"

	"github.com/Leopold1975/feedback_board/internal/feedback/domain/apperr"
	"github.com/Leopold1975/feedback_board/internal/feedback/domain/models"
	"github.com/Leopold1975/feedback_board/internal/feedback/repository/memrepo"
	"github.com/Leopold1975/feedback_board/pkg/logger"
	"github.com/stretchr/testify/require"
)

var (
	alice = models.Authenticated("alice")
	bob   = models.Authenticated("bob")
)

func newService(t *testing.T) (*FeedbackService, *memrepo.Store) {
	t.Helper()

	ctx := context.Background()
	store := memrepo.New()

	for _, name := range []string{"alice", "bob", "carol"} {
		require.NoError(t, store.CreateUser(ctx, models.User{
			Username:     name,
			PasswordHash: "hash",
			Email:        name + "@x.com",
			FirstName:    name,
			LastName:     name,
		}))
	}

	return New(store, logger.Nop()), store
}

func TestAddFeedbackForOtherUserDenied(t *testing.T) {
	fs, store := newService(t)
	ctx := context.Background()

	_, err := fs.AddFeedback(ctx, bob, "alice", FeedbackRequest{Title: "t", Content: "c"})
	require.ErrorIs(t, err, apperr.ErrAuthorizationDenied)

	_, err = fs.AddFeedback(ctx, models.Anonymous(), "alice", FeedbackRequest{Title: "t", Content: "c"})
	require.ErrorIs(t, err, apperr.ErrAuthorizationDenied)

	list, err := store.ListFeedbackByUser(ctx, "alice")
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestAddFeedbackValidation(t *testing.T) {
	fs, store := newService(t)
	ctx := context.Background()

	_, err := fs.AddFeedback(ctx, alice, "alice", FeedbackRequest{Title: strings.Repeat("t", 101), Content: "   "})
	require.ErrorIs(t, err, apperr.ErrValidation)

	fields := apperr.FieldErrors(err)
	require.Equal(t, "must be at most 100 characters", fields["title"])
	require.Equal(t, "is required", fields["content"])

	f, err := fs.AddFeedback(ctx, alice, "alice", FeedbackRequest{Title: strings.Repeat("t", 100), Content: "ok"})
	require.NoError(t, err)
	require.Equal(t, "alice", f.Username)

	list, err := store.ListFeedbackByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestAddFeedbackMissingOwner(t *testing.T) {
	fs, _ := newService(t)

	_, err := fs.AddFeedback(context.Background(), models.Authenticated("ghost"), "ghost",
		FeedbackRequest{Title: "t", Content: "c"})
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateByNonOwnerDenied(t *testing.T) {
	fs, store := newService(t)
	ctx := context.Background()

	var target models.Feedback

	for i := 0; i < 5; i++ {
		f, err := fs.AddFeedback(ctx, alice, "alice", FeedbackRequest{Title: "title", Content: "content"})
		require.NoError(t, err)

		target = f
	}

	require.EqualValues(t, 5, target.ID)

	_, err := fs.UpdateFeedback(ctx, bob, 5, FeedbackRequest{Title: "pwned", Content: "pwned"})
	require.ErrorIs(t, err, apperr.ErrAuthorizationDenied)

	got, err := store.GetFeedback(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, target, got)

	_, err = fs.DeleteFeedback(ctx, bob, 5)
	require.ErrorIs(t, err, apperr.ErrAuthorizationDenied)

	_, err = store.GetFeedback(ctx, 5)
	require.NoError(t, err)

	_, err = fs.GetFeedback(ctx, bob, 5)
	require.ErrorIs(t, err, apperr.ErrAuthorizationDenied)
}

func TestMissingFeedbackIsNotFoundBeforeAuthorization(t *testing.T) {
	fs, _ := newService(t)
	ctx := context.Background()

	_, err := fs.GetFeedback(ctx, models.Anonymous(), 42)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = fs.UpdateFeedback(ctx, models.Anonymous(), 42, FeedbackRequest{Title: "t", Content: "c"})
	require.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = fs.DeleteFeedback(ctx, models.Anonymous(), 42)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateValidationLeavesRow(t *testing.T) {
	fs, store := newService(t)
	ctx := context.Background()

	f, err := fs.AddFeedback(ctx, alice, "alice", FeedbackRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	_, err = fs.UpdateFeedback(ctx, alice, f.ID, FeedbackRequest{Title: "", Content: "new"})
	require.ErrorIs(t, err, apperr.ErrValidation)
	require.Contains(t, apperr.FieldErrors(err), "title")

	got, err := store.GetFeedback(ctx, f.ID)
	require.NoError(t, err)
	require.Equal(t, f, got)
}

func TestFeedbackLifecycle(t *testing.T) {
	fs, store := newService(t)
	ctx := context.Background()
	carol := models.Authenticated("carol")

	f, err := fs.AddFeedback(ctx, carol, "carol", FeedbackRequest{Title: "Hi", Content: "body"})
	require.NoError(t, err)
	require.Equal(t, models.Feedback{ID: 1, Title: "Hi", Content: "body", Username: "carol"}, f)

	f, err = fs.UpdateFeedback(ctx, carol, 1, FeedbackRequest{Title: "Hi2", Content: "body2"})
	require.NoError(t, err)
	require.Equal(t, models.Feedback{ID: 1, Title: "Hi2", Content: "body2", Username: "carol"}, f)

	got, err := fs.GetFeedback(ctx, carol, 1)
	require.NoError(t, err)
	require.Equal(t, f, got)

	deleted, err := fs.DeleteFeedback(ctx, carol, 1)
	require.NoError(t, err)
	require.Equal(t, "carol", deleted.Username)

	_, err = fs.GetFeedback(ctx, carol, 1)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	list, err := store.ListFeedbackByUser(ctx, "carol")
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestAuthorizeAdd(t *testing.T) {
	fs, _ := newService(t)

	require.NoError(t, fs.AuthorizeAdd(alice, "alice"))
	require.ErrorIs(t, fs.AuthorizeAdd(bob, "alice"), apperr.ErrAuthorizationDenied)
	require.ErrorIs(t, fs.AuthorizeAdd(models.Anonymous(), "alice"), apperr.ErrAuthorizationDenied)
}
