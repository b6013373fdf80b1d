package userservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Leopold1975/feedback_board/internal/feedback/domain/apperr"
	"github.com/Leopold1975/feedback_board/internal/feedback/domain/models"
	"github.com/Leopold1975/feedback_board/internal/feedback/repository/userrepo"
	"github.com/Leopold1975/feedback_board/internal/feedback/services/guard"
	"github.com/Leopold1975/feedback_board/internal/feedback/services/validation"
	"github.com/Leopold1975/feedback_board/pkg/logger"
)

type UserService struct {
	userRepo     Repository
	feedbackRepo FeedbackLister
	hasher       Hasher
	validator    *validation.Validator
	lg           logger.Logger
}

type Repository interface {
	CreateUser(context.Context, models.User) error
	GetUser(context.Context, string) (models.User, error)
	DeleteUser(context.Context, string) error
}

type FeedbackLister interface {
	ListFeedbackByUser(context.Context, string) ([]models.Feedback, error)
}

type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// Profile is a user together with the feedback they wrote.
type Profile struct {
	User     models.User
	Feedback []models.Feedback
}

func New(userRepo Repository, feedbackRepo FeedbackLister, hasher Hasher, lg logger.Logger) *UserService {
	return &UserService{
		userRepo:     userRepo,
		feedbackRepo: feedbackRepo,
		hasher:       hasher,
		validator:    validation.New(),
		lg:           lg,
	}
}

// Register creates the user and returns the identity the session should now carry.
func (us *UserService) Register(ctx context.Context, req RegisterRequest) (models.Identity, error) {
	req = req.normalized()

	if err := us.validator.Struct(req); err != nil {
		return models.Anonymous(), err
	}

	hash, err := us.hasher.Hash(req.Password)
	if err != nil {
		return models.Anonymous(), fmt.Errorf("hash password error: %w", err)
	}

	u := models.User{
		Username:     req.Username,
		PasswordHash: hash,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}

	if err := us.userRepo.CreateUser(ctx, u); err != nil {
		switch {
		case errors.Is(err, userrepo.ErrEmailTaken):
			return models.Anonymous(), apperr.Duplicate("email", "is already registered")
		case errors.Is(err, userrepo.ErrAlreadyExists):
			return models.Anonymous(), apperr.Duplicate("username", "is already taken")
		}

		return models.Anonymous(), fmt.Errorf("create user error: %w", err)
	}

	us.lg.Infof("registered user %q", u.Username)

	return models.Authenticated(u.Username), nil
}

// Login never tells apart an unknown username from a wrong password.
func (us *UserService) Login(ctx context.Context, req LoginRequest) (models.Identity, error) {
	req.Username = strings.TrimSpace(req.Username)

	if err := us.validator.Struct(req); err != nil {
		return models.Anonymous(), err
	}

	u, err := us.userRepo.GetUser(ctx, req.Username)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			us.lg.Infof("failed login for %q", req.Username)

			return models.Anonymous(), apperr.ErrInvalidCredentials
		}

		return models.Anonymous(), fmt.Errorf("get user error: %w", err)
	}

	if !us.hasher.Verify(req.Password, u.PasswordHash) {
		us.lg.Infof("failed login for %q", req.Username)

		return models.Anonymous(), apperr.ErrInvalidCredentials
	}

	return models.Authenticated(u.Username), nil
}

// Logout always succeeds, also for anonymous identities.
func (us *UserService) Logout(models.Identity) models.Identity {
	return models.Anonymous()
}

func (us *UserService) Profile(ctx context.Context, identity models.Identity, username string) (Profile, error) {
	if guard.RequireSelf(identity, username) == guard.Deny {
		us.lg.Infof("profile of %q denied to %q", username, identity.Username)

		return Profile{}, apperr.ErrAuthorizationDenied
	}

	u, err := us.userRepo.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return Profile{}, apperr.ErrNotFound
		}

		return Profile{}, fmt.Errorf("get user error: %w", err)
	}

	feedback, err := us.feedbackRepo.ListFeedbackByUser(ctx, username)
	if err != nil {
		return Profile{}, fmt.Errorf("list feedback error: %w", err)
	}

	return Profile{User: u, Feedback: feedback}, nil
}

// DeleteAccount removes the user with their feedback and returns the identity
// the session should carry afterwards.
func (us *UserService) DeleteAccount(ctx context.Context, identity models.Identity, username string) (models.Identity, error) {
	if guard.RequireSelf(identity, username) == guard.Deny {
		us.lg.Infof("deleting %q denied to %q", username, identity.Username)

		return identity, apperr.ErrAuthorizationDenied
	}

	if err := us.userRepo.DeleteUser(ctx, username); err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return identity, apperr.ErrNotFound
		}

		return identity, fmt.Errorf("delete user error: %w", err)
	}

	us.lg.Infof("deleted user %q", username)

	return models.Anonymous(), nil
}
