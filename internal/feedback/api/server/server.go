package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/Leopold1975/feedback_board/internal/feedback/domain/models"
	"github.com/Leopold1975/feedback_board/internal/feedback/services/feedbackservice"
	"github.com/Leopold1975/feedback_board/internal/feedback/services/userservice"
	"github.com/Leopold1975/feedback_board/internal/pkg/config"
	"github.com/Leopold1975/feedback_board/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	serv            *http.Server
	userService     UserService
	feedbackService FeedbackService
	sessions        SessionStore
	auth            config.Auth
	pages           map[string]*template.Template
	lg              logger.Logger
}

type UserService interface {
	Register(context.Context, userservice.RegisterRequest) (models.Identity, error)
	Login(context.Context, userservice.LoginRequest) (models.Identity, error)
	Logout(models.Identity) models.Identity
	Profile(context.Context, models.Identity, string) (userservice.Profile, error)
	DeleteAccount(context.Context, models.Identity, string) (models.Identity, error)
}

type FeedbackService interface {
	AuthorizeAdd(models.Identity, string) error
	AddFeedback(context.Context, models.Identity, string, feedbackservice.FeedbackRequest) (models.Feedback, error)
	GetFeedback(context.Context, models.Identity, int64) (models.Feedback, error)
	UpdateFeedback(context.Context, models.Identity, int64, feedbackservice.FeedbackRequest) (models.Feedback, error)
	DeleteFeedback(context.Context, models.Identity, int64) (models.Feedback, error)
}

type SessionStore interface {
	Get(context.Context, string) (models.Session, error)
	Save(context.Context, string, models.Session) error
	Delete(context.Context, string) error
	DeleteUserSessions(context.Context, string) error
}

func New(cfg config.Server, auth config.Auth, us UserService, fs FeedbackService,
	sessions SessionStore, lg logger.Logger,
) (*Server, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("parse templates error: %w", err)
	}

	s := &Server{
		userService:     us,
		feedbackService: fs,
		sessions:        sessions,
		auth:            auth,
		pages:           pages,
		lg:              lg,
	}

	s.serv = &http.Server{ //nolint:exhaustruct
		Addr:         cfg.Addr,
		Handler:      s.routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s, nil
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(loggingMiddleware(s.lg))
	r.Use(middleware.Recoverer)
	r.Use(noStore)
	r.Use(s.sessionMiddleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/register", http.StatusSeeOther)
	})

	r.Get("/register", s.registerForm)
	r.Post("/register", s.register)
	r.Get("/login", s.loginForm)
	r.Post("/login", s.login)
	r.Get("/logout", s.logout)

	r.Get("/users/{username}", s.profile)
	r.Get("/users/{username}/delete", s.deleteUserForm)
	r.Post("/users/{username}/delete", s.deleteUser)
	r.Get("/users/{username}/feedback/add", s.addFeedbackForm)
	r.Post("/users/{username}/feedback/add", s.addFeedback)

	r.Get("/feedback/{id}", s.editFeedbackForm)
	r.Post("/feedback/{id}", s.updateFeedback)
	r.Get("/feedback/{id}/delete", s.deleteFeedbackForm)
	r.Post("/feedback/{id}/delete", s.deleteFeedback)

	r.NotFound(s.notFound)

	return r
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.serv.Handler
}

func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.serv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			close(errCh)
		}
	}()

	select {
	case <-ctx.Done():
		ctxS, cancel := context.WithTimeout(context.Background(), time.Second*5) //nolint:gomnd
		defer cancel()

		if err := s.Shutdown(ctxS); err != nil { //nolint:contextcheck
			return fmt.Errorf("context error: %w server error %w", ctxS.Err(), err)
		}

		if !errors.Is(ctx.Err(), context.Canceled) {
			return fmt.Errorf("context cancelled error: %w", ctx.Err())
		}

		return nil
	case err := <-errCh:
		return fmt.Errorf("listen and serve error: %w", err)
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	ctxS, cancel := context.WithTimeout(ctx, s.serv.IdleTimeout)
	defer cancel()

	if err := s.serv.Shutdown(ctxS); err != nil {
		return fmt.Errorf("shutdown server error: %w", err)
	}

	return nil
}
