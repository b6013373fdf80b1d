package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Leopold1975/feedback_board/internal/feedback/domain/models"
	"github.com/Leopold1975/feedback_board/internal/feedback/repository/sessionstore"
	"github.com/Leopold1975/feedback_board/internal/pkg/jwtauth"
	"github.com/google/uuid"
)

const SessionCookieName = "feedback_session"

type sessionCtxKey struct{}

// webSession is the session of the current request. id is empty until the
// session is first saved.
type webSession struct {
	id   string
	data models.Session
}

func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws := s.loadSession(r)

		ctx := context.WithValue(r.Context(), sessionCtxKey{}, ws)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) loadSession(r *http.Request) *webSession {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return &webSession{}
	}

	id, err := jwtauth.ValidateToken(cookie.Value, s.auth.Secret)
	if err != nil {
		return &webSession{}
	}

	data, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, sessionstore.ErrNotFound) {
			s.lg.Errorf("load session error: %s", err.Error())
		}

		return &webSession{}
	}

	return &webSession{id: id, data: data}
}

func currentSession(r *http.Request) *webSession {
	ws, ok := r.Context().Value(sessionCtxKey{}).(*webSession)
	if !ok {
		return &webSession{}
	}

	return ws
}

// identity is the session identity every use case is called with.
func (s *Server) identity(r *http.Request) models.Identity {
	return currentSession(r).data.Identity()
}

func (s *Server) saveSession(w http.ResponseWriter, r *http.Request, ws *webSession) error {
	if ws.id == "" {
		ws.id = uuid.NewString()
	}

	if err := s.sessions.Save(r.Context(), ws.id, ws.data); err != nil {
		return fmt.Errorf("save session error: %w", err)
	}

	token, err := jwtauth.GetToken(ws.id, s.auth.TTL, s.auth.Secret)
	if err != nil {
		return fmt.Errorf("get token error: %w", err)
	}

	http.SetCookie(w, &http.Cookie{ //nolint:exhaustruct
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.auth.TTL.Seconds()),
		HttpOnly: true,
		Secure:   s.auth.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// switchIdentity moves the request's session to identity under a fresh id,
// keeping pending flashes. An anonymous session with nothing to keep is dropped.
func (s *Server) switchIdentity(w http.ResponseWriter, r *http.Request, identity models.Identity) error {
	ws := currentSession(r)

	if ws.id != "" {
		if err := s.sessions.Delete(r.Context(), ws.id); err != nil {
			return fmt.Errorf("delete session error: %w", err)
		}
	}

	ws.id = ""
	ws.data.Username = identity.Username

	if identity.IsAnonymous() && len(ws.data.Flashes) == 0 {
		http.SetCookie(w, &http.Cookie{ //nolint:exhaustruct
			Name:     SessionCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})

		return nil
	}

	return s.saveSession(w, r, ws)
}

func addFlash(r *http.Request, kind, message string) {
	ws := currentSession(r)
	ws.data.Flashes = append(ws.data.Flashes, models.Flash{Kind: kind, Message: message})
}

// flash queues a message for the next rendered page. Failures are only logged.
func (s *Server) flash(w http.ResponseWriter, r *http.Request, kind, message string) {
	addFlash(r, kind, message)

	ws := currentSession(r)
	if err := s.saveSession(w, r, ws); err != nil {
		s.lg.Errorf("flash error: %s", err.Error())
	}
}

func (s *Server) popFlashes(w http.ResponseWriter, r *http.Request) []models.Flash {
	ws := currentSession(r)
	if len(ws.data.Flashes) == 0 {
		return nil
	}

	flashes := ws.data.Flashes
	ws.data.Flashes = nil

	if err := s.saveSession(w, r, ws); err != nil {
		s.lg.Errorf("pop flashes error: %s", err.Error())
	}

	return flashes
}
