package server

import (
	"errors"
	"net/http"

	"github.com/Leopold1975/feedback_board/internal/feedback/domain/apperr"
	"github.com/Leopold1975/feedback_board/internal/feedback/domain/models"
)

const notAuthorizedMessage = "You are not authorized to do that. Please log in as the correct user."

// handleError turns a use case outcome that is not a form error into a response.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperr.ErrAuthorizationDenied):
		s.flash(w, r, models.FlashError, notAuthorizedMessage)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	case errors.Is(err, apperr.ErrNotFound):
		s.notFound(w, r)
	default:
		s.serverError(w, r, err)
	}
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, "not_found.html", &pageData{Title: "Not Found"}) //nolint:exhaustruct
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.lg.Errorf("%s %s error: %s", r.Method, r.URL.RequestURI(), err.Error())
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
