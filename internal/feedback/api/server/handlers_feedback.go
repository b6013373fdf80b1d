package server

import (
	"net/http"

	"github.com/Leopold1975/feedback_board/internal/feedback/domain/apperr"
	"github.com/Leopold1975/feedback_board/internal/feedback/domain/models"
	"github.com/Leopold1975/feedback_board/internal/feedback/services/feedbackservice"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

func feedbackID(r *http.Request) (int64, bool) {
	var id int64

	err := runtime.BindStyledParameterWithLocation("simple", false, "id",
		runtime.ParamLocationPath, chi.URLParam(r, "id"), &id)
	if err != nil {
		return 0, false
	}

	return id, true
}

func feedbackForm(r *http.Request) feedbackservice.FeedbackRequest {
	return feedbackservice.FeedbackRequest{
		Title:   r.PostFormValue("title"),
		Content: r.PostFormValue("content"),
	}
}

// (GET /users/{username}/feedback/add).
func (s *Server) addFeedbackForm(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	if err := s.feedbackService.AuthorizeAdd(s.identity(r), username); err != nil {
		s.handleError(w, r, err)

		return
	}

	s.render(w, r, http.StatusOK, "add_feedback.html", &pageData{ //nolint:exhaustruct
		Title: "Add feedback",
		User:  models.User{Username: username}, //nolint:exhaustruct
	})
}

// (POST /users/{username}/feedback/add).
func (s *Server) addFeedback(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	req := feedbackForm(r)

	_, err := s.feedbackService.AddFeedback(r.Context(), s.identity(r), username, req)
	if err != nil {
		if fields := apperr.FieldErrors(err); fields != nil {
			s.render(w, r, http.StatusBadRequest, "add_feedback.html", &pageData{ //nolint:exhaustruct
				Title:  "Add feedback",
				User:   models.User{Username: username}, //nolint:exhaustruct
				Errors: fields,
				Form:   map[string]string{"title": req.Title, "content": req.Content},
			})

			return
		}

		s.handleError(w, r, err)

		return
	}

	s.flash(w, r, models.FlashSuccess, "Feedback added.")
	http.Redirect(w, r, profileURL(username), http.StatusSeeOther)
}

// (GET /feedback/{id}).
func (s *Server) editFeedbackForm(w http.ResponseWriter, r *http.Request) {
	id, ok := feedbackID(r)
	if !ok {
		s.notFound(w, r)

		return
	}

	f, err := s.feedbackService.GetFeedback(r.Context(), s.identity(r), id)
	if err != nil {
		s.handleError(w, r, err)

		return
	}

	s.render(w, r, http.StatusOK, "update_feedback.html", &pageData{ //nolint:exhaustruct
		Title:    "Edit feedback",
		Feedback: f,
		Form:     map[string]string{"title": f.Title, "content": f.Content},
	})
}

// (POST /feedback/{id}).
func (s *Server) updateFeedback(w http.ResponseWriter, r *http.Request) {
	id, ok := feedbackID(r)
	if !ok {
		s.notFound(w, r)

		return
	}

	req := feedbackForm(r)

	f, err := s.feedbackService.UpdateFeedback(r.Context(), s.identity(r), id, req)
	if err != nil {
		if fields := apperr.FieldErrors(err); fields != nil {
			s.render(w, r, http.StatusBadRequest, "update_feedback.html", &pageData{ //nolint:exhaustruct
				Title:    "Edit feedback",
				Feedback: models.Feedback{ID: id}, //nolint:exhaustruct
				Errors:   fields,
				Form:     map[string]string{"title": req.Title, "content": req.Content},
			})

			return
		}

		s.handleError(w, r, err)

		return
	}

	s.flash(w, r, models.FlashSuccess, "Feedback updated successfully!")
	http.Redirect(w, r, profileURL(f.Username), http.StatusSeeOther)
}

// (GET /feedback/{id}/delete).
func (s *Server) deleteFeedbackForm(w http.ResponseWriter, r *http.Request) {
	id, ok := feedbackID(r)
	if !ok {
		s.notFound(w, r)

		return
	}

	f, err := s.feedbackService.GetFeedback(r.Context(), s.identity(r), id)
	if err != nil {
		s.handleError(w, r, err)

		return
	}

	s.render(w, r, http.StatusOK, "delete_feedback.html", &pageData{ //nolint:exhaustruct
		Title:    "Delete feedback",
		Feedback: f,
	})
}

// (POST /feedback/{id}/delete).
func (s *Server) deleteFeedback(w http.ResponseWriter, r *http.Request) {
	id, ok := feedbackID(r)
	if !ok {
		s.notFound(w, r)

		return
	}

	f, err := s.feedbackService.DeleteFeedback(r.Context(), s.identity(r), id)
	if err != nil {
		s.handleError(w, r, err)

		return
	}

	s.flash(w, r, models.FlashSuccess, "Feedback deleted successfully!")
	http.Redirect(w, r, profileURL(f.Username), http.StatusSeeOther)
}
