package server

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/Leopold1975/feedback_board/internal/feedback/domain/apperr"
	"github.com/Leopold1975/feedback_board/internal/feedback/domain/models"
	"github.com/Leopold1975/feedback_board/internal/feedback/services/userservice"
	"github.com/go-chi/chi/v5"
)

func profileURL(username string) string {
	return "/users/" + url.PathEscape(username)
}

// (GET /register).
func (s *Server) registerForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "register.html", &pageData{Title: "Register"}) //nolint:exhaustruct
}

// (POST /register).
func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	req := userservice.RegisterRequest{
		Username:  r.PostFormValue("username"),
		Password:  r.PostFormValue("password"),
		Email:     r.PostFormValue("email"),
		FirstName: r.PostFormValue("first_name"),
		LastName:  r.PostFormValue("last_name"),
	}

	identity, err := s.userService.Register(r.Context(), req)
	if err != nil {
		if fields := apperr.FieldErrors(err); fields != nil {
			s.render(w, r, http.StatusBadRequest, "register.html", &pageData{ //nolint:exhaustruct
				Title:  "Register",
				Errors: fields,
				Form: map[string]string{
					"username":   req.Username,
					"email":      req.Email,
					"first_name": req.FirstName,
					"last_name":  req.LastName,
				},
			})

			return
		}

		s.handleError(w, r, err)

		return
	}

	if err := s.switchIdentity(w, r, identity); err != nil {
		s.serverError(w, r, err)

		return
	}

	http.Redirect(w, r, profileURL(identity.Username), http.StatusSeeOther)
}

// (GET /login).
func (s *Server) loginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "login.html", &pageData{Title: "Login"}) //nolint:exhaustruct
}

// (POST /login).
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	req := userservice.LoginRequest{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	identity, err := s.userService.Login(r.Context(), req)
	if err != nil {
		data := &pageData{ //nolint:exhaustruct
			Title: "Login",
			Form:  map[string]string{"username": req.Username},
		}

		switch {
		case errors.Is(err, apperr.ErrInvalidCredentials):
			data.FormError = "Invalid username or password"
			s.render(w, r, http.StatusUnauthorized, "login.html", data)
		case errors.Is(err, apperr.ErrValidation):
			data.Errors = apperr.FieldErrors(err)
			s.render(w, r, http.StatusBadRequest, "login.html", data)
		default:
			s.handleError(w, r, err)
		}

		return
	}

	if err := s.switchIdentity(w, r, identity); err != nil {
		s.serverError(w, r, err)

		return
	}

	http.Redirect(w, r, profileURL(identity.Username), http.StatusSeeOther)
}

// (GET /logout).
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	identity := s.userService.Logout(s.identity(r))

	if err := s.switchIdentity(w, r, identity); err != nil {
		s.serverError(w, r, err)

		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// (GET /users/{username}).
func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	p, err := s.userService.Profile(r.Context(), s.identity(r), chi.URLParam(r, "username"))
	if err != nil {
		s.handleError(w, r, err)

		return
	}

	s.render(w, r, http.StatusOK, "profile.html", &pageData{ //nolint:exhaustruct
		Title:     p.User.Username,
		User:      p.User,
		Feedbacks: p.Feedback,
	})
}

// (GET /users/{username}/delete).
func (s *Server) deleteUserForm(w http.ResponseWriter, r *http.Request) {
	p, err := s.userService.Profile(r.Context(), s.identity(r), chi.URLParam(r, "username"))
	if err != nil {
		s.handleError(w, r, err)

		return
	}

	s.render(w, r, http.StatusOK, "delete_user.html", &pageData{ //nolint:exhaustruct
		Title: "Delete account",
		User:  p.User,
	})
}

// (POST /users/{username}/delete).
func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	identity, err := s.userService.DeleteAccount(r.Context(), s.identity(r), username)
	if err != nil {
		s.handleError(w, r, err)

		return
	}

	if err := s.sessions.DeleteUserSessions(r.Context(), username); err != nil {
		s.lg.Errorf("end sessions of %q error: %s", username, err.Error())
	}

	addFlash(r, models.FlashSuccess, "Your account has been deleted.")

	if err := s.switchIdentity(w, r, identity); err != nil {
		s.serverError(w, r, err)

		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
