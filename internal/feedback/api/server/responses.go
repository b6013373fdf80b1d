package server

import "github.com/Leopold1975/feedback_board/internal/feedback/domain/models"

// pageData is what every template renders from.
type pageData struct {
	Title     string
	Identity  models.Identity
	Flashes   []models.Flash
	FormError string
	Errors    map[string]string
	Form      map[string]string
	User      models.User
	Feedback  models.Feedback
	Feedbacks []models.Feedback
}
