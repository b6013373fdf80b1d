package feedbackservice

import "strings"

type FeedbackRequest struct {
	Title   string `form:"title"   validate:"required,max=100"`
	Content string `form:"content" validate:"required"`
}

func (r FeedbackRequest) normalized() FeedbackRequest {
	r.Title = strings.TrimSpace(r.Title)

	if strings.TrimSpace(r.Content) == "" {
		r.Content = ""
	}

	return r
}
