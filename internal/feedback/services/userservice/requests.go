package userservice

import "strings"

type RegisterRequest struct {
	Username  string `form:"username"   validate:"required,max=20"`
	Password  string `form:"password"   validate:"required,maxbytes=72"`
	Email     string `form:"email"      validate:"required,max=50,email"`
	FirstName string `form:"first_name" validate:"required,max=30"`
	LastName  string `form:"last_name"  validate:"required,max=30"`
}

func (r RegisterRequest) normalized() RegisterRequest {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)

	return r
}

type LoginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}
