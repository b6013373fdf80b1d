package userrepo

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrAlreadyExists = errors.New("user already exists")
	ErrUsernameTaken = fmt.Errorf("username taken: %w", ErrAlreadyExists)
	ErrEmailTaken    = fmt.Errorf("email taken: %w", ErrAlreadyExists)
)
