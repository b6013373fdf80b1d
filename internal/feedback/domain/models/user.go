package models

type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"` //nolint:tagliatelle
	LastName     string `json:"last_name"`  //nolint:tagliatelle
}
