package blog

import (
	"crypto/subtle"
	"errors"
)

var (
	ErrInvalidUsername = errors.New("invalid username")
	ErrInvalidPassword = errors.New("invalid password")
)

// Credentials are the single username and password allowed to log in.
type Credentials struct {
	Username string
	Password string
}

// Check compares the username, then the password, against c.
// The first mismatch is returned as ErrInvalidUsername or ErrInvalidPassword.
func (c Credentials) Check(username, password string) error {
	if !equal(c.Username, username) {
		return ErrInvalidUsername
	}

	if !equal(c.Password, password) {
		return ErrInvalidPassword
	}

	return nil
}

func equal(want, got string) bool {
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}

// checkMsg is the text the login form shows for an error Check returns.
func checkMsg(err error) string {
	switch {
	case errors.Is(err, ErrInvalidUsername):
		return "Invalid username"
	case errors.Is(err, ErrInvalidPassword):
		return "Invalid password"
	default:
		return "Invalid credentials"
	}
}
