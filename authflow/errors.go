package authflow

import (
	"fmt"
	"strings"
)

type (
	ValidationError struct {
		Fields []string
	}

	ConflictError struct {
		Email string
	}

	AuthError struct {
		Reason string
	}
)

var (
	// ErrInvalidCredentials covers both unknown emails and wrong passwords
	ErrInvalidCredentials = AuthError{Reason: "invalid credentials"}
	ErrNotLoggedIn        = AuthError{Reason: "not logged in"}
)

func (v ValidationError) Error() string {
	return fmt.Sprintf("missing fields: %v", strings.Join(v.Fields, ", "))
}

// Is matches any ValidationError regardless of the fields listed
func (v ValidationError) Is(target error) bool {
	_, ok := target.(ValidationError)
	return ok
}

func (c ConflictError) Error() string {
	return fmt.Sprintf("user %v already exists", c.Email)
}

func (a AuthError) Error() string {
	return a.Reason
}
