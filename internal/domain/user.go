package domain

import (
	"strings"
	"time"
)

// User is the profile the user service keeps for an account.
type User struct {
	ID         string     `json:"id"`
	KeycloakID string     `json:"keycloakId,omitempty"`
	Email      string     `json:"email"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

// Registration is the sign-up payload for POST /users/register.
type Registration struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	KeycloakID string `json:"keycloakId,omitempty"`
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
}

// Validate checks the fields the user service requires.
func (r Registration) Validate() error {
	if strings.TrimSpace(r.Email) == "" || !strings.Contains(r.Email, "@") {
		return &ValidationError{Field: "email", Reason: "a valid email is required"}
	}
	if len(r.Password) < 6 {
		return &ValidationError{Field: "password", Reason: "must be at least 6 characters"}
	}
	return nil
}
