// Package user wraps the user service endpoints.
package user

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"example.com/fitnessclient/internal/domain"
	httptransport "example.com/fitnessclient/internal/transport/http"
)

// Repository reads and registers user accounts.
type Repository struct {
	client *httptransport.Client
}

// NewRepository constructs a Repository over the authenticated client.
func NewRepository(client *httptransport.Client) *Repository {
	return &Repository{client: client}
}

// Profile fetches the profile for id.
func (r *Repository) Profile(ctx context.Context, id string) (*domain.User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, &domain.ValidationError{Field: "id", Reason: "is required"}
	}
	var u domain.User
	if err := r.client.Do(ctx, httptransport.Call{
		Method: http.MethodGet,
		Route:  "/users/{id}",
		Path:   "/users/" + url.PathEscape(id),
		Out:    &u,
	}); err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return &u, nil
}

// Register signs up a new account. Registering an existing email returns that account.
func (r *Repository) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	var u domain.User
	if err := r.client.Do(ctx, httptransport.Call{
		Method: http.MethodPost,
		Route:  "/users/register",
		Body:   reg,
		Out:    &u,
	}); err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}
	return &u, nil
}

// Validate reports whether the backend knows id.
func (r *Repository) Validate(ctx context.Context, id string) (bool, error) {
	if strings.TrimSpace(id) == "" {
		return false, &domain.ValidationError{Field: "id", Reason: "is required"}
	}
	var exists bool
	if err := r.client.Do(ctx, httptransport.Call{
		Method: http.MethodGet,
		Route:  "/users/{id}/validate",
		Path:   "/users/" + url.PathEscape(id) + "/validate",
		Out:    &exists,
	}); err != nil {
		return false, fmt.Errorf("validate user %s: %w", id, err)
	}
	return exists, nil
}
