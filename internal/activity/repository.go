// Package activity provides typed access to the activity endpoints.
package activity

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"example.com/fitnessclient/internal/domain"
	httptransport "example.com/fitnessclient/internal/transport/http"
)

const (
	routeActivities = "/activities"
	routeActivity   = "/activities/{id}"
)

// Repository creates and fetches activities for the signed-in user.
type Repository struct {
	client *httptransport.Client
	newKey func() string
}

// NewRepository constructs a Repository over the authenticated client.
func NewRepository(client *httptransport.Client) *Repository {
	return &Repository{client: client, newKey: uuid.NewString}
}

// List returns the session's activities in the order the backend sent them.
func (r *Repository) List(ctx context.Context) ([]domain.Activity, error) {
	var activities []domain.Activity
	if err := r.client.Do(ctx, httptransport.Call{
		Method: http.MethodGet,
		Route:  routeActivities,
		Out:    &activities,
	}); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	if activities == nil {
		activities = []domain.Activity{}
	}
	return activities, nil
}

// Create validates draft locally and submits it. Invalid drafts never reach the network.
func (r *Repository) Create(ctx context.Context, draft domain.Draft) (*domain.Activity, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	header := http.Header{}
	header.Set("Idempotency-Key", r.newKey())

	var created domain.Activity
	if err := r.client.Do(ctx, httptransport.Call{
		Method: http.MethodPost,
		Route:  routeActivities,
		Header: header,
		Body:   draft,
		Out:    &created,
	}); err != nil {
		return nil, fmt.Errorf("create activity: %w", err)
	}
	return &created, nil
}

// Get fetches one activity. A missing activity yields an error matching domain.ErrNotFound.
func (r *Repository) Get(ctx context.Context, id string) (*domain.Activity, error) {
	if strings.TrimSpace(id) == "" {
		return nil, &domain.ValidationError{Field: "id", Reason: "is required"}
	}

	var activity domain.Activity
	if err := r.client.Do(ctx, httptransport.Call{
		Method: http.MethodGet,
		Route:  routeActivity,
		Path:   "/activities/" + url.PathEscape(id),
		Out:    &activity,
	}); err != nil {
		return nil, fmt.Errorf("get activity %s: %w", id, err)
	}
	return &activity, nil
}
