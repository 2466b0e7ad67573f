// Package recommendation provides typed access to the AI recommendation endpoints.
package recommendation

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"example.com/fitnessclient/internal/domain"
	httptransport "example.com/fitnessclient/internal/transport/http"
)

// Repository fetches recommendations generated for activities.
type Repository struct {
	client *httptransport.Client
}

// NewRepository constructs a Repository over the authenticated client.
func NewRepository(client *httptransport.Client) *Repository {
	return &Repository{client: client}
}

// ForActivity returns the recommendation for activityID. Until one has been
// generated the error matches domain.ErrNotFound.
func (r *Repository) ForActivity(ctx context.Context, activityID string) (*domain.Recommendation, error) {
	if strings.TrimSpace(activityID) == "" {
		return nil, &domain.ValidationError{Field: "activityId", Reason: "is required"}
	}

	var rec domain.Recommendation
	if err := r.client.Do(ctx, httptransport.Call{
		Method: http.MethodGet,
		Route:  "/recommendations/activity/{id}",
		Path:   "/recommendations/activity/" + url.PathEscape(activityID),
		Out:    &rec,
	}); err != nil {
		return nil, fmt.Errorf("get recommendation for activity %s: %w", activityID, err)
	}
	return &rec, nil
}

// ForUser returns every recommendation generated for userID.
func (r *Repository) ForUser(ctx context.Context, userID string) ([]domain.Recommendation, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, &domain.ValidationError{Field: "userId", Reason: "is required"}
	}

	var recs []domain.Recommendation
	if err := r.client.Do(ctx, httptransport.Call{
		Method: http.MethodGet,
		Route:  "/recommendations/user/{id}",
		Path:   "/recommendations/user/" + url.PathEscape(userID),
		Out:    &recs,
	}); err != nil {
		return nil, fmt.Errorf("list recommendations for user %s: %w", userID, err)
	}
	if recs == nil {
		recs = []domain.Recommendation{}
	}
	return recs, nil
}
