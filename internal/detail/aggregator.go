// Package detail builds the activity detail view model from the activity and its recommendation.
package detail

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"example.com/fitnessclient/internal/domain"
)

// ActivitySource fetches the authoritative activity record.
type ActivitySource interface {
	Get(ctx context.Context, id string) (*domain.Activity, error)
}

// RecommendationSource fetches the optional enrichment.
type RecommendationSource interface {
	ForActivity(ctx context.Context, activityID string) (*domain.Recommendation, error)
}

// Option configures the Aggregator.
type Option func(*Aggregator)

// WithLogger overrides the logger used to report missing recommendations.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Aggregator) {
		a.logger = logger
	}
}

// Aggregator merges an activity with its recommendation. A failed activity fetch
// fails the whole detail; a failed recommendation fetch only drops the enrichment.
type Aggregator struct {
	activities      ActivitySource
	recommendations RecommendationSource
	logger          *zap.Logger
}

// NewAggregator constructs an Aggregator.
func NewAggregator(activities ActivitySource, recommendations RecommendationSource, opts ...Option) *Aggregator {
	a := &Aggregator{
		activities:      activities,
		recommendations: recommendations,
		logger:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Get returns the detail view for id.
func (a *Aggregator) Get(ctx context.Context, id string) (*domain.ActivityDetail, error) {
	activity, err := a.activities.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	rec, recErr := a.recommendations.ForActivity(ctx, id)
	rec = Optional(Try(rec, recErr), func(err error) {
		reason := "error"
		if errors.Is(err, domain.ErrNotFound) {
			reason = "not_found"
		}
		recordRecommendationMiss(reason)
		a.logger.Debug("no recommendation available for activity",
			zap.String("activity_id", id),
			zap.String("reason", reason),
			zap.Error(err),
		)
	})

	return domain.NewActivityDetail(*activity, rec), nil
}
