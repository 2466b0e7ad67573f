// Package events defines the broker payloads the client consumes.
package events

import "time"

// RecommendationGeneratedType is the event_type header value for RecommendationGenerated.
const RecommendationGeneratedType = "recommendation.generated"

// RecommendationGenerated is published once the AI service has stored a
// recommendation for an activity.
type RecommendationGenerated struct {
	ActivityID       string    `json:"activity_id"`
	UserID           string    `json:"user_id"`
	RecommendationID string    `json:"recommendation_id"`
	GeneratedAt      time.Time `json:"generated_at"`
}
