// Package domain defines the entities and error taxonomy shared by the fitness client.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// ActivityType enumerates the supported kinds of exercise.
type ActivityType string

const (
	ActivityTypeRunning ActivityType = "RUNNING"
	ActivityTypeWalking ActivityType = "WALKING"
	ActivityTypeCycling ActivityType = "CYCLING"
)

// ActivityTypes lists every accepted type in display order.
var ActivityTypes = []ActivityType{ActivityTypeRunning, ActivityTypeWalking, ActivityTypeCycling}

// Valid reports whether t is one of the enumerated types.
func (t ActivityType) Valid() bool {
	for _, known := range ActivityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseActivityType normalises user input such as "running" into an ActivityType.
func ParseActivityType(raw string) (ActivityType, error) {
	t := ActivityType(strings.ToUpper(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown activity type %q", raw)}
	}
	return t, nil
}

// Activity is a single logged exercise session as returned by the backend.
type Activity struct {
	ID                string         `json:"id"`
	UserID            string         `json:"userId,omitempty"`
	Type              ActivityType   `json:"type"`
	Duration          int            `json:"duration"`
	CaloriesBurned    int            `json:"caloriesBurned"`
	StartTime         *time.Time     `json:"startTime,omitempty"`
	AdditionalMetrics map[string]any `json:"additionalMetrics,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         *time.Time     `json:"updatedAt,omitempty"`
}

// CaloriesPerMinute is the pace shown on the detail screen.
func (a Activity) CaloriesPerMinute() float64 {
	if a.Duration <= 0 {
		return 0
	}
	return float64(a.CaloriesBurned) / float64(a.Duration)
}

// Draft captures the fields required to log a new activity.
type Draft struct {
	Type              ActivityType   `json:"type"`
	Duration          int            `json:"duration"`
	CaloriesBurned    int            `json:"caloriesBurned"`
	StartTime         *time.Time     `json:"startTime,omitempty"`
	AdditionalMetrics map[string]any `json:"additionalMetrics,omitempty"`
}

// Validate ensures the draft can be submitted.
func (d Draft) Validate() error {
	if !d.Type.Valid() {
		return &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown activity type %q", d.Type)}
	}
	if d.Duration <= 0 {
		return &ValidationError{Field: "duration", Reason: "must be > 0"}
	}
	if d.CaloriesBurned <= 0 {
		return &ValidationError{Field: "caloriesBurned", Reason: "must be > 0"}
	}
	return nil
}
