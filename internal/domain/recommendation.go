package domain

import (
	"encoding/json"
	"time"
)

// Recommendation is the AI feedback attached to at most one activity.
type Recommendation struct {
	ID             string       `json:"id,omitempty"`
	ActivityID     string       `json:"activityId"`
	UserID         string       `json:"userId,omitempty"`
	ActivityType   ActivityType `json:"activityType,omitempty"`
	Recommendation string       `json:"recommendation"`
	Improvements   []string     `json:"improvements"`
	Suggestions    []string     `json:"suggestions"`
	Safety         []string     `json:"safety"`
	CreatedAt      *time.Time   `json:"createdAt,omitempty"`
}

// ActivityDetail flattens an activity and its optional recommendation into one view model.
// The recommendation keys are absent from the JSON form when no recommendation was
// loaded; with one loaded, empty lists encode as [].
type ActivityDetail struct {
	Activity
	Recommendation *string  `json:"recommendation,omitempty"`
	Improvements   []string `json:"improvements,omitempty"`
	Suggestions    []string `json:"suggestions,omitempty"`
	Safety         []string `json:"safety,omitempty"`
}

type activityDetailJSON struct {
	Activity
	Recommendation *string   `json:"recommendation,omitempty"`
	Improvements   *[]string `json:"improvements,omitempty"`
	Suggestions    *[]string `json:"suggestions,omitempty"`
	Safety         *[]string `json:"safety,omitempty"`
}

// MarshalJSON keys presence of the list fields off Recommendation.
func (d ActivityDetail) MarshalJSON() ([]byte, error) {
	out := activityDetailJSON{Activity: d.Activity, Recommendation: d.Recommendation}
	if d.Recommendation != nil {
		improvements, suggestions, safety := copyList(d.Improvements), copyList(d.Suggestions), copyList(d.Safety)
		out.Improvements, out.Suggestions, out.Safety = &improvements, &suggestions, &safety
	}
	return json.Marshal(out)
}

// NewActivityDetail merges rec into activity; a nil rec leaves the recommendation fields unset.
func NewActivityDetail(activity Activity, rec *Recommendation) *ActivityDetail {
	detail := &ActivityDetail{Activity: activity}
	if rec == nil {
		return detail
	}
	text := rec.Recommendation
	detail.Recommendation = &text
	detail.Improvements = copyList(rec.Improvements)
	detail.Suggestions = copyList(rec.Suggestions)
	detail.Safety = copyList(rec.Safety)
	return detail
}

// copyList returns a non-nil copy of items.
func copyList(items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	return out
}

// HasRecommendation reports whether recommendation fields were merged in.
func (d *ActivityDetail) HasRecommendation() bool {
	return d != nil && d.Recommendation != nil
}
