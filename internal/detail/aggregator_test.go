package detail

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"example.com/fitnessclient/internal/domain"
)

type stubActivities struct {
	activity *domain.Activity
	err      error
	calls    int
}

func (s *stubActivities) Get(_ context.Context, _ string) (*domain.Activity, error) {
	s.calls++
	return s.activity, s.err
}

type stubRecommendations struct {
	rec   *domain.Recommendation
	err   error
	calls int
}

func (s *stubRecommendations) ForActivity(_ context.Context, _ string) (*domain.Recommendation, error) {
	s.calls++
	return s.rec, s.err
}

func sampleActivity() *domain.Activity {
	return &domain.Activity{
		ID:             "a1",
		Type:           domain.ActivityTypeRunning,
		Duration:       30,
		CaloriesBurned: 300,
		CreatedAt:      time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestGetMergesRecommendation(t *testing.T) {
	activities := &stubActivities{activity: sampleActivity()}
	recs := &stubRecommendations{rec: &domain.Recommendation{
		ActivityID:     "a1",
		Recommendation: "Good effort.",
		Improvements:   []string{"Keep a steadier pace"},
		Suggestions:    []string{"Hill repeats"},
		Safety:         []string{"Stretch afterwards"},
	}}
	agg := NewAggregator(activities, recs, WithLogger(zaptest.NewLogger(t)))

	got, err := agg.Get(context.Background(), "a1")
	require.NoError(t, err)
	require.True(t, got.HasRecommendation())
	require.Equal(t, "Good effort.", *got.Recommendation)
	require.Equal(t, []string{"Hill repeats"}, got.Suggestions)
	require.Equal(t, *sampleActivity(), got.Activity)
}

func TestGetSoftFailsOnRecommendation(t *testing.T) {
	cases := map[string]struct {
		err    error
		reason string
	}{
		"not generated yet": {err: fmt.Errorf("get recommendation: %w", &domain.TransportError{Status: 404}), reason: "not_found"},
		"server error":      {err: &domain.TransportError{Status: 500, Body: "boom"}, reason: "error"},
		"network":           {err: &domain.TransportError{Err: errors.New("connection reset")}, reason: "error"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			before := testutil.ToFloat64(recommendationMisses.WithLabelValues(tc.reason))
			agg := NewAggregator(&stubActivities{activity: sampleActivity()}, &stubRecommendations{err: tc.err}, WithLogger(zaptest.NewLogger(t)))

			got, err := agg.Get(context.Background(), "a1")
			require.NoError(t, err)
			require.False(t, got.HasRecommendation())
			require.Equal(t, domain.ActivityDetail{Activity: *sampleActivity()}, *got)
			require.Equal(t, before+1, testutil.ToFloat64(recommendationMisses.WithLabelValues(tc.reason)))
		})
	}
}

func TestGetPropagatesActivityFailureWithoutRecommendationCall(t *testing.T) {
	activityErr := fmt.Errorf("get activity a1: %w", &domain.TransportError{Status: 404})
	recs := &stubRecommendations{rec: &domain.Recommendation{ActivityID: "a1"}}
	agg := NewAggregator(&stubActivities{err: activityErr}, recs)

	got, err := agg.Get(context.Background(), "a1")
	require.Nil(t, got)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.Zero(t, recs.calls)
}

func TestOptional(t *testing.T) {
	var seen error
	cause := errors.New("nope")
	require.Equal(t, 0, Optional(Try(7, cause), func(err error) { seen = err }))
	require.Equal(t, cause, seen)

	require.Equal(t, 7, Optional(Try(7, nil), nil))
	require.True(t, Try("x", nil).Ok())
	require.False(t, Try("x", cause).Ok())
}
