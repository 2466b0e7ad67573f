package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"example.com/fitnessclient/internal/events"
	"example.com/fitnessclient/internal/viewstate"
)

type stubDetail struct {
	id      string
	reloads int
}

func (s *stubDetail) ID() string { return s.id }

func (s *stubDetail) Reload(context.Context) viewstate.DetailState {
	s.reloads++
	return viewstate.DetailState{Phase: viewstate.PhaseReady}
}

func generated(t *testing.T, activityID string) Message {
	t.Helper()
	payload, err := json.Marshal(events.RecommendationGenerated{
		ActivityID:       activityID,
		UserID:           "u1",
		RecommendationID: "r1",
		GeneratedAt:      time.Now().UTC(),
	})
	require.NoError(t, err)
	return Message{
		Topic:   "recommendation_events",
		Payload: payload,
		Headers: map[string]string{"event_type": events.RecommendationGeneratedType},
	}
}

func TestRefreshHandlerReloadsMatchingActivity(t *testing.T) {
	detail := &stubDetail{id: "a1"}
	h := NewRefreshHandler(detail, nil)

	require.NoError(t, h.Handle(context.Background(), generated(t, "a1")))
	require.Equal(t, 1, detail.reloads)
}

func TestRefreshHandlerIgnoresOtherActivities(t *testing.T) {
	detail := &stubDetail{id: "a1"}
	h := NewRefreshHandler(detail, nil)

	require.NoError(t, h.Handle(context.Background(), generated(t, "a2")))
	require.Zero(t, detail.reloads)
}

func TestRefreshHandlerIgnoresOtherEventTypes(t *testing.T) {
	detail := &stubDetail{id: "a1"}
	h := NewRefreshHandler(detail, nil)

	msg := generated(t, "a1")
	msg.Headers["event_type"] = "activity.created"
	require.NoError(t, h.Handle(context.Background(), msg))
	require.Zero(t, detail.reloads)
}

func TestRefreshHandlerAcceptsSchemaRegistryFraming(t *testing.T) {
	detail := &stubDetail{id: "a1"}
	h := NewRefreshHandler(detail, nil)

	msg := generated(t, "a1")
	msg.Payload = append([]byte{0x00, 0x00, 0x00, 0x00, 0x01}, msg.Payload...)
	require.NoError(t, h.Handle(context.Background(), msg))
	require.Equal(t, 1, detail.reloads)
}

func TestRefreshHandlerRejectsMalformedPayload(t *testing.T) {
	detail := &stubDetail{id: "a1"}
	h := NewRefreshHandler(detail, nil)

	before := testutil.ToFloat64(decodeErrors.WithLabelValues(events.RecommendationGeneratedType))
	msg := generated(t, "a1")
	msg.Payload = []byte(`{"activity_id":`)
	require.Error(t, h.Handle(context.Background(), msg))
	require.Zero(t, detail.reloads)
	require.Equal(t, before+1, testutil.ToFloat64(decodeErrors.WithLabelValues(events.RecommendationGeneratedType)))
}
