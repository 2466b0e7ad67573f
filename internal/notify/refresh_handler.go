package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"example.com/fitnessclient/internal/events"
	"example.com/fitnessclient/internal/viewstate"
)

// DetailReloader is the part of the detail controller the handler drives.
type DetailReloader interface {
	ID() string
	Reload(ctx context.Context) viewstate.DetailState
}

// RefreshHandler reloads the detail screen when a recommendation is generated
// for the activity it shows. Other events and other activities are ignored.
type RefreshHandler struct {
	detail DetailReloader
	logger *zap.Logger
}

// NewRefreshHandler constructs a handler over detail. logger may be nil.
func NewRefreshHandler(detail DetailReloader, logger *zap.Logger) *RefreshHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RefreshHandler{detail: detail, logger: logger}
}

var _ Handler = (*RefreshHandler)(nil)

// Handle implements Handler.
func (h *RefreshHandler) Handle(ctx context.Context, msg Message) error {
	if msg.EventType() != events.RecommendationGeneratedType {
		return nil
	}

	var evt events.RecommendationGenerated
	if err := json.Unmarshal(unwrapPayload(msg.Payload), &evt); err != nil {
		recordDecodeError(msg.EventType())
		return fmt.Errorf("decode %s: %w", msg.EventType(), err)
	}
	if evt.ActivityID == "" || evt.ActivityID != h.detail.ID() {
		return nil
	}

	st := h.detail.Reload(ctx)
	h.logger.Info("recommendation arrived, detail reloaded",
		zap.String("activity_id", evt.ActivityID),
		zap.String("recommendation_id", evt.RecommendationID),
		zap.Stringer("phase", st.Phase))
	return nil
}
