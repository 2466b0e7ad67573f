package viewstate

import (
	"context"

	"example.com/fitnessclient/internal/domain"
)

const (
	// EmptyListMessage is shown when the user has not logged anything yet.
	EmptyListMessage = "No activities yet"
	// ListFailedMessage is shown when the activity list cannot be loaded.
	ListFailedMessage = "Failed to load activities"
)

// ActivityLister is the list operation of the activity repository.
type ActivityLister interface {
	List(ctx context.Context) ([]domain.Activity, error)
}

// ListState is the snapshot of the activity list screen.
type ListState = State[[]domain.Activity]

// ListController drives the activity list screen.
type ListController struct {
	*Controller[[]domain.Activity]
	lister ActivityLister
}

// NewListController constructs a ListController in PhaseIdle.
func NewListController(lister ActivityLister, opts ...Option) *ListController {
	o := buildOptions(opts)
	return &ListController{
		Controller: newController[[]domain.Activity](func(error) string { return ListFailedMessage }, o.logger.Named("list")),
		lister:     lister,
	}
}

// Load runs one list cycle; call it on mount.
func (l *ListController) Load(ctx context.Context) ListState {
	return l.run(ctx, l.lister.List)
}

// Refresh restarts the cycle from PhaseLoading. It satisfies Refresher.
func (l *ListController) Refresh(ctx context.Context) {
	l.Load(ctx)
}

// Empty reports whether the list loaded successfully with no activities.
func (l *ListController) Empty() bool {
	st := l.State()
	return st.Phase == PhaseReady && len(st.Data) == 0
}
