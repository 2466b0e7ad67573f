package viewstate

import (
	"context"
	"errors"
	"sync"

	"example.com/fitnessclient/internal/domain"
)

const (
	// DetailNotFoundMessage is shown when the activity does not exist.
	DetailNotFoundMessage = "Activity not found"
	// DetailFailedMessage is shown for every other detail failure.
	DetailFailedMessage = "Failed to load activity details"
)

// DetailLoader is the detail aggregator's contract.
type DetailLoader interface {
	Get(ctx context.Context, id string) (*domain.ActivityDetail, error)
}

// DetailState is the snapshot of the activity detail screen.
type DetailState = State[*domain.ActivityDetail]

// DetailController drives the detail screen for one activity id at a time.
type DetailController struct {
	*Controller[*domain.ActivityDetail]
	loader DetailLoader

	mu sync.Mutex
	id string
}

// NewDetailController constructs a DetailController in PhaseIdle.
func NewDetailController(loader DetailLoader, opts ...Option) *DetailController {
	o := buildOptions(opts)
	return &DetailController{
		Controller: newController[*domain.ActivityDetail](describeDetailError, o.logger.Named("detail")),
		loader:     loader,
	}
}

func describeDetailError(err error) string {
	if errors.Is(err, domain.ErrNotFound) {
		return DetailNotFoundMessage
	}
	return DetailFailedMessage
}

// ID returns the activity id the controller is showing.
func (d *DetailController) ID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.id
}

// SetID shows activity id. A different id starts a new cycle and discards the
// previous state; the same id is a no-op once a cycle has started.
func (d *DetailController) SetID(ctx context.Context, id string) DetailState {
	d.mu.Lock()
	if id == d.id && d.State().Phase != PhaseIdle {
		d.mu.Unlock()
		return d.State()
	}
	d.id = id
	return d.loadLocked(ctx, id)
}

// Reload re-runs the cycle for the current id, e.g. after a recommendation arrives.
func (d *DetailController) Reload(ctx context.Context) DetailState {
	d.mu.Lock()
	if d.id == "" {
		d.mu.Unlock()
		return d.State()
	}
	return d.loadLocked(ctx, d.id)
}

// loadLocked is entered with d.mu held so that the id change and the start of
// its cycle are ordered together; it releases d.mu before fetching.
func (d *DetailController) loadLocked(ctx context.Context, id string) DetailState {
	gen, loadCtx, ok := d.begin(ctx)
	d.mu.Unlock()
	if !ok {
		return d.State()
	}
	detail, err := d.loader.Get(loadCtx, id)
	return d.finish(gen, detail, err)
}
