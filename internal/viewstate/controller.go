// Package viewstate holds the headless load lifecycles behind the list, detail
// and creation screens. Controllers are safe for concurrent use; a load that
// completes after a newer load started, or after Close, is discarded.
package viewstate

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"example.com/fitnessclient/internal/domain"
)

// Phase is the position of a controller in its load cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is a snapshot of a controller. Data is meaningful in PhaseReady;
// Err and Message in PhaseFailed.
type State[T any] struct {
	Phase   Phase
	Data    T
	Err     error
	Message string
}

// NotFound reports whether the load failed because the backend has no such entity.
func (s State[T]) NotFound() bool {
	return s.Phase == PhaseFailed && errors.Is(s.Err, domain.ErrNotFound)
}

// Option configures controllers.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger overrides the logger used to report failed loads.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Controller owns one Idle → Loading → Ready | Failed state slot.
type Controller[T any] struct {
	mu        sync.Mutex
	state     State[T]
	gen       uint64
	cancel    context.CancelFunc
	closed    bool
	listeners map[int]func(State[T])
	nextID    int
	describe  func(error) string
	logger    *zap.Logger
}

func newController[T any](describe func(error) string, logger *zap.Logger) *Controller[T] {
	return &Controller[T]{
		listeners: make(map[int]func(State[T])),
		describe:  describe,
		logger:    logger,
	}
}

// State returns the current snapshot.
func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn to receive every transition. The returned func removes it.
func (c *Controller[T]) Subscribe(fn func(State[T])) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// Close tears the controller down: in-flight loads are cancelled and their
// results, and any later loads, are ignored.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.listeners = make(map[int]func(State[T]))
}

// run starts a new cycle, supersedes any in-flight one and blocks until fetch
// returns. It returns the controller's state afterwards.
func (c *Controller[T]) run(ctx context.Context, fetch func(context.Context) (T, error)) State[T] {
	gen, loadCtx, ok := c.begin(ctx)
	if !ok {
		return c.State()
	}
	data, err := fetch(loadCtx)
	return c.finish(gen, data, err)
}

// begin moves the controller to PhaseLoading and returns the generation the
// caller must hand back to finish. ok is false once the controller is closed.
func (c *Controller[T]) begin(ctx context.Context) (gen uint64, loadCtx context.Context, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, nil, false
	}
	if c.cancel != nil {
		c.cancel()
	}
	c.gen++
	loadCtx, c.cancel = context.WithCancel(ctx)
	c.state = State[T]{Phase: PhaseLoading}
	c.notifyLocked()
	return c.gen, loadCtx, true
}

// finish applies the outcome of generation gen unless a newer cycle started or
// the controller was closed in the meantime.
func (c *Controller[T]) finish(gen uint64, data T, err error) State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.gen {
		return c.state
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if err != nil {
		c.logger.Debug("load failed", zap.Error(err))
		c.state = State[T]{Phase: PhaseFailed, Err: err, Message: c.describe(err)}
	} else {
		c.state = State[T]{Phase: PhaseReady, Data: data}
	}
	c.notifyLocked()
	return c.state
}

// notifyLocked delivers the current state to listeners. Listeners run while the
// controller lock is held and must not call back into the controller.
func (c *Controller[T]) notifyLocked() {
	for _, fn := range c.listeners {
		fn(c.state)
	}
}
