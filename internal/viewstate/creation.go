package viewstate

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"example.com/fitnessclient/internal/domain"
)

const (
	// MissingFieldsMessage is the inline error for empty required fields.
	MissingFieldsMessage = "Please fill in all fields"
	// CreateFailedMessage is shown when the backend rejects or never receives the submission.
	CreateFailedMessage = "Failed to add activity. Please try again."
)

// ActivityCreator is the create operation of the activity repository.
type ActivityCreator interface {
	Create(ctx context.Context, draft domain.Draft) (*domain.Activity, error)
}

// Refresher reloads a dependent view after a successful submission.
type Refresher interface {
	Refresh(ctx context.Context)
}

// Form is the raw input of the new-activity form.
type Form struct {
	Type           domain.ActivityType
	Duration       string
	CaloriesBurned string
	StartTime      *time.Time
	// Metrics is sent as additionalMetrics, e.g. distance or average heart rate.
	Metrics map[string]any
}

// DefaultForm is the form shown on mount and after a successful submission.
func DefaultForm() Form {
	return Form{Type: domain.ActivityTypeRunning}
}

// Draft converts the form into a domain draft. Empty fields, non-numbers and
// non-positive values are reported as *domain.ValidationError.
func (f Form) Draft() (domain.Draft, error) {
	durationRaw := strings.TrimSpace(f.Duration)
	caloriesRaw := strings.TrimSpace(f.CaloriesBurned)
	if durationRaw == "" {
		return domain.Draft{}, &domain.ValidationError{Field: "duration", Reason: "is required"}
	}
	if caloriesRaw == "" {
		return domain.Draft{}, &domain.ValidationError{Field: "caloriesBurned", Reason: "is required"}
	}
	duration, err := strconv.Atoi(durationRaw)
	if err != nil {
		return domain.Draft{}, &domain.ValidationError{Field: "duration", Reason: "must be a whole number of minutes"}
	}
	calories, err := strconv.Atoi(caloriesRaw)
	if err != nil {
		return domain.Draft{}, &domain.ValidationError{Field: "caloriesBurned", Reason: "must be a whole number"}
	}
	draft := domain.Draft{
		Type:           f.Type,
		Duration:       duration,
		CaloriesBurned: calories,
		StartTime:      f.StartTime,
	}
	if len(f.Metrics) > 0 {
		draft.AdditionalMetrics = f.Metrics
	}
	if err := draft.Validate(); err != nil {
		return domain.Draft{}, err
	}
	return draft, nil
}

// CreationPhase is the position of the form in its submission cycle.
type CreationPhase int

const (
	PhaseEditing CreationPhase = iota
	PhaseSubmitting
)

func (p CreationPhase) String() string {
	if p == PhaseSubmitting {
		return "submitting"
	}
	return "editing"
}

// CreationState is the snapshot of the new-activity form.
type CreationState struct {
	Phase CreationPhase
	Form  Form
	// Error is the user-facing message; Field names the offending input for
	// validation failures.
	Error string
	Field string
	// Created is the activity returned by the last successful submission.
	Created *domain.Activity
}

// CreationController owns the new-activity form submission.
type CreationController struct {
	mu        sync.Mutex
	state     CreationState
	closed    bool
	creator   ActivityCreator
	refresher Refresher
	listeners []func(CreationState)
	logger    *zap.Logger
}

// NewCreationController constructs a controller editing DefaultForm. refresher may be nil.
func NewCreationController(creator ActivityCreator, refresher Refresher, opts ...Option) *CreationController {
	o := buildOptions(opts)
	return &CreationController{
		state:     CreationState{Phase: PhaseEditing, Form: DefaultForm()},
		creator:   creator,
		refresher: refresher,
		logger:    o.logger.Named("creation"),
	}
}

// State returns the current snapshot.
func (c *CreationController) State() CreationState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn to receive every transition.
func (c *CreationController) Subscribe(fn func(CreationState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Close detaches the controller; an in-flight submission's outcome is dropped.
func (c *CreationController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.listeners = nil
}

// Edit replaces the form contents. It is ignored while a submission is in flight.
func (c *CreationController) Edit(form Form) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state.Phase == PhaseSubmitting {
		return false
	}
	c.state.Form = form
	c.notifyLocked()
	return true
}

// Submit validates and sends the form. Invalid input stays in editing with an
// inline error and issues no request. On success the form resets and the
// refresher is signalled; on failure the entered values are kept.
func (c *CreationController) Submit(ctx context.Context) CreationState {
	c.mu.Lock()
	if c.closed || c.state.Phase == PhaseSubmitting {
		st := c.state
		c.mu.Unlock()
		return st
	}

	form := c.state.Form
	draft, err := form.Draft()
	if err != nil {
		c.state.Error, c.state.Field = validationMessage(err)
		c.notifyLocked()
		st := c.state
		c.mu.Unlock()
		return st
	}

	c.state = CreationState{Phase: PhaseSubmitting, Form: form}
	c.notifyLocked()
	c.mu.Unlock()

	created, err := c.creator.Create(ctx, draft)

	c.mu.Lock()
	if c.closed {
		st := c.state
		c.mu.Unlock()
		return st
	}
	switch {
	case err == nil:
		c.state = CreationState{Phase: PhaseEditing, Form: DefaultForm(), Created: created}
	case domain.IsValidation(err):
		msg, field := validationMessage(err)
		c.state = CreationState{Phase: PhaseEditing, Form: form, Error: msg, Field: field}
	default:
		c.logger.Warn("activity submission failed", zap.Error(err))
		c.state = CreationState{Phase: PhaseEditing, Form: form, Error: CreateFailedMessage}
	}
	c.notifyLocked()
	st := c.state
	c.mu.Unlock()

	if err == nil && c.refresher != nil {
		c.refresher.Refresh(ctx)
	}
	return st
}

func (c *CreationController) notifyLocked() {
	for _, fn := range c.listeners {
		fn(c.state)
	}
}

// validationMessage maps a validation failure to the inline message. Missing,
// non-numeric and non-positive amounts all read as incomplete input.
func validationMessage(err error) (string, string) {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return CreateFailedMessage, ""
	}
	switch ve.Field {
	case "duration", "caloriesBurned":
		return MissingFieldsMessage, ve.Field
	}
	return ve.Error(), ve.Field
}
