// Package workflow coordinates the client-side lifecycle of a vacation
// request: local validation, submission to the backend, and the
// refetch-after-mutation contract. The client holds no authoritative cache;
// after every confirmed mutation it signals the caller to reload the list
// from the backend instead of patching local state.
package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/username/vacation-tracker-cli/internal/api"
	"github.com/username/vacation-tracker-cli/internal/calendar"
	"github.com/username/vacation-tracker-cli/pkg/dateutil"
	"go.uber.org/zap"
)

// ValidationError is a local precondition failure. It never reaches the
// network and is always recoverable: the message goes into the form's
// message slot and the form stays open.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Action is an admin-or-owner lifecycle transition on an existing request
type Action string

const (
	// ActionApprove marks a pending request approved (admin only)
	ActionApprove Action = "approve"
	// ActionReject removes a pending request (admin only)
	ActionReject Action = "reject"
	// ActionDelete removes a request: owner-pending or admin-approved
	ActionDelete Action = "delete"
)

// ParseAction validates a user-supplied action string
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionApprove, ActionReject, ActionDelete:
		return Action(s), nil
	default:
		return "", fmt.Errorf("unknown action %q", s)
	}
}

// API is the backend surface the workflow needs
type API interface {
	CreateVacation(ctx context.Context, req api.VacationRequestBody) (*api.Vacation, error)
	UpdateVacation(ctx context.Context, vacationID string, req api.VacationRequestBody) (*api.Vacation, error)
	DeleteVacation(ctx context.Context, vacationID string) error
	ApproveVacation(ctx context.Context, vacationID string) error
	RejectVacation(ctx context.Context, vacationID string) error
}

// Workflow drives a single vacation request through its lifecycle
type Workflow struct {
	backend   API
	cal       *calendar.Calendar
	logger    *zap.Logger
	onRefetch func()
	now       func() time.Time
}

// New creates a workflow. onRefetch is invoked exactly once after every
// confirmed mutation and never on failure; it may be nil.
func New(backend API, cal *calendar.Calendar, logger *zap.Logger, onRefetch func()) *Workflow {
	return &Workflow{
		backend:   backend,
		cal:       cal,
		logger:    logger,
		onRefetch: onRefetch,
		now:       dateutil.Today,
	}
}

// Create submits the draft as a new vacation request. Preconditions are
// checked locally first; a precondition failure never contacts the backend.
// On success the draft is cleared and the refetch signal is emitted.
func (w *Workflow) Create(ctx context.Context, form *Form) error {
	return w.submit(ctx, form, func(body api.VacationRequestBody) error {
		_, err := w.backend.CreateVacation(ctx, body)
		return err
	}, func() {
		// Success clears the draft so the form is ready for the next request
		form.Reset()
	})
}

// Update submits the draft as an edit of an existing pending request owned
// by the caller. Validation matches Create; ownership and the pending check
// are enforced by the backend.
func (w *Workflow) Update(ctx context.Context, vacationID string, form *Form) error {
	return w.submit(ctx, form, func(body api.VacationRequestBody) error {
		_, err := w.backend.UpdateVacation(ctx, vacationID, body)
		return err
	}, nil)
}

// submit runs one attempt: clear the message slot, validate, call the
// backend, and settle the form. The refetch signal fires only after a
// confirmed success.
func (w *Workflow) submit(ctx context.Context, form *Form, call func(api.VacationRequestBody) error, onSuccess func()) error {
	if form.State() == StateSubmitting {
		return &ValidationError{Message: "A submit is already in flight."}
	}

	form.beginAttempt()

	if verr := w.validate(form); verr != nil {
		form.fail(verr.Message)
		return verr
	}

	body := api.VacationRequestBody{
		StartDate: api.NewAPIDate(*form.StartDate()),
		EndDate:   api.NewAPIDate(*form.EndDate()),
		Type:      form.Type(),
	}

	if err := call(body); err != nil {
		form.fail(api.UserMessage(err))
		w.logger.Warn("Vacation submit failed",
			zap.String("state", form.State().String()),
			zap.Error(err))
		return err
	}

	form.succeed()
	if onSuccess != nil {
		onSuccess()
	}
	w.emitRefetch()

	return nil
}

// Transition applies an approve/reject/delete action to an existing request.
// The list is only ever updated by refetching after a confirmed success;
// failures mutate nothing locally.
func (w *Workflow) Transition(ctx context.Context, vacationID string, action Action) error {
	var err error
	switch action {
	case ActionApprove:
		err = w.backend.ApproveVacation(ctx, vacationID)
	case ActionReject:
		err = w.backend.RejectVacation(ctx, vacationID)
	case ActionDelete:
		err = w.backend.DeleteVacation(ctx, vacationID)
	default:
		return &ValidationError{Message: fmt.Sprintf("Unknown action %q.", action)}
	}

	if err != nil {
		w.logger.Warn("Vacation transition failed",
			zap.String("id", vacationID),
			zap.String("action", string(action)),
			zap.Error(err))
		return err
	}

	w.logger.Info("Vacation transition applied",
		zap.String("id", vacationID),
		zap.String("action", string(action)))

	w.emitRefetch()

	return nil
}

// validate checks the local preconditions: both dates chosen, range not
// inverted, both dates eligible and within their minimum bounds
func (w *Workflow) validate(form *Form) *ValidationError {
	start := form.StartDate()
	end := form.EndDate()

	if start == nil || end == nil {
		return &ValidationError{Message: "Please select both start and end dates."}
	}

	if start.After(*end) {
		return &ValidationError{Message: "Start date must not be after end date."}
	}

	if _, err := api.ParseVacationType(string(form.Type())); err != nil {
		return &ValidationError{Message: "Please select a valid vacation type."}
	}

	today := w.now()
	if !w.cal.StartSelectable(*start, today) {
		return &ValidationError{Message: fmt.Sprintf(
			"Start date %s is not selectable (weekend, holiday, or in the past).",
			start.Format("2006-01-02"))}
	}
	if !w.cal.EndSelectable(*end, start, today) {
		return &ValidationError{Message: fmt.Sprintf(
			"End date %s is not selectable (weekend, holiday, or before the start date).",
			end.Format("2006-01-02"))}
	}

	return nil
}

func (w *Workflow) emitRefetch() {
	if w.onRefetch != nil {
		w.onRefetch()
	}
}
