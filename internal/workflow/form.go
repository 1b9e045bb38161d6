package workflow

import (
	"time"

	"github.com/username/vacation-tracker-cli/internal/api"
	"github.com/username/vacation-tracker-cli/pkg/dateutil"
)

// State is the client-side lifecycle of a single submit attempt
type State int

const (
	// StateDraft: form open, nothing submitted yet
	StateDraft State = iota
	// StateSubmitting: create/update call in flight
	StateSubmitting
	// StateSubmitted: backend confirmed; caller must refetch the list
	StateSubmitted
	// StateFailed: attempt failed; the form stays editable, nothing is lost
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateDraft:
		return "draft"
	case StateSubmitting:
		return "submitting"
	case StateSubmitted:
		return "submitted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Form is the typed draft record behind the add/edit vacation forms.
// Unset dates are nil; the message slot holds the single user-visible error
// of the last attempt and is cleared when the next attempt starts.
type Form struct {
	vacationType api.VacationType
	startDate    *time.Time
	endDate      *time.Time

	state   State
	message string
}

// NewForm creates an empty draft with the default vacation type
func NewForm() *Form {
	return &Form{
		vacationType: api.TypeLeave,
		state:        StateDraft,
	}
}

// FormFromVacation pre-fills a form from an existing request, for editing
func FormFromVacation(v api.Vacation) *Form {
	start := dateutil.StartOfDay(v.StartDate.Time)
	end := dateutil.StartOfDay(v.EndDate.Time)

	return &Form{
		vacationType: v.Type,
		startDate:    &start,
		endDate:      &end,
		state:        StateDraft,
	}
}

// SetType sets the vacation type
func (f *Form) SetType(t api.VacationType) {
	f.vacationType = t
}

// SetStartDate sets the chosen start date
func (f *Form) SetStartDate(date time.Time) {
	d := dateutil.StartOfDay(date)
	f.startDate = &d
}

// SetEndDate sets the chosen end date
func (f *Form) SetEndDate(date time.Time) {
	d := dateutil.StartOfDay(date)
	f.endDate = &d
}

// Type returns the chosen vacation type
func (f *Form) Type() api.VacationType {
	return f.vacationType
}

// StartDate returns the chosen start date, nil when not chosen
func (f *Form) StartDate() *time.Time {
	return f.startDate
}

// EndDate returns the chosen end date, nil when not chosen
func (f *Form) EndDate() *time.Time {
	return f.endDate
}

// State returns the form's submit state
func (f *Form) State() State {
	return f.state
}

// Message returns the user-visible error of the last attempt, empty when the
// last attempt succeeded or none was made
func (f *Form) Message() string {
	return f.message
}

// Reset clears the draft back to its initial state
func (f *Form) Reset() {
	f.vacationType = api.TypeLeave
	f.startDate = nil
	f.endDate = nil
	f.state = StateDraft
	f.message = ""
}

// beginAttempt marks the start of a submit attempt: the message slot is
// cleared exactly once per attempt, before anything can fail
func (f *Form) beginAttempt() {
	f.message = ""
	f.state = StateSubmitting
}

func (f *Form) fail(message string) {
	f.message = message
	f.state = StateFailed
}

func (f *Form) succeed() {
	f.state = StateSubmitted
}
