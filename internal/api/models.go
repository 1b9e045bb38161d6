package api

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/vacation-tracker-cli/pkg/dateutil"
)

// APIDate is a calendar date in backend payloads.
// The backend emits dates inconsistently: sometimes as plain "2006-01-02",
// sometimes as a full RFC 3339 timestamp. Only the calendar day is
// meaningful; the time-of-day component is dropped on comparison and output.
type APIDate struct {
	time.Time
}

// NewAPIDate creates an APIDate from a time value
func NewAPIDate(t time.Time) APIDate {
	return APIDate{Time: dateutil.StartOfDay(t)}
}

// UnmarshalJSON implements json.Unmarshaler for APIDate
func (d *APIDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	formats := []string{
		"2006-01-02",
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05.000-0700",
		"2006-01-02T15:04:05",
	}

	var parseErr error
	for _, format := range formats {
		parsed, err := time.Parse(format, s)
		if err == nil {
			d.Time = parsed
			return nil
		}
		parseErr = err
	}

	return parseErr
}

// MarshalJSON implements json.Marshaler for APIDate
func (d APIDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.Format("2006-01-02"))
}

// String returns the calendar day as "2006-01-02"
func (d APIDate) String() string {
	return d.Time.Format("2006-01-02")
}

// Status is the server-owned lifecycle state of a vacation request. The
// client never sets it directly; it only invokes the approve/reject/delete
// endpoints.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// VacationType enumerates the request types understood by the backend.
// Wire values are the German labels the backend stores.
type VacationType string

const (
	TypeLeave               VacationType = "Urlaub"
	TypeSickness            VacationType = "Krankheit"
	TypeMaternityProtection VacationType = "Mutterschutz"
	TypeParentalLeave       VacationType = "Elternzeit"
	TypeCareLeave           VacationType = "Pflegezeit"
	TypeMiscellaneous       VacationType = "Miscellaneous"
	TypeChildSickDays       VacationType = "Kindkrankentage"
)

// VacationTypes lists all valid request types
func VacationTypes() []VacationType {
	return []VacationType{
		TypeLeave,
		TypeSickness,
		TypeMaternityProtection,
		TypeParentalLeave,
		TypeCareLeave,
		TypeMiscellaneous,
		TypeChildSickDays,
	}
}

// ParseVacationType validates a user-supplied type string
func ParseVacationType(s string) (VacationType, error) {
	for _, t := range VacationTypes() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown vacation type %q", s)
}

// Vacation represents a vacation request as stored by the backend
type Vacation struct {
	ID        string       `json:"_id"`
	UserID    string       `json:"userId"`
	UserName  string       `json:"userName,omitempty"`
	Type      VacationType `json:"type"`
	StartDate APIDate      `json:"startDate"`
	EndDate   APIDate      `json:"endDate"`
	Status    Status       `json:"status"`
}

// DurationDays returns the inclusive day count between start and end.
// Display only: the authoritative vacation-days-used accounting is
// server-owned.
func (v Vacation) DurationDays() int {
	return dateutil.DaysInclusive(v.StartDate.Time, v.EndDate.Time)
}

// User represents a backend user record. The vacation-day counters are
// server-owned aggregates; decimal keeps half-day grants exact.
type User struct {
	ID                string          `json:"_id"`
	Name              string          `json:"name"`
	Position          string          `json:"position,omitempty"`
	Email             string          `json:"email"`
	Phone             string          `json:"phone,omitempty"`
	IsAdmin           bool            `json:"isAdmin"`
	VacationDaysTotal decimal.Decimal `json:"vacationDaysTotal"`
	VacationDaysUsed  decimal.Decimal `json:"vacationDaysUsed"`
	Vacations         []Vacation      `json:"vacations,omitempty"`
}

// VacationDaysRemaining returns the server-reported remaining balance
func (u User) VacationDaysRemaining() decimal.Decimal {
	return u.VacationDaysTotal.Sub(u.VacationDaysUsed)
}

// LoginRequest is the body of POST /users/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the success body of POST /users/login
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// VacationRequestBody is the body of POST /vacations and PUT /vacations/{id}
type VacationRequestBody struct {
	StartDate APIDate      `json:"startDate"`
	EndDate   APIDate      `json:"endDate"`
	Type      VacationType `json:"type"`
}

// VacationActionBody is the body of the approve/reject admin endpoints
type VacationActionBody struct {
	VacationID string `json:"vacationId"`
}

// RegisterUserRequest is the body of POST /users/register (admin only)
type RegisterUserRequest struct {
	Name     string `json:"name"`
	Position string `json:"position,omitempty"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

// UpdateUserRequest is the body of PUT /users/{id} (admin only). The full
// record is sent; the backend replaces every field, including the
// vacation-day counters.
type UpdateUserRequest struct {
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	Position          string          `json:"position,omitempty"`
	Phone             string          `json:"phone,omitempty"`
	VacationDaysTotal decimal.Decimal `json:"vacationDaysTotal"`
	VacationDaysUsed  decimal.Decimal `json:"vacationDaysUsed"`
	IsAdmin           bool            `json:"isAdmin"`
}

// userEnvelope is the success body of PUT /users/{id}
type userEnvelope struct {
	User User `json:"user"`
}

// errorResponse is the expected body of any non-2xx answer
type errorResponse struct {
	Message string `json:"message"`
}
