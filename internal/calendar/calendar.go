package calendar

import (
	"time"

	"github.com/username/vacation-tracker-cli/pkg/dateutil"
)

// HolidaySet is the configured set of public holidays. Dates are matched by
// calendar day, ignoring any time-of-day component. The set is plain
// configuration data, enumerated per supported year; it has to be extended
// when a new year starts.
type HolidaySet struct {
	days map[string]string // "2006-01-02" -> note
}

// NewHolidaySet creates an empty holiday set
func NewHolidaySet() *HolidaySet {
	return &HolidaySet{
		days: make(map[string]string),
	}
}

// Add adds a holiday to the set. The note is optional display text.
func (hs *HolidaySet) Add(date time.Time, note string) {
	hs.days[date.Format("2006-01-02")] = note
}

// Contains checks if the given date is a configured holiday
func (hs *HolidaySet) Contains(date time.Time) bool {
	_, ok := hs.days[date.Format("2006-01-02")]
	return ok
}

// Note returns the display text for a holiday, if present
func (hs *HolidaySet) Note(date time.Time) (string, bool) {
	note, ok := hs.days[date.Format("2006-01-02")]
	return note, ok
}

// Len returns the number of configured holidays
func (hs *HolidaySet) Len() int {
	return len(hs.days)
}

// Calendar decides whether a calendar date may be chosen as a vacation
// start/end date
type Calendar struct {
	holidays *HolidaySet
}

// New creates a Calendar backed by the given holiday set
func New(holidays *HolidaySet) *Calendar {
	if holidays == nil {
		holidays = NewHolidaySet()
	}
	return &Calendar{holidays: holidays}
}

// IsEligible reports whether date may be selected as a vacation start/end
// date: weekends and configured holidays are excluded. The check is pure and
// never errors; it only restricts selection and is never applied
// retroactively to already stored requests.
func (c *Calendar) IsEligible(date time.Time) bool {
	if dateutil.IsWeekend(date) {
		return false
	}
	return !c.holidays.Contains(date)
}

// IsHoliday reports whether date is in the configured holiday set
func (c *Calendar) IsHoliday(date time.Time) bool {
	return c.holidays.Contains(date)
}

// StartSelectable reports whether date may be chosen as a start date:
// it must be eligible and must not precede today. Calendar days are
// compared, never instants; date and today may carry different zones.
func (c *Calendar) StartSelectable(date, today time.Time) bool {
	if dateutil.IsDayBefore(date, today) {
		return false
	}
	return c.IsEligible(date)
}

// EndSelectable reports whether date may be chosen as an end date:
// it must be eligible and must not precede the chosen start date, or today
// when no start date has been chosen yet
func (c *Calendar) EndSelectable(date time.Time, start *time.Time, today time.Time) bool {
	min := today
	if start != nil {
		min = *start
	}
	if dateutil.IsDayBefore(date, min) {
		return false
	}
	return c.IsEligible(date)
}
