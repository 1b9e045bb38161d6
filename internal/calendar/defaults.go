package calendar

import "time"

// defaultHolidays lists the German public holidays shipped with the binary.
// Used only when neither a holidays file nor inline dates are configured.
// This data is year-scoped and must be extended for each new year.
var defaultHolidays = []struct {
	date string
	note string
}{
	// 2024
	{"2024-01-01", "New Year's Day"},
	{"2024-04-01", "Easter Monday"},
	{"2024-05-01", "Labour Day"},
	{"2024-05-09", "Ascension Day"},
	{"2024-06-20", "Corpus Christi"},
	{"2024-10-03", "Day of German Unity"},
	{"2024-12-25", "Christmas Day"},
	{"2024-12-26", "Second Christmas Day"},
	// 2025
	{"2025-01-01", "New Year's Day"},
	{"2025-04-18", "Good Friday"},
	{"2025-04-21", "Easter Monday"},
	{"2025-05-01", "Labour Day"},
	{"2025-05-29", "Ascension Day"},
	{"2025-06-09", "Whit Monday"},
	{"2025-10-03", "Day of German Unity"},
	{"2025-12-25", "Christmas Day"},
	{"2025-12-26", "Second Christmas Day"},
}

// DefaultHolidays returns the built-in German holiday set
func DefaultHolidays() *HolidaySet {
	set := NewHolidaySet()
	for _, h := range defaultHolidays {
		date, err := time.Parse("2006-01-02", h.date)
		if err != nil {
			// Built-in data, a parse failure is a programming error
			panic("invalid built-in holiday date: " + h.date)
		}
		set.Add(date, h.note)
	}
	return set
}
