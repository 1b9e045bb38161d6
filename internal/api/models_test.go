package api

import (
	"encoding/json"
	"testing"
	"time"
)

func TestAPIDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string // expected calendar day
		wantErr bool
	}{
		{"Plain date", `"2024-12-25"`, "2024-12-25", false},
		{"RFC3339 timestamp", `"2024-12-25T00:00:00Z"`, "2024-12-25", false},
		{"Timestamp with offset", `"2024-12-25T10:30:00.000+0000"`, "2024-12-25", false},
		{"Garbage", `"yesterday"`, "", true},
		{"Not a string", `42`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d APIDate
			err := json.Unmarshal([]byte(tt.input), &d)

			if (err != nil) != tt.wantErr {
				t.Errorf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}

			if !tt.wantErr && d.String() != tt.want {
				t.Errorf("Unmarshal(%s) = %s, want %s", tt.input, d.String(), tt.want)
			}
		})
	}
}

func TestAPIDate_MarshalJSON(t *testing.T) {
	d := NewAPIDate(time.Date(2024, 7, 5, 15, 30, 0, 0, time.UTC))

	got, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	if string(got) != `"2024-07-05"` {
		t.Errorf("Marshal() = %s, want %q", got, `"2024-07-05"`)
	}
}

func TestParseVacationType(t *testing.T) {
	tests := []struct {
		input   string
		want    VacationType
		wantErr bool
	}{
		{"Urlaub", TypeLeave, false},
		{"Kindkrankentage", TypeChildSickDays, false},
		{"Miscellaneous", TypeMiscellaneous, false},
		{"holiday", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseVacationType(tt.input)

			if (err != nil) != tt.wantErr {
				t.Errorf("ParseVacationType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}

			if got != tt.want {
				t.Errorf("ParseVacationType(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestVacation_DurationDays(t *testing.T) {
	v := Vacation{
		StartDate: NewAPIDate(time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC)),
		EndDate:   NewAPIDate(time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC)),
	}

	if got := v.DurationDays(); got != 6 {
		t.Errorf("DurationDays() = %d, want 6", got)
	}
}

func TestUser_UnmarshalCounters(t *testing.T) {
	payload := `{
		"_id": "user-1",
		"name": "John Doe",
		"email": "john.doe@example.com",
		"isAdmin": false,
		"vacationDaysTotal": 28,
		"vacationDaysUsed": 3.5
	}`

	var user User
	if err := json.Unmarshal([]byte(payload), &user); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if got := user.VacationDaysRemaining().String(); got != "24.5" {
		t.Errorf("VacationDaysRemaining() = %s, want 24.5", got)
	}
}
