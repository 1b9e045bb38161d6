package dashboard

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/vacation-tracker-cli/internal/api"
	"go.uber.org/zap"
)

type fakeBackend struct {
	vacations []api.Vacation
	users     []api.User
	calls     int
}

func (f *fakeBackend) AllVacations(ctx context.Context) ([]api.Vacation, error) {
	f.calls++
	return f.vacations, nil
}

func (f *fakeBackend) AllUsers(ctx context.Context) ([]api.User, error) {
	return f.users, nil
}

func vac(id string, status api.Status, start time.Time) api.Vacation {
	return api.Vacation{
		ID:        id,
		UserName:  "John Doe",
		Type:      api.TypeLeave,
		StartDate: api.NewAPIDate(start),
		EndDate:   api.NewAPIDate(start.AddDate(0, 0, 2)),
		Status:    status,
	}
}

func TestPartition(t *testing.T) {
	jul := func(day int) time.Time {
		return time.Date(2024, time.July, day, 0, 0, 0, 0, time.UTC)
	}

	vacations := []api.Vacation{
		vac("c", api.StatusApproved, jul(10)),
		vac("a", api.StatusPending, jul(8)),
		vac("b", api.StatusPending, jul(1)),
		vac("d", api.StatusRejected, jul(3)),
		vac("e", api.StatusPending, jul(1)),
	}

	pending, approved := Partition(vacations)

	wantPending := []string{"b", "e", "a"} // by start date, then ID
	gotPending := ids(pending)
	if !reflect.DeepEqual(gotPending, wantPending) {
		t.Errorf("pending = %v, want %v", gotPending, wantPending)
	}

	if got := ids(approved); !reflect.DeepEqual(got, []string{"c"}) {
		t.Errorf("approved = %v, want [c]", got)
	}
}

func ids(vacations []api.Vacation) []string {
	out := make([]string, 0, len(vacations))
	for _, v := range vacations {
		out = append(out, v.ID)
	}
	return out
}

func TestRefresh_Idempotent(t *testing.T) {
	backend := &fakeBackend{
		vacations: []api.Vacation{
			vac("a", api.StatusPending, time.Date(2024, time.July, 8, 0, 0, 0, 0, time.UTC)),
			vac("b", api.StatusApproved, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)),
		},
	}
	d := New(backend, zap.NewNop())

	first, err := d.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	second, err := d.Refresh(context.Background())
	if err != nil {
		t.Fatalf("second Refresh() error = %v", err)
	}

	// Two refreshes with no intervening mutation yield the same partition
	if !reflect.DeepEqual(ids(first.Pending), ids(second.Pending)) ||
		!reflect.DeepEqual(ids(first.Approved), ids(second.Approved)) {
		t.Errorf("refresh not idempotent: first = %+v, second = %+v", first, second)
	}
	if backend.calls != 2 {
		t.Errorf("backend calls = %d, want 2 (always refetched)", backend.calls)
	}
}

func TestRender(t *testing.T) {
	d := New(&fakeBackend{}, zap.NewNop())
	user := &api.User{
		Name:              "Jane Smith",
		IsAdmin:           true,
		VacationDaysTotal: decimal.NewFromInt(28),
		VacationDaysUsed:  decimal.NewFromFloat(3.5),
	}
	snap := &Snapshot{
		Pending: []api.Vacation{
			vac("vac-1", api.StatusPending, time.Date(2024, time.July, 8, 0, 0, 0, 0, time.UTC)),
		},
	}

	var buf bytes.Buffer
	d.Render(&buf, user, snap)
	out := buf.String()

	for _, want := range []string{"Jane Smith", "(admin)", "3.5/28", "Pending Vacations", "vac-1", "2024-07-08", "No vacations available."} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderUsers(t *testing.T) {
	backend := &fakeBackend{
		users: []api.User{
			{
				Name:              "John Doe",
				Email:             "john.doe@example.com",
				VacationDaysTotal: decimal.NewFromInt(28),
				VacationDaysUsed:  decimal.NewFromInt(5),
			},
		},
	}
	d := New(backend, zap.NewNop())

	var buf bytes.Buffer
	if err := d.RenderUsers(context.Background(), &buf); err != nil {
		t.Fatalf("RenderUsers() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"John Doe", "john.doe@example.com", "23"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderUsers() output missing %q:\n%s", want, out)
		}
	}
}
