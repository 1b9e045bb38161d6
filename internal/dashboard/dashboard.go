// Package dashboard renders the pending/approved vacation views. It is the
// consumer of the refetch contract: every view is repopulated from
// GET /vacations/all, never patched locally.
package dashboard

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/username/vacation-tracker-cli/internal/api"
	"go.uber.org/zap"
)

// API is the backend surface the dashboard needs
type API interface {
	AllVacations(ctx context.Context) ([]api.Vacation, error)
	AllUsers(ctx context.Context) ([]api.User, error)
}

// Snapshot is one authoritative read of the vacation list, partitioned into
// the two dashboard views
type Snapshot struct {
	Pending  []api.Vacation
	Approved []api.Vacation
}

// Dashboard loads and renders the vacation overview
type Dashboard struct {
	backend API
	logger  *zap.Logger
}

// New creates a dashboard backed by the given API
func New(backend API, logger *zap.Logger) *Dashboard {
	return &Dashboard{
		backend: backend,
		logger:  logger,
	}
}

// Refresh fetches the authoritative vacation list and partitions it.
// Refreshing twice with no intervening mutation yields the same partition.
func (d *Dashboard) Refresh(ctx context.Context) (*Snapshot, error) {
	vacations, err := d.backend.AllVacations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh vacation list: %w", err)
	}

	pending, approved := Partition(vacations)

	d.logger.Info("Dashboard refreshed",
		zap.Int("pending", len(pending)),
		zap.Int("approved", len(approved)))

	return &Snapshot{
		Pending:  pending,
		Approved: approved,
	}, nil
}

// Partition splits the list into pending and approved requests, each sorted
// by start date then ID so repeated refreshes render identically. Requests
// in any other state are not shown.
func Partition(vacations []api.Vacation) (pending, approved []api.Vacation) {
	for _, v := range vacations {
		switch v.Status {
		case api.StatusPending:
			pending = append(pending, v)
		case api.StatusApproved:
			approved = append(approved, v)
		}
	}

	sortVacations(pending)
	sortVacations(approved)

	return pending, approved
}

func sortVacations(vacations []api.Vacation) {
	sort.SliceStable(vacations, func(i, j int) bool {
		if !vacations[i].StartDate.Equal(vacations[j].StartDate.Time) {
			return vacations[i].StartDate.Before(vacations[j].StartDate.Time)
		}
		return vacations[i].ID < vacations[j].ID
	})
}

// Render writes the dashboard for the given user to w
func (d *Dashboard) Render(w io.Writer, user *api.User, snap *Snapshot) {
	fmt.Fprintf(w, "👤 %s", user.Name)
	if user.IsAdmin {
		fmt.Fprintf(w, " (admin)")
	}
	fmt.Fprintf(w, " - %s/%s vacation days used\n",
		user.VacationDaysUsed.String(), user.VacationDaysTotal.String())

	renderSection(w, "Pending Vacations", snap.Pending)
	renderSection(w, "Approved Vacations", snap.Approved)
}

func renderSection(w io.Writer, title string, vacations []api.Vacation) {
	fmt.Fprintf(w, "\n📅 %s\n", title)
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════")

	if len(vacations) == 0 {
		fmt.Fprintln(w, "  No vacations available.")
		return
	}

	fmt.Fprintln(w, "  ID                       | Employee        | Type            | From       | To         | Days")
	fmt.Fprintln(w, "---------------------------+-----------------+-----------------+------------+------------+------")
	for _, v := range vacations {
		fmt.Fprintf(w, "  %-24s | %-15s | %-15s | %s | %s | %4d\n",
			v.ID,
			v.UserName,
			v.Type,
			v.StartDate.String(),
			v.EndDate.String(),
			v.DurationDays())
	}
}

// RenderUsers writes the admin user roster with the server-owned
// vacation-day counters
func (d *Dashboard) RenderUsers(ctx context.Context, w io.Writer) error {
	users, err := d.backend.AllUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to load user roster: %w", err)
	}

	fmt.Fprintln(w, "\n👥 Users")
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════")
	fmt.Fprintln(w, "  Name                  | Email                      | Admin | Total | Used  | Left")
	fmt.Fprintln(w, "------------------------+----------------------------+-------+-------+-------+------")
	for _, u := range users {
		admin := ""
		if u.IsAdmin {
			admin = "yes"
		}
		fmt.Fprintf(w, "  %-21s | %-26s | %-5s | %5s | %5s | %5s\n",
			u.Name,
			u.Email,
			admin,
			u.VacationDaysTotal.String(),
			u.VacationDaysUsed.String(),
			u.VacationDaysRemaining().String())
	}

	return nil
}
