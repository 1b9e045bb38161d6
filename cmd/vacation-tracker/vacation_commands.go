package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/username/vacation-tracker-cli/internal/api"
	"github.com/username/vacation-tracker-cli/internal/session"
	"github.com/username/vacation-tracker-cli/internal/workflow"
	"github.com/username/vacation-tracker-cli/pkg/dateutil"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show pending and approved vacations",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initializeApp()
			if err != nil {
				return err
			}

			sess, err := session.Resolve(cmd.Context(), app.store, app.client)
			if err != nil {
				return err
			}

			snap, err := app.dashboard.Refresh(cmd.Context())
			if err != nil {
				return err
			}

			app.dashboard.Render(cmd.OutOrStdout(), sess.User, snap)

			if sess.User.IsAdmin {
				if err := app.dashboard.RenderUsers(cmd.Context(), cmd.OutOrStdout()); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

func requestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "request",
		Short: "Create, edit, or delete vacation requests",
	}

	cmd.AddCommand(requestAddCmd())
	cmd.AddCommand(requestEditCmd())
	cmd.AddCommand(requestDeleteCmd())

	return cmd
}

func requestAddCmd() *cobra.Command {
	var typeFlag string
	var fromFlag string
	var toFlag string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Submit a new vacation request",
		Long:  "Submit a new vacation request. Valid types: " + typeList(),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initializeApp()
			if err != nil {
				return err
			}

			if _, err := session.Resolve(cmd.Context(), app.store, app.client); err != nil {
				return err
			}

			form := workflow.NewForm()
			if err := applyFormFlags(form, typeFlag, fromFlag, toFlag); err != nil {
				return err
			}

			if err := app.newWorkflow(cmd).Create(cmd.Context(), form); err != nil {
				return fmt.Errorf("%s", form.Message())
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✅ Vacation successfully added!")
			return nil
		},
	}

	cmd.Flags().StringVar(&typeFlag, "type", string(api.TypeLeave), "Vacation type")
	cmd.Flags().StringVar(&fromFlag, "from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toFlag, "to", "", "End date (YYYY-MM-DD)")

	return cmd
}

func requestEditCmd() *cobra.Command {
	var typeFlag string
	var fromFlag string
	var toFlag string

	cmd := &cobra.Command{
		Use:   "edit <vacation-id>",
		Short: "Edit a pending vacation request you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vacationID := args[0]

			app, err := initializeApp()
			if err != nil {
				return err
			}

			sess, err := session.Resolve(cmd.Context(), app.store, app.client)
			if err != nil {
				return err
			}

			existing, err := findVacation(cmd, app, vacationID)
			if err != nil {
				return err
			}
			if existing.Status != api.StatusPending {
				return fmt.Errorf("only pending requests can be edited (status is %s)", existing.Status)
			}
			if existing.UserID != sess.User.ID {
				// Advisory only; the backend enforces ownership
				return fmt.Errorf("vacation %s belongs to another user", vacationID)
			}

			form := workflow.FormFromVacation(*existing)
			if err := applyFormFlags(form, typeFlag, fromFlag, toFlag); err != nil {
				return err
			}

			if err := app.newWorkflow(cmd).Update(cmd.Context(), vacationID, form); err != nil {
				return fmt.Errorf("%s", form.Message())
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✅ Vacation successfully updated!")
			return nil
		},
	}

	cmd.Flags().StringVar(&typeFlag, "type", "", "New vacation type")
	cmd.Flags().StringVar(&fromFlag, "from", "", "New start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toFlag, "to", "", "New end date (YYYY-MM-DD)")

	return cmd
}

func requestDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <vacation-id>",
		Aliases: []string{"delete"},
		Short:   "Delete a vacation request (own pending, or approved as admin)",
		Args:    cobra.ExactArgs(1),
		RunE:    transitionRunE(workflow.ActionDelete, "✅ Vacation deleted"),
	}
}

func approveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approve <vacation-id>",
		Short: "Approve a pending vacation request (admin)",
		Args:  cobra.ExactArgs(1),
		RunE:  transitionRunE(workflow.ActionApprove, "✅ Vacation approved"),
	}
}

func rejectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reject <vacation-id>",
		Short: "Reject a pending vacation request (admin)",
		Args:  cobra.ExactArgs(1),
		RunE:  transitionRunE(workflow.ActionReject, "✅ Vacation rejected"),
	}
}

// transitionRunE builds the shared approve/reject/delete command body. Admin
// gating is advisory on the client; the backend's answer is authoritative.
func transitionRunE(action workflow.Action, successMsg string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		vacationID := args[0]

		app, err := initializeApp()
		if err != nil {
			return err
		}

		if _, err := session.Resolve(cmd.Context(), app.store, app.client); err != nil {
			return err
		}

		if err := app.newWorkflow(cmd).Transition(cmd.Context(), vacationID, action); err != nil {
			return fmt.Errorf("%s", api.UserMessage(err))
		}

		fmt.Fprintln(cmd.OutOrStdout(), successMsg)
		return nil
	}
}

func findVacation(cmd *cobra.Command, app *app, vacationID string) (*api.Vacation, error) {
	vacations, err := app.client.AllVacations(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("%s", api.UserMessage(err))
	}

	for i := range vacations {
		if vacations[i].ID == vacationID {
			return &vacations[i], nil
		}
	}

	return nil, fmt.Errorf("vacation %s not found", vacationID)
}

func applyFormFlags(form *workflow.Form, typeFlag, fromFlag, toFlag string) error {
	if typeFlag != "" {
		t, err := api.ParseVacationType(typeFlag)
		if err != nil {
			return fmt.Errorf("%w (valid: %s)", err, typeList())
		}
		form.SetType(t)
	}

	if fromFlag != "" {
		date, err := dateutil.ParseDate(fromFlag)
		if err != nil {
			return fmt.Errorf("invalid --from date: %w", err)
		}
		form.SetStartDate(date)
	}

	if toFlag != "" {
		date, err := dateutil.ParseDate(toFlag)
		if err != nil {
			return fmt.Errorf("invalid --to date: %w", err)
		}
		form.SetEndDate(date)
	}

	return nil
}

func typeList() string {
	types := api.VacationTypes()
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}
