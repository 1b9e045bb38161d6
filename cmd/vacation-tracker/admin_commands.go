package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/username/vacation-tracker-cli/internal/api"
	"github.com/username/vacation-tracker-cli/internal/session"
)

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List all users with their vacation-day counters (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initializeApp()
			if err != nil {
				return err
			}

			if _, err := session.Resolve(cmd.Context(), app.store, app.client); err != nil {
				return err
			}

			if err := app.dashboard.RenderUsers(cmd.Context(), cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("%s", api.UserMessage(err))
			}

			return nil
		},
	}

	cmd.AddCommand(userEditCmd())
	cmd.AddCommand(userDeleteCmd())

	return cmd
}

func userEditCmd() *cobra.Command {
	var nameFlag string
	var emailFlag string
	var positionFlag string
	var phoneFlag string
	var totalFlag string
	var usedFlag string
	var adminFlag bool

	cmd := &cobra.Command{
		Use:   "edit <user-id>",
		Short: "Edit a user record, vacation-day counters included (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := args[0]

			app, err := initializeApp()
			if err != nil {
				return err
			}

			if _, err := session.Resolve(cmd.Context(), app.store, app.client); err != nil {
				return err
			}

			existing, err := findUser(cmd, app, userID)
			if err != nil {
				return err
			}

			// The backend replaces the whole record, so start from the
			// current one and apply only the changed flags
			req := api.UpdateUserRequest{
				Name:              existing.Name,
				Email:             existing.Email,
				Position:          existing.Position,
				Phone:             existing.Phone,
				VacationDaysTotal: existing.VacationDaysTotal,
				VacationDaysUsed:  existing.VacationDaysUsed,
				IsAdmin:           existing.IsAdmin,
			}

			flags := cmd.Flags()
			if flags.Changed("name") {
				req.Name = nameFlag
			}
			if flags.Changed("email") {
				req.Email = emailFlag
			}
			if flags.Changed("position") {
				req.Position = positionFlag
			}
			if flags.Changed("phone") {
				req.Phone = phoneFlag
			}
			if flags.Changed("total") {
				req.VacationDaysTotal, err = decimal.NewFromString(totalFlag)
				if err != nil {
					return fmt.Errorf("invalid --total value: %w", err)
				}
			}
			if flags.Changed("used") {
				req.VacationDaysUsed, err = decimal.NewFromString(usedFlag)
				if err != nil {
					return fmt.Errorf("invalid --used value: %w", err)
				}
			}
			if flags.Changed("admin") {
				req.IsAdmin = adminFlag
			}

			user, err := app.client.UpdateUser(cmd.Context(), userID, req)
			if err != nil {
				return fmt.Errorf("%s", api.UserMessage(err))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ User %s updated\n", user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&nameFlag, "name", "", "Full name")
	cmd.Flags().StringVar(&emailFlag, "email", "", "Email address")
	cmd.Flags().StringVar(&positionFlag, "position", "", "Job position")
	cmd.Flags().StringVar(&phoneFlag, "phone", "", "Phone number")
	cmd.Flags().StringVar(&totalFlag, "total", "", "Total vacation days (half days allowed)")
	cmd.Flags().StringVar(&usedFlag, "used", "", "Used vacation days (half days allowed)")
	cmd.Flags().BoolVar(&adminFlag, "admin", false, "Grant or revoke admin rights")

	return cmd
}

func findUser(cmd *cobra.Command, app *app, userID string) (*api.User, error) {
	users, err := app.client.AllUsers(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("%s", api.UserMessage(err))
	}

	for i := range users {
		if users[i].ID == userID {
			return &users[i], nil
		}
	}

	return nil, fmt.Errorf("user %s not found", userID)
}

func userDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <user-id>",
		Short: "Delete a user account (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initializeApp()
			if err != nil {
				return err
			}

			if _, err := session.Resolve(cmd.Context(), app.store, app.client); err != nil {
				return err
			}

			if err := app.client.DeleteUser(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("%s", api.UserMessage(err))
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✅ User deleted")
			return nil
		},
	}
}

func registerCmd() *cobra.Command {
	var req api.RegisterUserRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user account (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initializeApp()
			if err != nil {
				return err
			}

			if _, err := session.Resolve(cmd.Context(), app.store, app.client); err != nil {
				return err
			}

			if req.Name == "" || req.Email == "" || req.Password == "" {
				return fmt.Errorf("--name, --email and --password are required")
			}

			user, err := app.client.RegisterUser(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("%s", api.UserMessage(err))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ User %s registered\n", user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&req.Position, "position", "", "Job position")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&req.Password, "password", "", "Initial password")
	cmd.Flags().BoolVar(&req.IsAdmin, "admin", false, "Grant admin rights")

	return cmd
}
