package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/username/vacation-tracker-cli/internal/api"
	"github.com/username/vacation-tracker-cli/internal/session"
	"golang.org/x/term"
)

func loginCmd() *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the backend and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initializeApp()
			if err != nil {
				return err
			}

			if email == "" {
				email, err = promptLine(cmd, "Email: ")
				if err != nil {
					return err
				}
			}
			if password == "" {
				password, err = promptPassword(cmd, "Password: ")
				if err != nil {
					return err
				}
			}

			resp, err := app.client.Login(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("%s", api.UserMessage(err))
			}

			if err := app.store.Save(resp.Token); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ Logged in as %s", resp.User.Name)
			if resp.User.IsAdmin {
				fmt.Fprint(cmd.OutOrStdout(), " (admin)")
			}
			fmt.Fprintln(cmd.OutOrStdout())

			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted)")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initializeApp()
			if err != nil {
				return err
			}

			if err := app.store.Clear(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✅ Logged out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the profile of the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initializeApp()
			if err != nil {
				return err
			}

			sess, err := session.Resolve(cmd.Context(), app.store, app.client)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			u := sess.User
			fmt.Fprintf(out, "Name:     %s\n", u.Name)
			fmt.Fprintf(out, "Email:    %s\n", u.Email)
			if u.Position != "" {
				fmt.Fprintf(out, "Position: %s\n", u.Position)
			}
			fmt.Fprintf(out, "Admin:    %t\n", u.IsAdmin)
			fmt.Fprintf(out, "Vacation: %s of %s days used (%s left)\n",
				u.VacationDaysUsed.String(),
				u.VacationDaysTotal.String(),
				u.VacationDaysRemaining().String())

			return nil
		},
	}
}

func promptLine(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	return strings.TrimSpace(line), nil
}

// promptPassword reads a line from stdin without echoing it. When stdin is
// not a terminal (piped input) it falls back to plain line reading.
func promptPassword(cmd *cobra.Command, prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return promptLine(cmd, prompt)
	}

	fmt.Fprint(cmd.OutOrStdout(), prompt)
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	return strings.TrimSpace(string(raw)), nil
}
