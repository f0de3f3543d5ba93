package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"jyambere.org/internal/session"
)

func newRegisterCmd() *cobra.Command {
	var email, password, name string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account; role and department derive from the email",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			snap, err := a.accounts.Register(cmd.Context(), email, password, name)
			if err != nil {
				return err
			}
			printSession(cmd, snap)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newLoginCmd() *cobra.Command {
	var email, password string
	var withToken bool
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			snap, err := a.accounts.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			printSession(cmd, snap)
			if withToken {
				token, err := session.IssueToken(snap, 24*time.Hour)
				if err != nil {
					return fmt.Errorf("issue token: %w", err)
				}
				cmd.Println("token:", token)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().BoolVar(&withToken, "token", false, "also issue a signed session token (requires JYAMBERE_SESSION_SECRET)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()
			return a.accounts.Logout(cmd.Context())
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the restored session, if any",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			snap, err := a.accounts.RestoreSession(cmd.Context())
			if err != nil {
				return err
			}
			if snap == nil {
				cmd.Println("not logged in")
				return nil
			}
			printSession(cmd, *snap)
			return nil
		},
	}
}

var errNotLoggedIn = errors.New("not logged in")

// requireSession restores the persisted session and attaches it to the
// context for audit attribution.
func requireSession(ctx context.Context, a *app) (context.Context, session.Snapshot, error) {
	snap, err := a.accounts.RestoreSession(ctx)
	if err != nil {
		return ctx, session.Snapshot{}, err
	}
	if snap == nil {
		return ctx, session.Snapshot{}, errNotLoggedIn
	}
	return session.ContextWithSnapshot(ctx, *snap), *snap, nil
}

func printSession(cmd *cobra.Command, snap session.Snapshot) {
	dept := "-"
	if snap.Department != nil {
		dept = *snap.Department
	}
	cmd.Printf("%s <%s> role=%s department=%s\n", snap.Name, snap.Email, snap.Role, dept)
}
