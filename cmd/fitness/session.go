package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"example.com/fitnessclient/internal/session"
)

func newLoginCmd(a *app) *cobra.Command {
	var token, userID string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store a bearer token as the current session",
		Long: `Store a bearer token issued by the identity provider.

The user id is read from the token's "sub" claim unless --user-id is given.
Opaque tokens need --user-id.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cred, err := session.Login(a.store, token, userID)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Signed in as %s\n", cred.UserID)
			if !cred.ExpiresAt.IsZero() {
				fmt.Fprintf(a.out, "Session expires %s\n", cred.ExpiresAt.Local().Format(time.RFC1123))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "bearer token (required)")
	cmd.Flags().StringVar(&userID, "user-id", "", "user id (defaults to the token subject)")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the current session",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if err := session.Logout(a.store); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Signed out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			cred, err := a.requireSession()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, cred.UserID)
			if cred.Expired(time.Now()) {
				fmt.Fprintln(a.out, "(token expired; the next request will sign you out)")
			}
			return nil
		},
	}
}
