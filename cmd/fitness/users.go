package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"example.com/fitnessclient/internal/domain"
)

func newUsersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage user accounts",
	}
	cmd.AddCommand(newUsersProfileCmd(a), newUsersRegisterCmd(a), newUsersValidateCmd(a))
	return cmd
}

// userArg returns args[0] or the signed-in user's id.
func (a *app) userArg(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	cred, err := a.requireSession()
	if err != nil {
		return "", err
	}
	return cred.UserID, nil
}

func newUsersProfileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profile [user-id]",
		Short: "Show a user profile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.userArg(args)
			if err != nil {
				return err
			}
			u, err := a.users.Profile(cmd.Context(), id)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "ID\t%s\n", u.ID)
			fmt.Fprintf(tw, "Email\t%s\n", u.Email)
			fmt.Fprintf(tw, "Name\t%s %s\n", u.FirstName, u.LastName)
			return tw.Flush()
		},
	}
}

func newUsersRegisterCmd(a *app) *cobra.Command {
	var reg domain.Registration
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := a.users.Register(cmd.Context(), reg)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Registered %s (%s)\n", u.Email, u.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&reg.Email, "email", "", "email address (required)")
	cmd.Flags().StringVar(&reg.Password, "password", "", "password, at least 6 characters (required)")
	cmd.Flags().StringVar(&reg.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&reg.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&reg.KeycloakID, "keycloak-id", "", "identity provider subject to link")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newUsersValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [user-id]",
		Short: "Check that a user exists",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.userArg(args)
			if err != nil {
				return err
			}
			ok, err := a.users.Validate(cmd.Context(), id)
			if err != nil {
				return err
			}
			if ok {
				fmt.Fprintf(a.out, "%s exists\n", id)
			} else {
				fmt.Fprintf(a.out, "%s does not exist\n", id)
			}
			return nil
		},
	}
}
