package main

import (
	"github.com/spf13/cobra"
)

func newRecommendationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "recommendations",
		Aliases: []string{"recs"},
		Short:   "Read AI recommendations",
	}

	var userID string
	list := &cobra.Command{
		Use:   "list",
		Short: "List every recommendation generated for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if userID == "" {
				cred, err := a.requireSession()
				if err != nil {
					return err
				}
				userID = cred.UserID
			}
			recs, err := a.recommendations.ForUser(cmd.Context(), userID)
			if err != nil {
				return err
			}
			printRecommendations(a.out, recs)
			return nil
		},
	}
	list.Flags().StringVar(&userID, "user-id", "", "user id (defaults to the signed-in user)")

	cmd.AddCommand(list)
	return cmd
}
