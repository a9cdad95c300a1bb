package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/objectifs/objectifs/internal/app"
)

func UserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "role <email> <user|admin>",
		Short: "Change the role of a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				u, err := a.UserService.SetRole(args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Printf("%s is now %s\n", u.Email, u.Role)
				return nil
			})
		},
	})

	return cmd
}
