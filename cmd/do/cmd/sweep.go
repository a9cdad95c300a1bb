package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/objectifs/objectifs/internal/app"
)

func SweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Gap-fill the progress of every active objective now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				res, err := a.ObjectiveService.Sweep()
				if err != nil {
					return err
				}
				fmt.Printf("Scanned %d objectives, updated %d, filled %d days, %d failed\n",
					res.Scanned, res.Updated, res.Days, res.Failed)
				return nil
			})
		},
	}
}
