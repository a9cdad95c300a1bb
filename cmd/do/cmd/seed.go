package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/objectifs/objectifs/internal/app"
)

func SeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load reference data",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "quran <verses.yaml>",
		Short: "Insert or replace Quran verses from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			return withApp(cmd.Context(), func(a *app.App) error {
				n, err := a.QuranService.Seed(f)
				if err != nil {
					return err
				}
				fmt.Printf("Seeded %d verses\n", n)
				return nil
			})
		},
	})

	return cmd
}
