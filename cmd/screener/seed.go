package main

import (
	"fmt"

	"github.com/aretw0/screener/internal/cli"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample records into an empty store",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, _ []string, app *cli.App) error {
		seeded, err := app.Records.Seed(cmd.Context())
		if err != nil {
			return err
		}
		if seeded {
			fmt.Println("Sample job, candidate and appointment created.")
		} else {
			fmt.Println("Store already has jobs, nothing seeded.")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
