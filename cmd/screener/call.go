package main

import (
	"errors"

	"github.com/aretw0/screener/internal/cli"
	"github.com/spf13/cobra"
)

var callCmd = &cobra.Command{
	Use:   "call",
	Short: "Run a screening call",
	Long: `Runs one screening call. Without --job the configured job title is used.
With --job and --candidate the answers are saved to the candidate and a
confirmed interview is scheduled. On a terminal, missing choices are picked
interactively.`,
	Args: cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, _ []string, app *cli.App) error {
		company, _ := cmd.Flags().GetString("company")
		_, err := cli.RunCall(cmd.Context(), app, cli.CallOptions{
			JobID:       v.GetString("call.job"),
			CandidateID: v.GetString("call.candidate"),
			Company:     company,
			Picker:      cli.PromptPicker{},
			In:          cmd.InOrStdin(),
			Out:         cmd.OutOrStdout(),
		})
		if errors.Is(err, cli.ErrInterrupted) {
			cmd.PrintErrln("Call interrupted.")
			return nil
		}
		return err
	}),
}

func init() {
	rootCmd.AddCommand(callCmd)

	callCmd.Flags().String("job", "", "stored job ID")
	callCmd.Flags().String("candidate", "", "stored candidate ID (requires --job)")
	callCmd.Flags().String("company", "", "company name spoken in the greeting (default job.company)")

	_ = v.BindPFlag("call.job", callCmd.Flags().Lookup("job"))
	_ = v.BindPFlag("call.candidate", callCmd.Flags().Lookup("candidate"))
}
