package main

import (
	"fmt"

	"github.com/aretw0/screener/internal/cli"
	"github.com/aretw0/screener/pkg/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "Manage candidates",
}

var candidatesListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List candidates",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, _ []string, app *cli.App) error {
		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}
		candidates, err := app.Records.Candidates(cmd.Context())
		if err != nil {
			return err
		}
		return cli.PrintCandidates(cmd.OutOrStdout(), format, candidates)
	}),
}

var candidatesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a candidate",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, _ []string, app *cli.App) error {
		var c domain.Candidate
		applyCandidateFlags(cmd.Flags(), &c)
		created, err := app.Records.CreateCandidate(cmd.Context(), c)
		if err != nil {
			return err
		}
		fmt.Println(created.ID)
		return nil
	}),
}

var candidatesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a candidate and their appointments",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *cli.App) error {
		ctx := cmd.Context()
		c, err := app.Records.Candidate(ctx, args[0])
		if err != nil {
			return err
		}
		appts, err := app.Records.AppointmentsForCandidate(ctx, c.ID)
		if err != nil {
			return err
		}
		return cli.PrintYAML(cmd.OutOrStdout(), map[string]any{
			"candidate":    c,
			"appointments": appts,
		})
	}),
}

var candidatesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of a candidate",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *cli.App) error {
		_, err := app.Records.UpdateCandidate(cmd.Context(), args[0], func(c *domain.Candidate) {
			applyCandidateFlags(cmd.Flags(), c)
		})
		return err
	}),
}

var candidatesDeleteCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Delete candidates",
	Args:  cobra.MinimumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *cli.App) error {
		for _, id := range args {
			if err := app.Records.DeleteCandidate(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("Removed candidate '%s'\n", id)
		}
		return nil
	}),
}

var candidateFields = []struct {
	flag  string
	usage string
	field func(*domain.Candidate) *string
}{
	{"name", "full name", func(c *domain.Candidate) *string { return &c.Name }},
	{"phone", "phone number", func(c *domain.Candidate) *string { return &c.Phone }},
	{"current-ctc", "current compensation", func(c *domain.Candidate) *string { return &c.CurrentCTC }},
	{"expected-ctc", "expected compensation", func(c *domain.Candidate) *string { return &c.ExpectedCTC }},
	{"notice-period", "notice period", func(c *domain.Candidate) *string { return &c.NoticePeriod }},
	{"experience", "years of experience", func(c *domain.Candidate) *string { return &c.Experience }},
}

// applyCandidateFlags copies every flag that was set onto c.
func applyCandidateFlags(flags *pflag.FlagSet, c *domain.Candidate) {
	for _, f := range candidateFields {
		if flags.Changed(f.flag) {
			*f.field(c), _ = flags.GetString(f.flag)
		}
	}
}

func init() {
	rootCmd.AddCommand(candidatesCmd)
	candidatesCmd.AddCommand(candidatesListCmd, candidatesAddCmd, candidatesShowCmd, candidatesUpdateCmd, candidatesDeleteCmd)
	addOutputFlag(candidatesCmd)

	for _, c := range []*cobra.Command{candidatesAddCmd, candidatesUpdateCmd} {
		for _, f := range candidateFields {
			c.Flags().String(f.flag, "", f.usage)
		}
	}
}
