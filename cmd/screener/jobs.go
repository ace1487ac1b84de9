package main

import (
	"fmt"

	"github.com/aretw0/screener/internal/cli"
	"github.com/aretw0/screener/pkg/domain"
	"github.com/spf13/cobra"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Manage jobs",
}

var jobsListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List jobs",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, _ []string, app *cli.App) error {
		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}
		jobs, err := app.Records.Jobs(cmd.Context())
		if err != nil {
			return err
		}
		return cli.PrintJobs(cmd.OutOrStdout(), format, jobs)
	}),
}

var jobsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a job",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, _ []string, app *cli.App) error {
		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")
		requirements, _ := cmd.Flags().GetString("requirements")

		job, err := app.Records.CreateJob(cmd.Context(), domain.Job{
			Title:        title,
			Description:  description,
			Requirements: requirements,
		})
		if err != nil {
			return err
		}
		fmt.Println(job.ID)
		return nil
	}),
}

var jobsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a job and its appointments",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *cli.App) error {
		ctx := cmd.Context()
		job, err := app.Records.Job(ctx, args[0])
		if err != nil {
			return err
		}
		appts, err := app.Records.AppointmentsForJob(ctx, job.ID)
		if err != nil {
			return err
		}
		return cli.PrintYAML(cmd.OutOrStdout(), map[string]any{
			"job":          job,
			"appointments": appts,
		})
	}),
}

var jobsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of a job",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *cli.App) error {
		flags := cmd.Flags()
		_, err := app.Records.UpdateJob(cmd.Context(), args[0], func(j *domain.Job) {
			if flags.Changed("title") {
				j.Title, _ = flags.GetString("title")
			}
			if flags.Changed("description") {
				j.Description, _ = flags.GetString("description")
			}
			if flags.Changed("requirements") {
				j.Requirements, _ = flags.GetString("requirements")
			}
		})
		return err
	}),
}

var jobsDeleteCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Delete jobs",
	Args:  cobra.MinimumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *cli.App) error {
		for _, id := range args {
			if err := app.Records.DeleteJob(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("Removed job '%s'\n", id)
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(jobsCmd)
	jobsCmd.AddCommand(jobsListCmd, jobsAddCmd, jobsShowCmd, jobsUpdateCmd, jobsDeleteCmd)
	addOutputFlag(jobsCmd)

	for _, c := range []*cobra.Command{jobsAddCmd, jobsUpdateCmd} {
		c.Flags().String("title", "", "job title")
		c.Flags().String("description", "", "job description")
		c.Flags().String("requirements", "", "job requirements")
	}
}
