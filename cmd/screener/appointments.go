package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/screener/internal/cli"
	"github.com/aretw0/screener/pkg/domain"
	"github.com/spf13/cobra"
)

var appointmentsCmd = &cobra.Command{
	Use:     "appointments",
	Aliases: []string{"appts"},
	Short:   "Manage interview appointments",
}

var appointmentsListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List appointments, optionally for one job or candidate",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, _ []string, app *cli.App) error {
		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		jobID, _ := cmd.Flags().GetString("job")
		candidateID, _ := cmd.Flags().GetString("candidate")

		var appts []domain.Appointment
		switch {
		case jobID != "" && candidateID != "":
			return errors.New("--job and --candidate cannot be used together")
		case jobID != "":
			appts, err = app.Records.AppointmentsForJob(ctx, jobID)
		case candidateID != "":
			appts, err = app.Records.AppointmentsForCandidate(ctx, candidateID)
		default:
			appts, err = app.Records.Appointments(ctx)
		}
		if err != nil {
			return err
		}
		return cli.PrintAppointments(cmd.OutOrStdout(), format, appts)
	}),
}

var appointmentsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Schedule an appointment",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, _ []string, app *cli.App) error {
		flags := cmd.Flags()
		jobID, _ := flags.GetString("job")
		candidateID, _ := flags.GetString("candidate")
		at, _ := flags.GetString("at")
		status, _ := flags.GetString("status")

		when, err := cli.ParseTime(at)
		if err != nil {
			return err
		}
		appt, err := app.Records.CreateAppointment(cmd.Context(), domain.Appointment{
			JobID:       jobID,
			CandidateID: candidateID,
			DateTime:    when,
			Status:      domain.AppointmentStatus(status),
		})
		if err != nil {
			return err
		}
		fmt.Println(appt.ID)
		return nil
	}),
}

var appointmentsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an appointment",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *cli.App) error {
		appt, err := app.Records.Appointment(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return cli.PrintYAML(cmd.OutOrStdout(), appt)
	}),
}

var appointmentsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Reschedule an appointment or change its status",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *cli.App) error {
		flags := cmd.Flags()
		var when time.Time
		if flags.Changed("at") {
			at, _ := flags.GetString("at")
			t, err := cli.ParseTime(at)
			if err != nil {
				return err
			}
			when = t
		}
		_, err := app.Records.UpdateAppointment(cmd.Context(), args[0], func(a *domain.Appointment) {
			if !when.IsZero() {
				a.DateTime = when
			}
			if flags.Changed("status") {
				status, _ := flags.GetString("status")
				a.Status = domain.AppointmentStatus(status)
			}
		})
		return err
	}),
}

var appointmentsDeleteCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Delete appointments",
	Args:  cobra.MinimumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *cli.App) error {
		for _, id := range args {
			if err := app.Records.DeleteAppointment(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("Removed appointment '%s'\n", id)
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(appointmentsCmd)
	appointmentsCmd.AddCommand(appointmentsListCmd, appointmentsAddCmd, appointmentsShowCmd, appointmentsUpdateCmd, appointmentsDeleteCmd)
	addOutputFlag(appointmentsCmd)

	appointmentsListCmd.Flags().String("job", "", "only appointments for this job ID")
	appointmentsListCmd.Flags().String("candidate", "", "only appointments for this candidate ID")

	appointmentsAddCmd.Flags().String("job", "", "job ID")
	appointmentsAddCmd.Flags().String("candidate", "", "candidate ID")
	appointmentsAddCmd.Flags().String("at", "", `date and time, RFC 3339 or "2006-01-02 15:04"`)
	appointmentsAddCmd.Flags().String("status", string(domain.AppointmentScheduled), "scheduled, completed or cancelled")
	_ = appointmentsAddCmd.MarkFlagRequired("at")

	appointmentsUpdateCmd.Flags().String("at", "", `new date and time, RFC 3339 or "2006-01-02 15:04"`)
	appointmentsUpdateCmd.Flags().String("status", "", "scheduled, completed or cancelled")
}
