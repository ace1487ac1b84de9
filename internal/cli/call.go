package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/screener"
	"github.com/aretw0/screener/internal/presentation/tui"
	"github.com/aretw0/screener/pkg/agent"
	"github.com/aretw0/screener/pkg/domain"
	"github.com/aretw0/screener/pkg/observability"
	"github.com/aretw0/screener/pkg/records"
	"github.com/aretw0/screener/pkg/speech"
	"github.com/prometheus/client_golang/prometheus"
)

// ErrInterrupted is returned when a call ends before the closing message.
var ErrInterrupted = errors.New("call ended before completion")

// CallOptions selects who is called about what.
type CallOptions struct {
	JobID       string
	CandidateID string
	// Company overrides the configured company name.
	Company string

	// Picker is asked for a job and candidate when none were given and the
	// session is interactive. Nil disables picking.
	Picker Picker

	In  io.Reader
	Out io.Writer
}

// CallResult is what a finished call produced.
type CallResult struct {
	Job         domain.JobContext
	Candidate   *domain.Candidate
	Collected   map[string]any
	Appointment *domain.Appointment
}

// RunCall runs one screening call to completion, then writes the answers
// back to the candidate record and prints a summary.
func RunCall(ctx context.Context, app *App, opts CallOptions) (*CallResult, error) {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	logger := app.Logger

	speechCfg := app.Config.Speech.Speech()
	speechCfg.Input = opts.In

	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	if addr := app.Config.Metrics.Addr; addr != "" {
		go func() {
			if err := observability.Serve(ctx, addr, reg, logger); err != nil {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	interactive := speech.IsInteractive(opts.In)
	if interactive {
		tui.PrintBanner(opts.Out, screener.Version)
	}
	result, jobID, err := resolveParties(ctx, app, opts, interactive)
	if err != nil {
		return nil, err
	}

	call, err := screener.NewCall(result.Job,
		screener.WithSpeech(speechCfg),
		screener.WithLogger(logger),
		screener.WithAgentOptions(
			agent.WithListenDelay(app.Config.Agent.ListenDelay),
			agent.WithRetryPolicy(app.Config.Agent.Retry.Policy()),
			agent.WithLifecycleHooks(observability.Combine(observability.LoggingHooks(logger), metrics.Hooks())),
		),
	)
	if err != nil {
		return nil, err
	}
	caps := call.Capabilities

	transcript := tui.NewTranscript(opts.Out, tui.WithUserEcho(!caps.Interactive || caps.Recognition != speech.ModeConsole))
	done := make(chan domain.Update, 1)
	call.OnUpdate(agent.Fanout(transcript.Render, func(u domain.Update) {
		if u.Completed || u.Failed {
			select {
			case done <- u:
			default:
			}
		}
	}))

	logger.Info("call started", "session", call.SessionID(), "job", result.Job.Title, "recognition", caps.Recognition, "synthesis", caps.Synthesis)
	if err := call.Start(ctx); err != nil {
		return nil, err
	}
	defer call.Stop()

	var final domain.Update
	select {
	case final = <-done:
	case <-ctx.Done():
		return nil, ErrInterrupted
	}

	if final.Failed {
		err := fmt.Errorf("speech input failed: %s", final.Error)
		app.Reporter.Capture(ctx, err, map[string]string{"component": "agent", "session": call.SessionID()})
		return nil, err
	}
	if !final.Step.Closed() {
		return nil, ErrInterrupted
	}

	result.Collected = call.Collected()
	var notes []string
	if result.Candidate != nil {
		outcome, err := records.OutcomeFrom(result.Collected)
		if err != nil {
			return nil, err
		}
		appt, err := app.Records.ApplyOutcome(ctx, result.Candidate.ID, jobID, outcome)
		if err != nil {
			app.Reporter.Capture(ctx, err, map[string]string{"component": "records"})
			return nil, err
		}
		result.Appointment = appt
		notes = append(notes, "Candidate record updated.")
		if appt != nil {
			notes = append(notes, fmt.Sprintf("Interview scheduled as appointment %s.", appt.ID))
		}
	}

	candidateName := ""
	if result.Candidate != nil {
		candidateName = result.Candidate.Name
	}
	summary := tui.Summary(result.Job, candidateName, result.Collected, notes...)
	if caps.Interactive {
		if rendered, err := tui.NewRenderer()(summary); err == nil {
			summary = rendered
		}
	}
	fmt.Fprintln(opts.Out, summary)
	return result, nil
}

// resolveParties loads or picks the job and candidate. It returns the
// stored job ID, empty when the call uses the configured job context.
func resolveParties(ctx context.Context, app *App, opts CallOptions, interactive bool) (*CallResult, string, error) {
	company := opts.Company
	if company == "" {
		company = app.Config.Job.Company
	}
	result := &CallResult{Job: app.Config.Job.Context()}
	result.Job.Company = company

	jobID, candidateID := opts.JobID, opts.CandidateID
	pick := interactive && opts.Picker != nil && jobID == "" && candidateID == ""

	if pick {
		jobs, err := app.Records.Jobs(ctx)
		if err != nil {
			return nil, "", err
		}
		if len(jobs) > 0 {
			job, err := opts.Picker.PickJob(jobs)
			if err != nil {
				return nil, "", err
			}
			if job != nil {
				jobID = job.ID
			}
		}
	}
	if jobID != "" {
		job, err := app.Records.Job(ctx, jobID)
		if err != nil {
			return nil, "", fmt.Errorf("job %s: %w", jobID, err)
		}
		result.Job = job.Context(company)
	}

	if pick && jobID != "" {
		candidates, err := app.Records.Candidates(ctx)
		if err != nil {
			return nil, "", err
		}
		if len(candidates) > 0 {
			c, err := opts.Picker.PickCandidate(candidates)
			if err != nil {
				return nil, "", err
			}
			if c != nil {
				candidateID = c.ID
			}
		}
	}
	if candidateID != "" {
		if jobID == "" {
			return nil, "", errors.New("a candidate can only be screened for a stored job, pass --job as well")
		}
		c, err := app.Records.Candidate(ctx, candidateID)
		if err != nil {
			return nil, "", fmt.Errorf("candidate %s: %w", candidateID, err)
		}
		result.Candidate = &c
	}
	return result, jobID, nil
}
