package screener

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/screener/pkg/agent"
	"github.com/aretw0/screener/pkg/domain"
	"github.com/aretw0/screener/pkg/speech"
)

// Version is overridden at build time:
// -ldflags "-X github.com/aretw0/screener.Version=1.2.3".
var Version = "0.1.0-dev"

// Call is the high-level entry point: a turn-taking agent bound to the
// speech adapters detected for it.
type Call struct {
	*agent.Agent
	Capabilities speech.Capabilities
}

// Option defines a functional option for configuring NewCall.
type Option func(*callConfig)

type callConfig struct {
	speech    speech.Config
	logger    *slog.Logger
	agentOpts []agent.Option
}

// WithSpeech selects the speech adapters. The default is auto detection.
func WithSpeech(cfg speech.Config) Option {
	return func(c *callConfig) {
		c.speech = cfg
	}
}

// WithLogger sets the structured logger for the call and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return func(c *callConfig) {
		c.logger = logger
	}
}

// WithAgentOptions passes options through to agent.New.
func WithAgentOptions(opts ...agent.Option) Option {
	return func(c *callConfig) {
		c.agentOpts = append(c.agentOpts, opts...)
	}
}

// NewCall prepares a screening call for job. Nothing is spoken until Start.
func NewCall(job domain.JobContext, opts ...Option) (*Call, error) {
	cfg := callConfig{speech: speech.Config{Mode: speech.ModeAuto}}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	rec, synth, caps, err := speech.Detect(cfg.speech, cfg.logger)
	if err != nil {
		return nil, fmt.Errorf("speech: %w", err)
	}
	cfg.logger.Debug("speech adapters selected", "recognition", caps.Recognition, "synthesis", caps.Synthesis, "interactive", caps.Interactive)

	agentOpts := append([]agent.Option{agent.WithLogger(cfg.logger)}, cfg.agentOpts...)
	return &Call{
		Agent:        agent.New(job, rec, synth, agentOpts...),
		Capabilities: caps,
	}, nil
}
