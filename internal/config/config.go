// Package config loads screener settings from defaults, an optional YAML
// file, .env files, environment variables and bound command-line flags.
package config

import (
	"time"

	"github.com/aretw0/screener/pkg/agent"
	"github.com/aretw0/screener/pkg/domain"
	"github.com/aretw0/screener/pkg/speech"
)

// Config is the complete application configuration.
type Config struct {
	Job     JobConfig     `mapstructure:"job"`
	Agent   AgentConfig   `mapstructure:"agent"`
	Speech  SpeechConfig  `mapstructure:"speech"`
	Store   StoreConfig   `mapstructure:"store"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Sentry  SentryConfig  `mapstructure:"sentry"`
}

// JobConfig is the job context used when a call is not tied to a stored job.
type JobConfig struct {
	Title   string `mapstructure:"title" validate:"required"`
	Company string `mapstructure:"company" validate:"required"`
}

func (c JobConfig) Context() domain.JobContext {
	return domain.JobContext{Title: c.Title, Company: c.Company}
}

type AgentConfig struct {
	ListenDelay time.Duration `mapstructure:"listen_delay" validate:"gte=0"`
	Retry       RetryConfig   `mapstructure:"retry"`
}

type RetryConfig struct {
	MaxAttempts  int           `mapstructure:"max_attempts" validate:"gte=0"`
	InitialDelay time.Duration `mapstructure:"initial_delay" validate:"gte=0"`
	MaxDelay     time.Duration `mapstructure:"max_delay" validate:"gte=0"`
	Multiplier   float64       `mapstructure:"multiplier" validate:"gte=1"`
}

// Policy converts the settings into an agent.RetryPolicy.
func (c RetryConfig) Policy() agent.RetryPolicy {
	return agent.RetryPolicy{
		MaxAttempts:  c.MaxAttempts,
		InitialDelay: c.InitialDelay,
		MaxDelay:     c.MaxDelay,
		Multiplier:   c.Multiplier,
	}
}

type SpeechConfig struct {
	Mode           string `mapstructure:"mode" validate:"oneof=auto console command none"`
	TTSCommand     string `mapstructure:"tts_command"`
	STTCommand     string `mapstructure:"stt_command"`
	WordsPerMinute int    `mapstructure:"words_per_minute" validate:"gte=0"`
}

// Speech converts the settings into a speech.Config without I/O streams.
func (c SpeechConfig) Speech() speech.Config {
	return speech.Config{
		Mode:           c.Mode,
		TTSCommand:     c.TTSCommand,
		STTCommand:     c.STTCommand,
		WordsPerMinute: c.WordsPerMinute,
	}
}

type StoreConfig struct {
	Driver   string         `mapstructure:"driver" validate:"oneof=memory file redis postgres"`
	Path     string         `mapstructure:"path"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Postgres PostgresConfig `mapstructure:"postgres"`

	Encryption EncryptionConfig `mapstructure:"encryption"`
}

// EncryptionConfig holds base64 AES-256 keys for candidate fields at rest.
// An empty Key stores them in plain text.
type EncryptionConfig struct {
	Key          string   `mapstructure:"key" validate:"omitempty,base64"`
	FallbackKeys []string `mapstructure:"fallback_keys" validate:"dive,base64"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
	Prefix   string `mapstructure:"prefix"`
}

type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
	File   string `mapstructure:"file"`
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

type SentryConfig struct {
	DSN         string `mapstructure:"dsn" validate:"omitempty,url"`
	Environment string `mapstructure:"environment"`
}
