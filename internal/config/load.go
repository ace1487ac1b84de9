package config

import (
	"errors"
	"fmt"
	"strings"

	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SCREENER_STORE_DRIVER.
const EnvPrefix = "SCREENER"

// New returns a viper instance carrying the defaults and environment
// bindings. Callers may bind flags to it before Load.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("job.title", "Software Developer")
	v.SetDefault("job.company", "Tech Corp")

	v.SetDefault("agent.listen_delay", "500ms")
	v.SetDefault("agent.retry.max_attempts", 5)
	v.SetDefault("agent.retry.initial_delay", "1s")
	v.SetDefault("agent.retry.max_delay", "8s")
	v.SetDefault("agent.retry.multiplier", 2.0)

	v.SetDefault("speech.mode", "auto")
	v.SetDefault("speech.tts_command", "")
	v.SetDefault("speech.stt_command", "")
	v.SetDefault("speech.words_per_minute", 0)

	v.SetDefault("store.driver", "file")
	v.SetDefault("store.path", ".screener/records.json")
	v.SetDefault("store.redis.addr", "localhost:6379")
	v.SetDefault("store.redis.password", "")
	v.SetDefault("store.redis.db", 0)
	v.SetDefault("store.redis.prefix", "screener:")
	v.SetDefault("store.postgres.dsn", "")
	v.SetDefault("store.encryption.key", "")
	v.SetDefault("store.encryption.fallback_keys", []string{})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	v.SetDefault("metrics.addr", "")

	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "development")
}

// Load reads .env files, the config file and the environment into a
// validated Config. An empty path looks for screener.yaml in the working
// directory and is fine without one.
func Load(v *viper.Viper, path string) (*Config, error) {
	for _, f := range []string{".env.local", ".env"} {
		// Missing env files are fine.
		_ = godotenv.Load(f)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("screener")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and driver-specific requirements.
func Validate(cfg *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	switch cfg.Store.Driver {
	case "file":
		if cfg.Store.Path == "" {
			return errors.New("validate config: store.path is required for the file driver")
		}
	case "redis":
		if cfg.Store.Redis.Addr == "" {
			return errors.New("validate config: store.redis.addr is required for the redis driver")
		}
	case "postgres":
		if cfg.Store.Postgres.DSN == "" {
			return errors.New("validate config: store.postgres.dsn is required for the postgres driver")
		}
	}
	return nil
}
