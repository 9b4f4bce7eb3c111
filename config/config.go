package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the settings sgrep reads from the environment, layered
// under whatever flags cmd/sgrep parses on top.
type Config struct {
	// LibSQLAuthToken authenticates a remote libsql DSN for the staging
	// database (SGREP_LIBSQL_AUTH_TOKEN).
	LibSQLAuthToken string
	// DefaultDB is the DSN of the staging database (SGREP_STAGE_DB,
	// defaults to a local sqlite file).
	DefaultDB string
	// Parallelism overrides orchestrate.Config.Parallelism when set
	// (SGREP_PARALLELISM).
	Parallelism int
	// StageTTLHours controls how long a staged edit stays applicable
	// before it expires (SGREP_STAGE_TTL_HOURS).
	StageTTLHours int
}

// Load reads a .env file in the current directory, if present, then
// layers SGREP_* environment variables on top of the defaults below.
// A missing .env file is not an error — it's the common case outside a
// developer's machine.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		LibSQLAuthToken: os.Getenv("SGREP_LIBSQL_AUTH_TOKEN"),
		DefaultDB:       os.Getenv("SGREP_STAGE_DB"),
		Parallelism:     0,
		StageTTLHours:   24,
	}

	if cfg.DefaultDB == "" {
		cfg.DefaultDB = ".sgrep/stage.db"
	}

	if v := os.Getenv("SGREP_PARALLELISM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Parallelism = n
		}
	}

	if v := os.Getenv("SGREP_STAGE_TTL_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.StageTTLHours = n
		}
	}

	return cfg
}
