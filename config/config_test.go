package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SGREP_STAGE_DB", "")
	t.Setenv("SGREP_PARALLELISM", "")
	t.Setenv("SGREP_STAGE_TTL_HOURS", "")

	cfg := Load()
	if cfg.DefaultDB != ".sgrep/stage.db" {
		t.Errorf("expected default stage db path, got %q", cfg.DefaultDB)
	}
	if cfg.StageTTLHours != 24 {
		t.Errorf("expected default TTL of 24h, got %d", cfg.StageTTLHours)
	}
}

func TestLoadOverridesFromEnv(t *testing.T) {
	t.Setenv("SGREP_STAGE_DB", "custom.db")
	t.Setenv("SGREP_PARALLELISM", "8")
	t.Setenv("SGREP_STAGE_TTL_HOURS", "2")

	cfg := Load()
	if cfg.DefaultDB != "custom.db" {
		t.Errorf("expected custom.db, got %q", cfg.DefaultDB)
	}
	if cfg.Parallelism != 8 {
		t.Errorf("expected parallelism 8, got %d", cfg.Parallelism)
	}
	if cfg.StageTTLHours != 2 {
		t.Errorf("expected TTL 2, got %d", cfg.StageTTLHours)
	}
}
