package config

import (
	"testing"
	"time"
)

func TestLoad_RateLimitDefaults(t *testing.T) {
	cfg := Load()

	if cfg.RateLimits.Vote.Max != 10 || cfg.RateLimits.Vote.Window != time.Minute {
		t.Errorf("vote limit = %d/%s, want 10/1m", cfg.RateLimits.Vote.Max, cfg.RateLimits.Vote.Window)
	}
	if cfg.RateLimits.API.Max != 100 || cfg.RateLimits.API.Window != 15*time.Minute {
		t.Errorf("api limit = %d/%s, want 100/15m", cfg.RateLimits.API.Max, cfg.RateLimits.API.Window)
	}
	if cfg.RateLimits.Auth.Window != 15*time.Minute {
		t.Errorf("auth window = %s, want 15m", cfg.RateLimits.Auth.Window)
	}
	if cfg.RateLimits.SMS.Window != 15*time.Minute {
		t.Errorf("sms window = %s, want 15m", cfg.RateLimits.SMS.Window)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("RATE_LIMIT_VOTE_MAX", "25")
	t.Setenv("RATE_LIMIT_VOTE_WINDOW", "30s")
	t.Setenv("VOTING_ROUND", "finale")

	cfg := Load()

	if cfg.RateLimits.Vote.Max != 25 {
		t.Errorf("vote max = %d, want 25", cfg.RateLimits.Vote.Max)
	}
	if cfg.RateLimits.Vote.Window != 30*time.Second {
		t.Errorf("vote window = %s, want 30s", cfg.RateLimits.Vote.Window)
	}
	if cfg.VotingRound != "finale" {
		t.Errorf("voting round = %q, want finale", cfg.VotingRound)
	}
}
