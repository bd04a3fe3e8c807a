package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{Token: "token"},
		Venues:   []string{"Центр"},
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := validConfig()
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Fatalf("run_mode = %q, expected longpoll", cfg.Telegram.RunMode)
	}
	if cfg.Storage.UsersFile != defaultUsersFile {
		t.Fatalf("users_file = %q", cfg.Storage.UsersFile)
	}
	if cfg.Storage.ExportFile != defaultExportFile {
		t.Fatalf("export_file = %q", cfg.Storage.ExportFile)
	}
	if cfg.Media.MaxSide != defaultMediaSide {
		t.Fatalf("max_side = %d", cfg.Media.MaxSide)
	}
	if cfg.Broadcast.Workers != defaultFanoutWorkers {
		t.Fatalf("workers = %d", cfg.Broadcast.Workers)
	}
}

func TestNormalizeRequiresToken(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.Token = ""
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestNormalizeRequiresVenues(t *testing.T) {
	cfg := validConfig()
	cfg.Venues = []string{"  ", ""}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for empty venues")
	}
}

func TestNormalizeTrimsVenues(t *testing.T) {
	cfg := validConfig()
	cfg.Venues = []string{" Центр ", "", "Север"}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(cfg.Venues) != 2 || cfg.Venues[0] != "Центр" || cfg.Venues[1] != "Север" {
		t.Fatalf("venues = %v", cfg.Venues)
	}
}

func TestNormalizeRunModeAlias(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "Polling"
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Fatalf("run_mode = %q", cfg.Telegram.RunMode)
	}
}

func TestNormalizeWebhookRequiresEndpoint(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = RunModeWebhook
	err := Normalize(cfg)
	if err == nil || !strings.Contains(err.Error(), "webhook.url") {
		t.Fatalf("expected webhook.url error, got %v", err)
	}
}

func TestNormalizeRejectsUnknownExclusion(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.ExcludeUpdates = []string{"inline_query"}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for unknown exclusion")
	}
}
