package config_test

import (
	"testing"

	"github.com/mdelaunay/shiftsync/internal/config"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("SILAE_USERNAME", "alice")
	t.Setenv("SILAE_PASSWORD", "s3cret")
	t.Setenv("SILAE_EMPLOYEE_ID", "42")
	t.Setenv("GOOGLE_CALENDAR_ID", "shifts@group.calendar.google.com")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Portal.BaseURL == "" {
		t.Error("BaseURL default missing")
	}
	if cfg.Timezone != "Europe/Paris" {
		t.Errorf("Timezone = %q, want Europe/Paris", cfg.Timezone)
	}
	if cfg.Location == nil || cfg.Location.String() != "Europe/Paris" {
		t.Errorf("Location = %v, want resolved Europe/Paris", cfg.Location)
	}
	if cfg.Portal.EmployeeID != "42" {
		t.Errorf("EmployeeID = %q, want 42", cfg.Portal.EmployeeID)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("SILAE_USERNAME", "")

	if _, err := config.Load(); err == nil {
		t.Fatal("Load succeeded without SILAE_USERNAME")
	}
}

func TestLoad_InvalidTimezone(t *testing.T) {
	setRequired(t)
	t.Setenv("TIMEZONE", "Mars/Olympus")

	if _, err := config.Load(); err == nil {
		t.Fatal("Load accepted an unknown timezone")
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	setRequired(t)
	t.Setenv("LOG_LEVEL", "shouty")

	if _, err := config.Load(); err == nil {
		t.Fatal("Load accepted an unknown log level")
	}
}
