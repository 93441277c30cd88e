package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		Port:              "8080",
		UserAgent:         "Test Agent",
		WorkerCount:       2,
		SchedulerInterval: 6,
		MaxItemAgeHours:   120,
		MinQualityScore:   50,
		FetchTimeout:      15,
		FetchRetries:      2,
		APIAccessKey:      "test-key",
		DBHost:            "localhost",
		DBPort:            "5432",
		Timezone:          "UTC",
		Debug:             true,
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.MaxItemAgeHours != 120 {
		t.Errorf("Expected max item age 120, got %d", cfg.MaxItemAgeHours)
	}
	if cfg.MinQualityScore != 50 {
		t.Errorf("Expected min quality score 50, got %d", cfg.MinQualityScore)
	}
	if cfg.SchedulerInterval != 6 {
		t.Errorf("Expected scheduler interval 6, got %d", cfg.SchedulerInterval)
	}
	if cfg.FetchRetries != 2 {
		t.Errorf("Expected fetch retries 2, got %d", cfg.FetchRetries)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
}

func TestApplyTimezone(t *testing.T) {
	if err := applyTimezone("UTC"); err != nil {
		t.Errorf("Expected UTC to be a valid timezone, got error: %v", err)
	}
	if err := applyTimezone("Not/AZone"); err == nil {
		t.Error("Expected error for invalid timezone")
	}
}
