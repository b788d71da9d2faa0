package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := Load()
	cfg.Member1Name = "花子"
	cfg.Member2Name = "太郎"
	cfg.StoreBackend = "memory"
	cfg.MessengerBackend = "amqp"
	return cfg
}

func TestValidateOK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateMissingHousehold(t *testing.T) {
	cfg := validConfig()
	cfg.Member2Name = ""
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "HOUSEHOLD_MEMBER2") {
		t.Fatalf("expected household error, got %v", err)
	}
}

func TestValidateSheetsNeedsSpreadsheet(t *testing.T) {
	cfg := validConfig()
	cfg.StoreBackend = "sheets"
	cfg.GoogleSpreadsheetID = ""
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "GOOGLE_SPREADSHEET_ID") {
		t.Fatalf("expected spreadsheet error, got %v", err)
	}
}

func TestValidateBadBackends(t *testing.T) {
	cfg := validConfig()
	cfg.StoreBackend = "postgres"
	cfg.MessengerBackend = "carrier-pigeon"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "store backend") || !strings.Contains(err.Error(), "messenger backend") {
		t.Fatalf("expected both backend problems aggregated, got %v", err)
	}
}

func TestValidateAMQPURL(t *testing.T) {
	cfg := validConfig()
	cfg.AMQPURL = "http://not-amqp"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "scheme") {
		t.Fatalf("expected scheme error, got %v", err)
	}
}

func TestValidateLineCredentials(t *testing.T) {
	cfg := validConfig()
	cfg.MessengerBackend = "line"
	cfg.LineChannelSecret = ""
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "LINE_CHANNEL_SECRET") {
		t.Fatalf("expected LINE credential error, got %v", err)
	}
}
