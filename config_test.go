package folio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LedgerFile != DefaultLedgerFile {
		t.Errorf("LedgerFile = %q, want %q", cfg.LedgerFile, DefaultLedgerFile)
	}
	if cfg.Market.BaseURL != DefaultAlpacaBaseURL {
		t.Errorf("Market.BaseURL = %q, want %q", cfg.Market.BaseURL, DefaultAlpacaBaseURL)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yaml")
	content := `
ledger_file: /var/lib/folio/ledger.json
listen: ":9000"
market:
  base_url: http://localhost:9999
  feed: sip
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LedgerFile != "/var/lib/folio/ledger.json" {
		t.Errorf("LedgerFile = %q", cfg.LedgerFile)
	}
	if cfg.Listen != ":9000" {
		t.Errorf("Listen = %q", cfg.Listen)
	}
	if cfg.Market.BaseURL != "http://localhost:9999" || cfg.Market.Feed != "sip" {
		t.Errorf("Market = %+v", cfg.Market)
	}
	// Unset keys keep their defaults.
	if cfg.CredentialsFile != DefaultConfig().CredentialsFile {
		t.Errorf("CredentialsFile = %q, want default", cfg.CredentialsFile)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not yaml", ":\n:::bad"},
		{"empty ledger file", `ledger_file: ""`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "folio.yaml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Error("LoadConfig() = nil, want error")
			}
		})
	}
}
