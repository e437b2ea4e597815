package folio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultLedgerFile is the ledger location used when no configuration says
// otherwise.
const DefaultLedgerFile = "folio.json"

// Config carries the settings shared by the CLI and the server. All fields
// are optional, missing values fall back to defaults.
type Config struct {
	// LedgerFile is the path of the ledger state file.
	LedgerFile string `yaml:"ledger_file"`
	// CredentialsFile holds the encrypted provider credentials.
	CredentialsFile string `yaml:"credentials_file"`
	// Listen is the server bind address, host:port.
	Listen string `yaml:"listen"`
	Market struct {
		// BaseURL overrides the provider endpoint, useful for testing.
		BaseURL string `yaml:"base_url"`
		Feed    string `yaml:"feed"`
	} `yaml:"market"`
}

func (c *Config) Validate() error {
	if c.LedgerFile == "" {
		return errors.New("ledger_file cannot be empty")
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	c := &Config{
		LedgerFile:      DefaultLedgerFile,
		CredentialsFile: ".folio-credentials",
		Listen:          ":8087",
	}
	c.Market.BaseURL = DefaultAlpacaBaseURL
	c.Market.Feed = DefaultAlpacaFeed
	return c
}

// LoadConfig reads the YAML configuration at path. A missing file yields the
// defaults, a present but invalid file is an error.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return c, nil
}
