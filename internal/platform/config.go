package platform

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tvault-go/tvault/pkg/adapters/truevault"
)

// Environment variables overriding the config file.
const (
	EnvAPIKey           = "TVAULT_API_KEY"
	EnvVaultID          = "TVAULT_VAULT_ID"
	EnvDocumentSchemaID = "TVAULT_DOCUMENT_SCHEMA_ID"
	EnvSessionSchemaID  = "TVAULT_SESSION_SCHEMA_ID"
	EnvBaseURL          = "TVAULT_BASE_URL"
)

// Config is the on-disk and environment configuration of a vault connection.
type Config struct {
	Adapter          string        `yaml:"adapter,omitempty"`
	APIKey           string        `yaml:"api_key"`
	VaultID          string        `yaml:"vault_id"`
	DocumentSchemaID string        `yaml:"document_schema_id"`
	SessionSchemaID  string        `yaml:"session_schema_id,omitempty"`
	BaseURL          string        `yaml:"base_url,omitempty"`
	Timeout          time.Duration `yaml:"timeout,omitempty"`

	// CollectionSchemaID is the legacy name of DocumentSchemaID.
	CollectionSchemaID string `yaml:"collection_schema_id,omitempty"`
}

// TrueVault converts the config into the adapter's credentials.
func (c Config) TrueVault() truevault.Config {
	return truevault.Config{
		APIKey:           c.APIKey,
		VaultID:          c.VaultID,
		DocumentSchemaID: c.DocumentSchemaID,
		SessionSchemaID:  c.SessionSchemaID,
	}
}

// LoadConfig reads a YAML config file and applies environment overrides.
// An empty path skips the file and uses the environment only.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()

		cfg, err = DecodeConfig(f)
		if err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

// DecodeConfig parses YAML config. Unknown keys are rejected.
func DecodeConfig(r io.Reader) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	cfg.normalize()
	return cfg, nil
}

// ApplyEnv overrides fields with the TVAULT_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	for env, field := range map[string]*string{
		EnvAPIKey:           &c.APIKey,
		EnvVaultID:          &c.VaultID,
		EnvDocumentSchemaID: &c.DocumentSchemaID,
		EnvSessionSchemaID:  &c.SessionSchemaID,
		EnvBaseURL:          &c.BaseURL,
	} {
		if v, ok := lookup(env); ok && v != "" {
			*field = v
		}
	}
}

func (c *Config) normalize() {
	if c.DocumentSchemaID == "" {
		c.DocumentSchemaID = c.CollectionSchemaID
	}
	c.CollectionSchemaID = ""
}
