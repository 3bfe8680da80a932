package truevault

import (
	"github.com/aretw0/introspection"
)

// ClientState exposes internal state for observability.
type ClientState struct {
	BaseURL          string `json:"base_url"`
	VaultID          string `json:"vault_id"`
	DocumentSchemaID string `json:"document_schema_id"`
	SessionSchemaID  string `json:"session_schema_id,omitempty"`
	BatchSize        int    `json:"batch_size"`
	Requests         int64  `json:"requests"`
}

// State implements introspection.Introspectable. The API key is never exposed.
func (c *Client) State() any {
	return ClientState{
		BaseURL:          c.baseURL,
		VaultID:          c.cfg.VaultID,
		DocumentSchemaID: c.cfg.DocumentSchemaID,
		SessionSchemaID:  c.cfg.SessionSchemaID,
		BatchSize:        c.batchSize,
		Requests:         c.requests.Load(),
	}
}

// ComponentType implements introspection.Component.
func (c *Client) ComponentType() string {
	return "truevault"
}

var _ introspection.Introspectable = (*Client)(nil)
var _ introspection.Component = (*Client)(nil)
