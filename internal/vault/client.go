package vault

import (
	"context"
	"fmt"

	"github.com/hashicorp/vault/api"

	"awardflow/internal/config"
)

// Client wraps the HashiCorp Vault API for KV secret retrieval
type Client struct {
	client     *api.Client
	kvMount    string
	secretPath string
}

// NewClient creates a new Vault client
func NewClient(cfg *config.VaultConfig) (*Client, error) {
	apiConfig := api.DefaultConfig()
	apiConfig.Address = cfg.Address

	client, err := api.NewClient(apiConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}

	client.SetToken(cfg.Token)

	return &Client{
		client:     client,
		kvMount:    cfg.KVMount,
		secretPath: cfg.SecretPath,
	}, nil
}

// LoadSecrets reads the application secrets from the KV v2 mount.
// Non-string values are skipped.
func (c *Client) LoadSecrets(ctx context.Context) (map[string]string, error) {
	secret, err := c.client.KVv2(c.kvMount).Get(ctx, c.secretPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret %s/%s: %w", c.kvMount, c.secretPath, err)
	}

	secrets := make(map[string]string, len(secret.Data))
	for key, value := range secret.Data {
		if str, ok := value.(string); ok {
			secrets[key] = str
		}
	}

	return secrets, nil
}

// StoreSecrets writes application secrets to the KV v2 mount. Used by
// provisioning scripts and tests.
func (c *Client) StoreSecrets(ctx context.Context, secrets map[string]string) error {
	data := make(map[string]interface{}, len(secrets))
	for key, value := range secrets {
		data[key] = value
	}

	if _, err := c.client.KVv2(c.kvMount).Put(ctx, c.secretPath, data); err != nil {
		return fmt.Errorf("failed to write secret %s/%s: %w", c.kvMount, c.secretPath, err)
	}

	return nil
}

// HealthCheck verifies the Vault connection
func (c *Client) HealthCheck(ctx context.Context) error {
	health, err := c.client.Sys().HealthWithContext(ctx)
	if err != nil {
		return fmt.Errorf("vault health check failed: %w", err)
	}
	if !health.Initialized || health.Sealed {
		return fmt.Errorf("vault is not ready (initialized=%v, sealed=%v)", health.Initialized, health.Sealed)
	}
	return nil
}
