package vault

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcvault "github.com/testcontainers/testcontainers-go/modules/vault"
	"github.com/testcontainers/testcontainers-go/wait"

	"awardflow/internal/config"
)

func setupVault(t *testing.T) *Client {
	t.Helper()
	ctx := context.Background()

	container, err := tcvault.Run(ctx,
		"hashicorp/vault:1.15",
		tcvault.WithToken("test-token"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("Vault server started!").
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start Vault container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Errorf("Failed to terminate Vault container: %v", err)
		}
	})

	addr, err := container.HttpHostAddress(ctx)
	if err != nil {
		t.Fatalf("Failed to get Vault address: %v", err)
	}

	client, err := NewClient(&config.VaultConfig{
		Address:    "http://" + addr,
		Token:      "test-token",
		KVMount:    "secret",
		SecretPath: "awardflow/api",
		Enabled:    true,
	})
	if err != nil {
		t.Fatalf("Failed to create vault client: %v", err)
	}

	return client
}

func TestSecretRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	client := setupVault(t)
	ctx := context.Background()

	if err := client.HealthCheck(ctx); err != nil {
		t.Fatalf("HealthCheck failed: %v", err)
	}

	want := map[string]string{
		"jwt_secret":  "super-secret-signing-key",
		"db_password": "pg-password",
	}
	if err := client.StoreSecrets(ctx, want); err != nil {
		t.Fatalf("StoreSecrets failed: %v", err)
	}

	got, err := client.LoadSecrets(ctx)
	if err != nil {
		t.Fatalf("LoadSecrets failed: %v", err)
	}

	for key, value := range want {
		if got[key] != value {
			t.Errorf("secret %q = %q, want %q", key, got[key], value)
		}
	}
}

func TestApplySecrets(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = ""
	cfg.Database.Password = "from-env"

	cfg.ApplySecrets(map[string]string{
		"jwt_secret":  "from-vault",
		"db_password": "",
	})

	if cfg.JWT.Secret != "from-vault" {
		t.Errorf("JWT secret = %q, want %q", cfg.JWT.Secret, "from-vault")
	}
	// Empty values must not overwrite existing config
	if cfg.Database.Password != "from-env" {
		t.Errorf("DB password = %q, want %q", cfg.Database.Password, "from-env")
	}
}
