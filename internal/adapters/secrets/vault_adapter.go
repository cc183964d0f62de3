package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	vault "github.com/hashicorp/vault/api"
	"github.com/kevin07696/settlement-ledger/internal/adapters/ports"
	"go.uber.org/zap"
)

// VaultConfig contains configuration for the HashiCorp Vault adapter
type VaultConfig struct {
	Address string
	// token or approle
	AuthMethod string
	Token      string
	RoleID     string
	SecretID   string
	Namespace  string
	// KV v2 mount path (default "secret")
	MountPath string
	CacheTTL  time.Duration
}

// logicalAPI is the subset of *vault.Logical the adapter calls
type logicalAPI interface {
	ReadWithContext(ctx context.Context, path string) (*vault.Secret, error)
	WriteWithContext(ctx context.Context, path string, data map[string]interface{}) (*vault.Secret, error)
}

type vaultAdapter struct {
	logical   logicalAPI
	mountPath string
	logger    *zap.Logger
	cache     *secretCache
}

// NewVaultAdapter creates a KV v2 backed secret manager
func NewVaultAdapter(ctx context.Context, cfg VaultConfig, logger *zap.Logger) (ports.SecretManagerAdapter, error) {
	vaultConfig := vault.DefaultConfig()
	vaultConfig.Address = cfg.Address

	client, err := vault.NewClient(vaultConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vault client: %w", err)
	}
	if cfg.Namespace != "" {
		client.SetNamespace(cfg.Namespace)
	}
	if err := authenticateVault(ctx, client, cfg); err != nil {
		return nil, fmt.Errorf("failed to authenticate with Vault: %w", err)
	}

	if cfg.MountPath == "" {
		cfg.MountPath = "secret"
	}
	logger.Info("Vault adapter initialized",
		zap.String("address", cfg.Address),
		zap.String("auth_method", cfg.AuthMethod),
		zap.String("mount_path", cfg.MountPath),
	)
	return newVaultAdapter(client.Logical(), cfg.MountPath, cfg.CacheTTL, logger), nil
}

func newVaultAdapter(logical logicalAPI, mountPath string, ttl time.Duration, logger *zap.Logger) *vaultAdapter {
	return &vaultAdapter{logical: logical, mountPath: mountPath, logger: logger, cache: newSecretCache(ttl)}
}

func authenticateVault(ctx context.Context, client *vault.Client, cfg VaultConfig) error {
	switch cfg.AuthMethod {
	case "", "token":
		if cfg.Token == "" {
			return fmt.Errorf("token is required for token auth")
		}
		client.SetToken(cfg.Token)
		return nil
	case "approle":
		if cfg.RoleID == "" || cfg.SecretID == "" {
			return fmt.Errorf("role_id and secret_id are required for AppRole auth")
		}
		resp, err := client.Logical().WriteWithContext(ctx, "auth/approle/login", map[string]interface{}{
			"role_id":   cfg.RoleID,
			"secret_id": cfg.SecretID,
		})
		if err != nil {
			return fmt.Errorf("AppRole login failed: %w", err)
		}
		if resp == nil || resp.Auth == nil {
			return fmt.Errorf("AppRole login returned no auth info")
		}
		client.SetToken(resp.Auth.ClientToken)
		return nil
	default:
		return fmt.Errorf("unsupported auth method: %s", cfg.AuthMethod)
	}
}

// GetSecret reads the "value" key of a KV v2 secret
func (a *vaultAdapter) GetSecret(ctx context.Context, path string) (*ports.Secret, error) {
	if cached := a.cache.get(path); cached != nil {
		return cached, nil
	}

	resp, err := a.logical.ReadWithContext(ctx, fmt.Sprintf("%s/data/%s", a.mountPath, path))
	if err != nil {
		a.logger.Error("Failed to retrieve secret from Vault", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("failed to read secret from Vault: %w", err)
	}
	if resp == nil {
		return nil, fmt.Errorf("%w: %s", ports.ErrSecretNotFound, path)
	}

	secret, err := parseKVv2(resp.Data)
	if err != nil {
		return nil, fmt.Errorf("secret %s: %w", path, err)
	}
	a.cache.set(path, secret)
	return secret, nil
}

// PutSecret writes value (plus metadata keys) as a new KV v2 version
func (a *vaultAdapter) PutSecret(ctx context.Context, path string, value string, metadata map[string]string) (string, error) {
	defer a.cache.invalidate(path)

	data := map[string]interface{}{"value": value}
	for k, v := range metadata {
		data[k] = v
	}
	resp, err := a.logical.WriteWithContext(ctx, fmt.Sprintf("%s/data/%s", a.mountPath, path), map[string]interface{}{
		"data": data,
	})
	if err != nil {
		return "", fmt.Errorf("failed to write secret: %w", err)
	}

	version := ""
	if resp != nil {
		version = versionString(resp.Data["version"])
	}
	a.logger.Info("Secret written to Vault", zap.String("path", path), zap.String("version", version))
	return version, nil
}

// parseKVv2 unwraps the data/metadata envelope of a KV v2 read
func parseKVv2(raw map[string]interface{}) (*ports.Secret, error) {
	data, ok := raw["data"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid KV v2 secret format")
	}
	value, _ := data["value"].(string)
	if value == "" {
		return nil, fmt.Errorf("secret has no \"value\" key")
	}

	secret := &ports.Secret{Value: value, Metadata: make(map[string]string)}
	for k, v := range data {
		if s, ok := v.(string); ok && k != "value" {
			secret.Metadata[k] = s
		}
	}
	if meta, ok := raw["metadata"].(map[string]interface{}); ok {
		secret.Version = versionString(meta["version"])
		secret.CreatedAt, _ = meta["created_time"].(string)
	}
	return secret, nil
}

func versionString(v interface{}) string {
	switch n := v.(type) {
	case json.Number:
		return n.String()
	case float64:
		return fmt.Sprintf("%.0f", n)
	case string:
		return n
	default:
		return ""
	}
}
