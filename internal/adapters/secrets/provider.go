package secrets

import (
	"context"
	"fmt"

	"github.com/kevin07696/settlement-ledger/internal/adapters/ports"
	"github.com/kevin07696/settlement-ledger/internal/config"
	"go.uber.org/zap"
)

// NewFromConfig builds the configured secret manager.
// The "env" provider returns nil: every secret is read from the environment.
func NewFromConfig(ctx context.Context, cfg config.SecretsConfig, logger *zap.Logger) (ports.SecretManagerAdapter, error) {
	switch cfg.Provider {
	case "", "env":
		return nil, nil
	case "aws":
		return NewAWSSecretsManagerAdapter(ctx, AWSSecretsManagerConfig{
			Region:   cfg.AWSRegion,
			Endpoint: cfg.AWSEndpoint,
			CacheTTL: cfg.CacheTTL,
		}, logger)
	case "vault":
		return NewVaultAdapter(ctx, VaultConfig{
			Address:   cfg.VaultAddress,
			Token:     cfg.VaultToken,
			MountPath: cfg.VaultMountPath,
			CacheTTL:  cfg.CacheTTL,
		}, logger)
	case "local":
		logger.Warn("Using local filesystem secrets - NOT for production use",
			zap.String("path", cfg.LocalPath),
		)
		return NewLocalSecretManager(cfg.LocalPath, logger), nil
	default:
		return nil, fmt.Errorf("unknown secret manager %q", cfg.Provider)
	}
}

// Resolve returns the secret at path, or fallback when no manager or path is configured
func Resolve(ctx context.Context, mgr ports.SecretManagerAdapter, path, fallback string) (string, error) {
	if mgr == nil || path == "" {
		return fallback, nil
	}
	secret, err := mgr.GetSecret(ctx, path)
	if err != nil {
		return "", err
	}
	return secret.Value, nil
}
