package ports

import (
	"context"
	"errors"
)

// ErrSecretNotFound is returned when a path holds no secret
var ErrSecretNotFound = errors.New("secret not found")

// Secret represents a retrieved secret with metadata
type Secret struct {
	Value     string
	Version   string
	Metadata  map[string]string
	CreatedAt string
}

// SecretManagerAdapter retrieves and stores the ledger's operational secrets
// (database password, cron shared secret).
// Backends: AWS Secrets Manager, HashiCorp Vault, local filesystem.
type SecretManagerAdapter interface {
	// GetSecret retrieves the latest version of a secret.
	// Path format depends on the backend:
	//   - AWS: "settlement-ledger/db-password" or a full ARN
	//   - Vault: "settlement-ledger/db-password" under the configured KV mount
	//   - Local: a file path relative to the base directory
	GetSecret(ctx context.Context, path string) (*Secret, error)

	// PutSecret creates or updates a secret and returns the new version
	PutSecret(ctx context.Context, path string, value string, metadata map[string]string) (version string, err error)
}
