package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kevin07696/settlement-ledger/internal/adapters/ports"
	"go.uber.org/zap"
)

// localSecretManager reads secrets from files under basePath.
// Development only; use AWS Secrets Manager or Vault in production.
type localSecretManager struct {
	basePath string
	logger   *zap.Logger
}

type localSecretFile struct {
	Value     string            `json:"value"`
	Tags      map[string]string `json:"tags,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

func NewLocalSecretManager(basePath string, logger *zap.Logger) ports.SecretManagerAdapter {
	return &localSecretManager{basePath: basePath, logger: logger}
}

func (m *localSecretManager) resolve(secretPath string) (string, error) {
	full := filepath.Join(m.basePath, secretPath)
	rel, err := filepath.Rel(m.basePath, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("secret path escapes base directory: %s", secretPath)
	}
	return full, nil
}

// GetSecret accepts either a JSON document with a "value" key or plain text
func (m *localSecretManager) GetSecret(ctx context.Context, secretPath string) (*ports.Secret, error) {
	filePath, err := m.resolve(secretPath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ports.ErrSecretNotFound, secretPath)
		}
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}

	var file localSecretFile
	if err := json.Unmarshal(data, &file); err == nil && file.Value != "" {
		secret := &ports.Secret{Value: file.Value, Version: "v1", Metadata: file.Tags}
		if !file.CreatedAt.IsZero() {
			secret.CreatedAt = file.CreatedAt.Format(time.RFC3339)
		}
		return secret, nil
	}
	return &ports.Secret{Value: strings.TrimSpace(string(data)), Version: "v1"}, nil
}

// PutSecret stores the secret as JSON with mode 0600
func (m *localSecretManager) PutSecret(ctx context.Context, secretPath, value string, tags map[string]string) (string, error) {
	filePath, err := m.resolve(secretPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0700); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(localSecretFile{Value: value, Tags: tags, CreatedAt: time.Now().UTC()}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal secret: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write secret: %w", err)
	}

	m.logger.Info("Stored secret on local filesystem", zap.String("path", secretPath))
	return "v1", nil
}
