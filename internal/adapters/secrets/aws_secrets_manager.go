package secrets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	secretsmanagertypes "github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/kevin07696/settlement-ledger/internal/adapters/ports"
	"go.uber.org/zap"
)

// AWSSecretsManagerConfig contains configuration for the AWS Secrets Manager adapter
type AWSSecretsManagerConfig struct {
	Region string
	// Optional custom endpoint (LocalStack)
	Endpoint string
	// Zero disables caching
	CacheTTL time.Duration
}

// secretsManagerAPI is the subset of *secretsmanager.Client the adapter calls
type secretsManagerAPI interface {
	GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
	PutSecretValue(ctx context.Context, in *secretsmanager.PutSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.PutSecretValueOutput, error)
	CreateSecret(ctx context.Context, in *secretsmanager.CreateSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.CreateSecretOutput, error)
}

type awsSecretsManagerAdapter struct {
	client secretsManagerAPI
	logger *zap.Logger
	cache  *secretCache
}

// NewAWSSecretsManagerAdapter uses the default credential chain (IAM role in production)
func NewAWSSecretsManagerAdapter(ctx context.Context, cfg AWSSecretsManagerConfig, logger *zap.Logger) (ports.SecretManagerAdapter, error) {
	awsConfig, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var clientOptions []func(*secretsmanager.Options)
	if cfg.Endpoint != "" {
		clientOptions = append(clientOptions, func(o *secretsmanager.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	logger.Info("AWS Secrets Manager adapter initialized",
		zap.String("region", cfg.Region),
		zap.Duration("cache_ttl", cfg.CacheTTL),
	)
	return newAWSAdapter(secretsmanager.NewFromConfig(awsConfig, clientOptions...), cfg.CacheTTL, logger), nil
}

func newAWSAdapter(client secretsManagerAPI, ttl time.Duration, logger *zap.Logger) *awsSecretsManagerAdapter {
	return &awsSecretsManagerAdapter{client: client, logger: logger, cache: newSecretCache(ttl)}
}

// GetSecret retrieves a secret by name or ARN
func (a *awsSecretsManagerAdapter) GetSecret(ctx context.Context, path string) (*ports.Secret, error) {
	if cached := a.cache.get(path); cached != nil {
		a.logger.Debug("Secret retrieved from cache", zap.String("path", path))
		return cached, nil
	}

	result, err := a.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(path),
	})
	if err != nil {
		var notFound *secretsmanagertypes.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %s", ports.ErrSecretNotFound, path)
		}
		a.logger.Error("Failed to retrieve secret", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("failed to get secret %s: %w", path, err)
	}

	secret := &ports.Secret{
		Value:    aws.ToString(result.SecretString),
		Version:  aws.ToString(result.VersionId),
		Metadata: make(map[string]string),
	}
	if result.CreatedDate != nil {
		secret.CreatedAt = result.CreatedDate.Format(time.RFC3339)
	}
	if result.ARN != nil {
		secret.Metadata["arn"] = *result.ARN
	}

	a.cache.set(path, secret)
	return secret, nil
}

// PutSecret writes a new version, creating the secret on first use
func (a *awsSecretsManagerAdapter) PutSecret(ctx context.Context, path string, value string, metadata map[string]string) (string, error) {
	defer a.cache.invalidate(path)

	result, err := a.client.PutSecretValue(ctx, &secretsmanager.PutSecretValueInput{
		SecretId:     aws.String(path),
		SecretString: aws.String(value),
	})
	if err == nil {
		a.logger.Info("Secret updated", zap.String("path", path), zap.String("version", aws.ToString(result.VersionId)))
		return aws.ToString(result.VersionId), nil
	}

	var notFound *secretsmanagertypes.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return "", fmt.Errorf("failed to put secret %s: %w", path, err)
	}

	input := &secretsmanager.CreateSecretInput{
		Name:         aws.String(path),
		SecretString: aws.String(value),
		Description:  aws.String("Settlement ledger operational secret"),
	}
	for key, val := range metadata {
		input.Tags = append(input.Tags, secretsmanagertypes.Tag{Key: aws.String(key), Value: aws.String(val)})
	}
	created, err := a.client.CreateSecret(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to create secret %s: %w", path, err)
	}
	a.logger.Info("Secret created", zap.String("path", path), zap.String("version", aws.ToString(created.VersionId)))
	return aws.ToString(created.VersionId), nil
}
