package secrets

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/kevin07696/ufc-gateway/internal/adapters/ports"
	"go.uber.org/zap"
)

// AWSConfig selects the region and credentials used for AWS Secrets Manager
type AWSConfig struct {
	Region   string
	Profile  string        // Shared config profile for local runs; IAM role otherwise
	Endpoint string        // Custom endpoint, e.g. LocalStack
	CacheTTL time.Duration // Zero disables caching
}

// secretsManagerAPI is the subset of the Secrets Manager client the adapter uses
type secretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

type awsSecretsManager struct {
	client secretsManagerAPI
	cache  *Cache
	logger *zap.Logger
}

// NewAWSSecretsManager creates an adapter reading merchant credentials from AWS Secrets Manager
func NewAWSSecretsManager(ctx context.Context, cfg AWSConfig, logger *zap.Logger) (ports.SecretManagerAdapter, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := secretsmanager.NewFromConfig(awsCfg, func(o *secretsmanager.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	logger.Info("AWS Secrets Manager adapter initialized",
		zap.String("region", cfg.Region),
		zap.Duration("cache_ttl", cfg.CacheTTL),
	)
	return newAWSSecretsManager(client, cfg.CacheTTL, logger), nil
}

func newAWSSecretsManager(client secretsManagerAPI, ttl time.Duration, logger *zap.Logger) *awsSecretsManager {
	return &awsSecretsManager{
		client: client,
		cache:  NewCache(ttl),
		logger: logger,
	}
}

// GetSecret reads a secret by name or ARN. Binary secrets (PKCS#12 bundles)
// are returned as their raw bytes.
func (a *awsSecretsManager) GetSecret(ctx context.Context, path string) (*ports.Secret, error) {
	if cached := a.cache.Get(path); cached != nil {
		return cached, nil
	}

	out, err := a.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(path),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get secret %s: %w", path, err)
	}

	value := aws.ToString(out.SecretString)
	if out.SecretString == nil {
		value = string(out.SecretBinary)
	}
	if value == "" {
		return nil, fmt.Errorf("secret %s has no value", path)
	}

	secret := &ports.Secret{Value: value, Version: aws.ToString(out.VersionId)}
	a.cache.Set(path, secret)

	a.logger.Debug("Fetched secret from AWS Secrets Manager",
		zap.String("path", path),
		zap.String("version", secret.Version),
	)
	return secret, nil
}
