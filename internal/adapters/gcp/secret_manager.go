package gcp

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"github.com/kevin07696/ufc-gateway/internal/adapters/ports"
	"github.com/kevin07696/ufc-gateway/internal/adapters/secrets"
	"go.uber.org/zap"
)

// secretAccessor is the subset of the Secret Manager client the adapter uses
type secretAccessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
	Close() error
}

// SecretManager implements ports.SecretManagerAdapter for Google Cloud Secret Manager
type SecretManager struct {
	client    secretAccessor
	projectID string
	cache     *secrets.Cache
	logger    *zap.Logger
}

// NewSecretManager creates a Secret Manager client for projectID.
// Credentials come from the application default chain
// (GOOGLE_APPLICATION_CREDENTIALS or workload identity).
func NewSecretManager(ctx context.Context, projectID string, cacheTTL time.Duration, logger *zap.Logger) (*SecretManager, error) {
	if projectID == "" {
		return nil, fmt.Errorf("GCP project ID is required")
	}

	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCP Secret Manager client: %w", err)
	}

	logger.Info("GCP Secret Manager initialized",
		zap.String("project_id", projectID),
		zap.Duration("cache_ttl", cacheTTL),
	)
	return newSecretManager(client, projectID, cacheTTL, logger), nil
}

func newSecretManager(client secretAccessor, projectID string, cacheTTL time.Duration, logger *zap.Logger) *SecretManager {
	return &SecretManager{
		client:    client,
		projectID: projectID,
		cache:     secrets.NewCache(cacheTTL),
		logger:    logger,
	}
}

// Close closes the GCP Secret Manager client
func (sm *SecretManager) Close() error {
	return sm.client.Close()
}

// GetSecret reads the secret version named by path ("name", "name@version" or
// a full resource name)
func (sm *SecretManager) GetSecret(ctx context.Context, secretPath string) (*ports.Secret, error) {
	if cached := sm.cache.Get(secretPath); cached != nil {
		return cached, nil
	}

	name := sm.versionName(secretPath)
	result, err := sm.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return nil, fmt.Errorf("failed to access GCP secret %s: %w", secretPath, err)
	}
	if result.GetPayload() == nil {
		return nil, fmt.Errorf("GCP secret %s has no payload", secretPath)
	}

	secret := &ports.Secret{Value: string(result.GetPayload().GetData())}
	if n := result.GetName(); n != "" {
		secret.Version = path.Base(n)
	}
	sm.cache.Set(secretPath, secret)

	sm.logger.Debug("Fetched secret from GCP",
		zap.String("secret_name", name),
		zap.String("version", secret.Version),
	)
	return secret, nil
}

// versionName maps a secret path to a version resource name. Full resource
// names pass through; secret IDs cannot contain slashes so they become dashes.
func (sm *SecretManager) versionName(secretPath string) string {
	if strings.HasPrefix(secretPath, "projects/") {
		if strings.Contains(secretPath, "/versions/") {
			return secretPath
		}
		return secretPath + "/versions/latest"
	}

	version := "latest"
	if name, v, ok := strings.Cut(secretPath, "@"); ok && v != "" {
		secretPath, version = name, v
	}
	secretID := strings.ReplaceAll(strings.Trim(secretPath, "/"), "/", "-")
	return fmt.Sprintf("projects/%s/secrets/%s/versions/%s", sm.projectID, secretID, version)
}
