package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kevin07696/ufc-gateway/internal/adapters/ports"
	"go.uber.org/zap"
)

// localSecretManager implements SecretManagerAdapter using local filesystem
// WARNING: This is for development only. Use AWS Secrets Manager, Vault or GCP in production.
type localSecretManager struct {
	basePath string
	logger   *zap.Logger
}

// NewLocalSecretManager creates a new local filesystem secret manager
func NewLocalSecretManager(basePath string, logger *zap.Logger) ports.SecretManagerAdapter {
	return &localSecretManager{
		basePath: basePath,
		logger:   logger,
	}
}

// GetSecret retrieves a secret from the local filesystem.
// A file is either the raw value (PEM, PKCS#12, passphrase) or a JSON
// envelope {"value": "...", "encoding": "base64"}.
func (m *localSecretManager) GetSecret(ctx context.Context, secretPath string) (*ports.Secret, error) {
	filePath := filepath.Join(m.basePath, filepath.Clean("/"+secretPath))

	m.logger.Debug("Reading secret from filesystem",
		zap.String("path", secretPath),
	)

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("secret not found: %s", secretPath)
		}
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}

	// Support both plain text and JSON format
	if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		var envelope struct {
			Value    string `json:"value"`
			Encoding string `json:"encoding"`
		}
		if err := json.Unmarshal(data, &envelope); err == nil && envelope.Value != "" {
			value, err := decodeValue(envelope.Value, envelope.Encoding)
			if err != nil {
				return nil, fmt.Errorf("secret %s: %w", secretPath, err)
			}
			return &ports.Secret{Value: value}, nil
		}
	}

	return &ports.Secret{Value: string(data)}, nil
}
