package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	vault "github.com/hashicorp/vault/api"
	"github.com/kevin07696/ufc-gateway/internal/adapters/ports"
	"go.uber.org/zap"
)

// Vault authentication methods
const (
	VaultAuthToken      = "token"
	VaultAuthAppRole    = "approle"
	VaultAuthKubernetes = "kubernetes"
)

// VaultConfig contains configuration for the HashiCorp Vault adapter
type VaultConfig struct {
	Address    string
	AuthMethod string // token, approle, kubernetes

	Token            string
	RoleID, SecretID string
	K8sRole          string
	K8sTokenPath     string

	MountPath string // KV engine mount
	KVVersion int    // 1 or 2
	CacheTTL  time.Duration
}

// DefaultVaultConfig returns token auth against a KV v2 engine mounted at "secret"
func DefaultVaultConfig(address string) VaultConfig {
	return VaultConfig{
		Address:      address,
		AuthMethod:   VaultAuthToken,
		K8sTokenPath: "/var/run/secrets/kubernetes.io/serviceaccount/token",
		MountPath:    "secret",
		KVVersion:    2,
		CacheTTL:     5 * time.Minute,
	}
}

type vaultAdapter struct {
	client    *vault.Client
	mountPath string
	kvVersion int
	cache     *Cache
	logger    *zap.Logger
}

// NewVaultAdapter creates a Vault client and logs in with the configured method
func NewVaultAdapter(ctx context.Context, cfg VaultConfig, logger *zap.Logger) (ports.SecretManagerAdapter, error) {
	vaultConfig := vault.DefaultConfig()
	vaultConfig.Address = cfg.Address

	client, err := vault.NewClient(vaultConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vault client: %w", err)
	}

	if err := authenticateVault(ctx, client, cfg); err != nil {
		return nil, fmt.Errorf("failed to authenticate with Vault: %w", err)
	}

	logger.Info("Vault adapter initialized",
		zap.String("address", cfg.Address),
		zap.String("auth_method", cfg.AuthMethod),
		zap.String("mount_path", cfg.MountPath),
		zap.Int("kv_version", cfg.KVVersion),
	)

	return &vaultAdapter{
		client:    client,
		mountPath: cfg.MountPath,
		kvVersion: cfg.KVVersion,
		cache:     NewCache(cfg.CacheTTL),
		logger:    logger,
	}, nil
}

func authenticateVault(ctx context.Context, client *vault.Client, cfg VaultConfig) error {
	switch cfg.AuthMethod {
	case VaultAuthToken:
		if cfg.Token == "" {
			return fmt.Errorf("token is required for token auth")
		}
		client.SetToken(cfg.Token)
		return nil

	case VaultAuthAppRole:
		if cfg.RoleID == "" || cfg.SecretID == "" {
			return fmt.Errorf("role_id and secret_id are required for AppRole auth")
		}
		return login(ctx, client, "auth/approle/login", map[string]interface{}{
			"role_id":   cfg.RoleID,
			"secret_id": cfg.SecretID,
		})

	case VaultAuthKubernetes:
		if cfg.K8sRole == "" {
			return fmt.Errorf("k8s_role is required for Kubernetes auth")
		}
		jwt, err := os.ReadFile(cfg.K8sTokenPath)
		if err != nil {
			return fmt.Errorf("failed to read k8s token: %w", err)
		}
		return login(ctx, client, "auth/kubernetes/login", map[string]interface{}{
			"jwt":  string(jwt),
			"role": cfg.K8sRole,
		})

	default:
		return fmt.Errorf("unsupported auth method: %s", cfg.AuthMethod)
	}
}

func login(ctx context.Context, client *vault.Client, path string, data map[string]interface{}) error {
	resp, err := client.Logical().WriteWithContext(ctx, path, data)
	if err != nil {
		return fmt.Errorf("%s failed: %w", path, err)
	}
	if resp == nil || resp.Auth == nil {
		return fmt.Errorf("%s returned no auth info", path)
	}
	client.SetToken(resp.Auth.ClientToken)
	return nil
}

// GetSecret reads the "value" key at path under the KV mount. An "encoding"
// key of "base64" marks binary content such as a PKCS#12 bundle.
func (a *vaultAdapter) GetSecret(ctx context.Context, path string) (*ports.Secret, error) {
	if cached := a.cache.Get(path); cached != nil {
		return cached, nil
	}

	fullPath := a.mountPath + "/" + path
	if a.kvVersion == 2 {
		fullPath = a.mountPath + "/data/" + path
	}

	resp, err := a.client.Logical().ReadWithContext(ctx, fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret from Vault: %w", err)
	}
	if resp == nil {
		return nil, fmt.Errorf("secret not found: %s", path)
	}

	data, version := resp.Data, "1"
	if a.kvVersion == 2 {
		inner, ok := resp.Data["data"].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("invalid secret format from Vault")
		}
		data = inner
		if metadata, ok := resp.Data["metadata"].(map[string]interface{}); ok {
			if v, ok := metadata["version"].(json.Number); ok {
				version = v.String()
			}
		}
	}

	value, _ := data["value"].(string)
	if value == "" {
		return nil, fmt.Errorf("secret %s has no value key", path)
	}
	encoding, _ := data["encoding"].(string)
	value, err = decodeValue(value, encoding)
	if err != nil {
		return nil, fmt.Errorf("secret %s: %w", path, err)
	}

	secret := &ports.Secret{Value: value, Version: version}
	a.cache.Set(path, secret)

	a.logger.Debug("Fetched secret from Vault",
		zap.String("path", path),
		zap.String("version", version),
	)
	return secret, nil
}
