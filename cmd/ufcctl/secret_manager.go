package main

import (
	"context"
	"fmt"
	"time"

	"github.com/kevin07696/ufc-gateway/internal/adapters/gcp"
	"github.com/kevin07696/ufc-gateway/internal/adapters/ports"
	"github.com/kevin07696/ufc-gateway/internal/adapters/secrets"
	"github.com/kevin07696/ufc-gateway/internal/config"
	"go.uber.org/zap"
)

// secretCacheTTL bounds how long fetched credentials are reused
const secretCacheTTL = 5 * time.Minute

// initSecretManager initializes the secret manager holding the merchant credentials
// Supports:
//   - env (default): certificate and passphrase from UFC_PAY_CERTIFICATE / UFC_PAY_CERTIFICATE_PHRASE
//   - local: files under SECRET_LOCAL_PATH (development only)
//   - aws: AWS Secrets Manager in AWS_REGION
//   - vault: HashiCorp Vault at VAULT_ADDR
//   - gcp: Google Cloud Secret Manager in GCP_PROJECT_ID
//
// The env backend returns a nil adapter.
func initSecretManager(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ports.SecretManagerAdapter, error) {
	s := cfg.Secrets

	switch s.Manager {
	case config.SecretManagerEnv:
		return nil, nil

	case config.SecretManagerLocal:
		logger.Warn("Using LOCAL secret manager - NOT for production use!",
			zap.String("path", s.LocalPath),
		)
		return secrets.NewLocalSecretManager(s.LocalPath, logger), nil

	case config.SecretManagerAWS:
		return secrets.NewAWSSecretsManager(ctx, secrets.AWSConfig{
			Region:   s.AWSRegion,
			Profile:  s.AWSProfile,
			Endpoint: s.AWSEndpoint,
			CacheTTL: secretCacheTTL,
		}, logger)

	case config.SecretManagerVault:
		vaultCfg := secrets.DefaultVaultConfig(s.VaultAddr)
		vaultCfg.AuthMethod = s.VaultAuthMethod
		vaultCfg.Token = s.VaultToken
		vaultCfg.RoleID = s.VaultRoleID
		vaultCfg.SecretID = s.VaultSecretID
		vaultCfg.K8sRole = s.VaultK8sRole
		vaultCfg.MountPath = s.VaultMount
		vaultCfg.CacheTTL = secretCacheTTL
		return secrets.NewVaultAdapter(ctx, vaultCfg, logger)

	case config.SecretManagerGCP:
		sm, err := gcp.NewSecretManager(ctx, s.GCPProjectID, secretCacheTTL, logger)
		if err != nil {
			return nil, err
		}
		return sm, nil

	default:
		return nil, fmt.Errorf("unsupported SECRET_MANAGER: %s", s.Manager)
	}
}
