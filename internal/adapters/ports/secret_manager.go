package ports

import (
	"context"
)

// Secret is a credential read from a secret backend
type Secret struct {
	Value   string // PEM, PKCS#12 bytes or passphrase
	Version string // Backend version identifier, if the backend has one
}

// SecretManagerAdapter defines the port for retrieving gateway credentials from
// a secret management service.
// Supports multiple backends: local filesystem, AWS Secrets Manager, GCP Secret
// Manager, HashiCorp Vault.
type SecretManagerAdapter interface {
	// GetSecret retrieves a secret by its path/name
	// Path format depends on implementation:
	//   - Local: relative file path under the base directory
	//   - AWS: "ufc/merchants/{merchant}/certificate" or full ARN
	//   - GCP: secret name, resolved to projects/{project}/secrets/{name}/versions/latest
	//   - Vault: "ufc/merchants/{merchant}" under the configured KV mount
	// Returns error if the secret does not exist, access is denied or the
	// backend is unreachable.
	GetSecret(ctx context.Context, path string) (*Secret, error)
}
