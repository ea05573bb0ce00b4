package secrets

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newVaultServer serves a KV engine and AppRole login from memory
func newVaultServer(t *testing.T, kv map[string]map[string]interface{}) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Path == "/v1/auth/approle/login" {
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["role_id"] != "role" || body["secret_id"] != "secret" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"errors":["invalid role or secret ID"]}`))
				return
			}
			_, _ = w.Write([]byte(`{"auth":{"client_token":"approle-token"}}`))
			return
		}

		token := r.Header.Get("X-Vault-Token")
		if token != "root" && token != "approle-token" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"errors":["permission denied"]}`))
			return
		}

		data, ok := kv[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"errors":[]}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": data})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestVaultAdapter_GetSecret(t *testing.T) {
	p12 := []byte{0x30, 0x82, 0x0a}
	server := newVaultServer(t, map[string]map[string]interface{}{
		"/v1/secret/data/ufc/phrase": {
			"data":     map[string]interface{}{"value": "s3cret"},
			"metadata": map[string]interface{}{"version": 3},
		},
		"/v1/secret/data/ufc/cert": {
			"data":     map[string]interface{}{"value": base64.StdEncoding.EncodeToString(p12), "encoding": "base64"},
			"metadata": map[string]interface{}{"version": 1},
		},
		"/v1/secret/data/ufc/broken": {
			"data": "not-a-map",
		},
		"/v1/secret/data/ufc/unnamed": {
			"data": map[string]interface{}{"pem": "no value key"},
		},
	})

	cfg := DefaultVaultConfig(server.URL)
	cfg.Token = "root"
	adapter, err := NewVaultAdapter(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	t.Run("kv v2 value and version", func(t *testing.T) {
		secret, err := adapter.GetSecret(context.Background(), "ufc/phrase")
		require.NoError(t, err)
		assert.Equal(t, "s3cret", secret.Value)
		assert.Equal(t, "3", secret.Version)
	})

	t.Run("base64 encoded value", func(t *testing.T) {
		secret, err := adapter.GetSecret(context.Background(), "ufc/cert")
		require.NoError(t, err)
		assert.Equal(t, string(p12), secret.Value)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := adapter.GetSecret(context.Background(), "ufc/missing")
		assert.Error(t, err)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := adapter.GetSecret(context.Background(), "ufc/broken")
		assert.Error(t, err)
	})

	t.Run("missing value key", func(t *testing.T) {
		_, err := adapter.GetSecret(context.Background(), "ufc/unnamed")
		assert.Error(t, err)
	})
}

func TestVaultAdapter_KVv1(t *testing.T) {
	server := newVaultServer(t, map[string]map[string]interface{}{
		"/v1/kv/ufc/phrase": {"value": "legacy"},
	})

	cfg := DefaultVaultConfig(server.URL)
	cfg.Token = "root"
	cfg.MountPath = "kv"
	cfg.KVVersion = 1
	adapter, err := NewVaultAdapter(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	secret, err := adapter.GetSecret(context.Background(), "ufc/phrase")
	require.NoError(t, err)
	assert.Equal(t, "legacy", secret.Value)
	assert.Equal(t, "1", secret.Version)
}

func TestVaultAdapter_AppRole(t *testing.T) {
	server := newVaultServer(t, map[string]map[string]interface{}{
		"/v1/secret/data/ufc/phrase": {
			"data": map[string]interface{}{"value": "via-approle"},
		},
	})

	cfg := DefaultVaultConfig(server.URL)
	cfg.AuthMethod = "approle"
	cfg.RoleID = "role"
	cfg.SecretID = "secret"
	adapter, err := NewVaultAdapter(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	secret, err := adapter.GetSecret(context.Background(), "ufc/phrase")
	require.NoError(t, err)
	assert.Equal(t, "via-approle", secret.Value)
}

func TestVaultAdapter_AuthErrors(t *testing.T) {
	server := newVaultServer(t, nil)

	tests := []struct {
		name      string
		configure func(*VaultConfig)
	}{
		{name: "missing token", configure: func(c *VaultConfig) { c.Token = "" }},
		{name: "approle without credentials", configure: func(c *VaultConfig) { c.AuthMethod = "approle" }},
		{name: "approle rejected", configure: func(c *VaultConfig) {
			c.AuthMethod = "approle"
			c.RoleID = "role"
			c.SecretID = "wrong"
		}},
		{name: "kubernetes without role", configure: func(c *VaultConfig) { c.AuthMethod = "kubernetes" }},
		{name: "kubernetes token missing", configure: func(c *VaultConfig) {
			c.AuthMethod = "kubernetes"
			c.K8sRole = "ufc"
			c.K8sTokenPath = t.TempDir() + "/missing"
		}},
		{name: "unknown method", configure: func(c *VaultConfig) { c.AuthMethod = "ldap" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultVaultConfig(server.URL)
			tt.configure(&cfg)
			_, err := NewVaultAdapter(context.Background(), cfg, zap.NewNop())
			assert.Error(t, err)
		})
	}
}
