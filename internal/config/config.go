package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/kevin07696/ufc-gateway/internal/adapters/ports"
	"github.com/kevin07696/ufc-gateway/internal/adapters/ufc"
	"gopkg.in/yaml.v3"
)

// Secret manager backends
const (
	SecretManagerEnv   = "env"
	SecretManagerLocal = "local"
	SecretManagerAWS   = "aws"
	SecretManagerVault = "vault"
	SecretManagerGCP   = "gcp"
)

// Config holds all application configuration
type Config struct {
	Environment string        `yaml:"environment"`
	Gateway     GatewayConfig `yaml:"gateway"`
	Secrets     SecretsConfig `yaml:"secrets"`
	Logger      LoggerConfig  `yaml:"logger"`
}

// GatewayConfig holds UFC merchant handler configuration
type GatewayConfig struct {
	BaseURL          string `yaml:"base_url"`           // Merchant handler host (e.g., https://ecommerce.ufc.ge:18443)
	ClientHandlerURL string `yaml:"client_handler_url"` // Hosted card page
	Currency         int    `yaml:"currency"`           // Default ISO 4217 numeric currency (981 = GEL)

	Certificate       string `yaml:"certificate"`        // Path or inline PEM; used when SECRET_MANAGER=env
	CertificatePhrase string `yaml:"certificate_phrase"` // Used when SECRET_MANAGER=env

	CACertificate      string `yaml:"ca_certificate"` // Path to a PEM bundle pinning the gateway CA
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify"`
	ProxyURL           string `yaml:"proxy_url"`

	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
	StickyOverrides   bool          `yaml:"sticky_overrides"`
}

// SecretsConfig selects where the merchant certificate and passphrase are read from
type SecretsConfig struct {
	Manager           string `yaml:"manager"` // env, local, aws, vault, gcp
	CertificateSecret string `yaml:"certificate_secret"`
	PhraseSecret      string `yaml:"phrase_secret"`

	LocalPath string `yaml:"local_path"`

	AWSRegion   string `yaml:"aws_region"`
	AWSProfile  string `yaml:"aws_profile"`
	AWSEndpoint string `yaml:"aws_endpoint"`

	VaultAddr       string `yaml:"vault_addr"`
	VaultAuthMethod string `yaml:"vault_auth_method"` // token, approle, kubernetes
	VaultToken      string `yaml:"vault_token"`
	VaultRoleID     string `yaml:"vault_role_id"`
	VaultSecretID   string `yaml:"vault_secret_id"`
	VaultK8sRole    string `yaml:"vault_k8s_role"`
	VaultMount      string `yaml:"vault_mount"`

	GCPProjectID string `yaml:"gcp_project_id"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when neither a file nor the environment sets a value
func Default() *Config {
	ufcDefaults := ufc.DefaultConfig()
	return &Config{
		Environment: "development",
		Gateway: GatewayConfig{
			BaseURL:            ufcDefaults.BaseURL,
			ClientHandlerURL:   ufcDefaults.ClientHandlerURL,
			Currency:           ports.DefaultCurrency,
			InsecureSkipVerify: true,
			Timeout:            ufcDefaults.Timeout,
			Burst:              1,
		},
		Secrets: SecretsConfig{
			Manager:         SecretManagerEnv,
			LocalPath:       "./secrets",
			AWSRegion:       "eu-central-1",
			VaultAuthMethod: "token",
			VaultMount:      "secret",
		},
		Logger: LoggerConfig{
			Level:       "info",
			Development: true,
		},
	}
}

// LoadFromEnv loads configuration from environment variables, seeded by the
// YAML file named in UFC_CONFIG_FILE when set
func LoadFromEnv() (*Config, error) {
	return Load(os.Getenv("UFC_CONFIG_FILE"))
}

// Load reads the optional YAML file at path and applies environment overrides
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides file values with any environment variables that are set
func (c *Config) applyEnv() {
	c.Environment = getEnv("ENVIRONMENT", c.Environment)

	g := &c.Gateway
	g.BaseURL = getEnv("UFC_BASE_URL", g.BaseURL)
	g.ClientHandlerURL = getEnv("UFC_CLIENT_HANDLER_URL", g.ClientHandlerURL)
	g.Currency = getEnvAsInt("UFC_PAY_CURRENCY", g.Currency)
	g.Certificate = getEnv(ufc.EnvCertificate, g.Certificate)
	g.CertificatePhrase = getEnv(ufc.EnvCertificatePhrase, g.CertificatePhrase)
	g.CACertificate = getEnv("UFC_CA_CERTIFICATE", g.CACertificate)
	g.InsecureSkipVerify = getEnvAsBool("UFC_INSECURE_SKIP_VERIFY", g.InsecureSkipVerify)
	g.ProxyURL = getEnv("UFC_PROXY_URL", g.ProxyURL)
	g.Timeout = getEnvAsDuration("UFC_TIMEOUT", g.Timeout)
	g.RequestsPerSecond = getEnvAsFloat("UFC_REQUESTS_PER_SECOND", g.RequestsPerSecond)
	g.Burst = getEnvAsInt("UFC_BURST", g.Burst)
	g.StickyOverrides = getEnvAsBool("UFC_STICKY_OVERRIDES", g.StickyOverrides)

	s := &c.Secrets
	s.Manager = getEnv("SECRET_MANAGER", s.Manager)
	s.CertificateSecret = getEnv("UFC_CERTIFICATE_SECRET", s.CertificateSecret)
	s.PhraseSecret = getEnv("UFC_PHRASE_SECRET", s.PhraseSecret)
	s.LocalPath = getEnv("SECRET_LOCAL_PATH", s.LocalPath)
	s.AWSRegion = getEnv("AWS_REGION", s.AWSRegion)
	s.AWSProfile = getEnv("AWS_PROFILE", s.AWSProfile)
	s.AWSEndpoint = getEnv("AWS_ENDPOINT", s.AWSEndpoint)
	s.VaultAddr = getEnv("VAULT_ADDR", s.VaultAddr)
	s.VaultAuthMethod = getEnv("VAULT_AUTH_METHOD", s.VaultAuthMethod)
	s.VaultToken = getEnv("VAULT_TOKEN", s.VaultToken)
	s.VaultRoleID = getEnv("VAULT_ROLE_ID", s.VaultRoleID)
	s.VaultSecretID = getEnv("VAULT_SECRET_ID", s.VaultSecretID)
	s.VaultK8sRole = getEnv("VAULT_K8S_ROLE", s.VaultK8sRole)
	s.VaultMount = getEnv("VAULT_MOUNT", s.VaultMount)
	s.GCPProjectID = getEnv("GCP_PROJECT_ID", s.GCPProjectID)

	c.Logger.Level = getEnv("LOG_LEVEL", c.Logger.Level)
	c.Logger.Development = getEnvAsBool("LOG_DEVELOPMENT", c.Logger.Development && c.Environment != "production")
}

// Validate checks the configuration is internally consistent.
// Missing credentials are reported later, when the adapter is built.
func (c *Config) Validate() error {
	switch c.Secrets.Manager {
	case SecretManagerEnv:
	case SecretManagerLocal, SecretManagerAWS, SecretManagerVault, SecretManagerGCP:
		if c.Secrets.CertificateSecret == "" {
			return fmt.Errorf("UFC_CERTIFICATE_SECRET is required when SECRET_MANAGER=%s", c.Secrets.Manager)
		}
	default:
		return fmt.Errorf("unsupported SECRET_MANAGER: %s", c.Secrets.Manager)
	}

	if c.Secrets.Manager == SecretManagerVault && c.Secrets.VaultAddr == "" {
		return fmt.Errorf("VAULT_ADDR is required when SECRET_MANAGER=vault")
	}
	if c.Secrets.Manager == SecretManagerGCP && c.Secrets.GCPProjectID == "" {
		return fmt.Errorf("GCP_PROJECT_ID is required when SECRET_MANAGER=gcp")
	}
	if c.Gateway.Currency < 0 {
		return fmt.Errorf("UFC_PAY_CURRENCY must be a positive ISO 4217 numeric code")
	}
	if c.Gateway.RequestsPerSecond < 0 {
		return fmt.Errorf("UFC_REQUESTS_PER_SECOND must not be negative")
	}
	return nil
}

// UFCConfig builds the adapter configuration. With a secret manager the
// certificate and passphrase are fetched from it; otherwise they come from
// the gateway section (a path or inline PEM).
func (c *Config) UFCConfig(ctx context.Context, secrets ports.SecretManagerAdapter) (*ufc.Config, error) {
	session := ports.Session{
		Currency:           c.Gateway.Currency,
		InsecureSkipVerify: c.Gateway.InsecureSkipVerify,
		Passphrase:         c.Gateway.CertificatePhrase,
	}

	if secrets != nil && c.Secrets.CertificateSecret != "" {
		cert, err := secrets.GetSecret(ctx, c.Secrets.CertificateSecret)
		if err != nil {
			return nil, fmt.Errorf("failed to load merchant certificate: %w", err)
		}
		session.Certificate = []byte(cert.Value)

		if c.Secrets.PhraseSecret != "" {
			phrase, err := secrets.GetSecret(ctx, c.Secrets.PhraseSecret)
			if err != nil {
				return nil, fmt.Errorf("failed to load certificate passphrase: %w", err)
			}
			session.Passphrase = phrase.Value
		}
	} else if c.Gateway.Certificate != "" {
		cert, err := ufc.ReadCertificateSource(c.Gateway.Certificate)
		if err != nil {
			return nil, fmt.Errorf("failed to read merchant certificate: %w", err)
		}
		session.Certificate = cert
	}

	if c.Gateway.CACertificate != "" {
		ca, err := os.ReadFile(c.Gateway.CACertificate)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate: %w", err)
		}
		session.CACertificate = ca
	}

	if c.Gateway.ProxyURL != "" {
		session.Proxy = &ports.ProxyConfig{URL: c.Gateway.ProxyURL}
	}

	return &ufc.Config{
		BaseURL:           c.Gateway.BaseURL,
		ClientHandlerURL:  c.Gateway.ClientHandlerURL,
		Session:           session,
		Timeout:           c.Gateway.Timeout,
		RequestsPerSecond: c.Gateway.RequestsPerSecond,
		Burst:             c.Gateway.Burst,
		StickyOverrides:   c.Gateway.StickyOverrides,
	}, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration accepts Go durations ("45s") or a plain number of seconds
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	if seconds, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}
