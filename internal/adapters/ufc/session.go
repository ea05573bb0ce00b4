package ufc

import (
	"os"
	"time"

	"github.com/kevin07696/ufc-gateway/internal/adapters/ports"
	pkgerrors "github.com/kevin07696/ufc-gateway/pkg/errors"
)

// Environment variables consulted when the certificate or passphrase is not configured
const (
	EnvCertificate       = "UFC_PAY_CERTIFICATE"
	EnvCertificatePhrase = "UFC_PAY_CERTIFICATE_PHRASE"
)

// Config contains configuration for the UFC merchant handler adapter
type Config struct {
	// Merchant handler host
	// Production: https://ecommerce.ufc.ge:18443
	BaseURL string

	// Hosted card page the cardholder is redirected to
	// Production: https://ecommerce.ufc.ge/ecomm2/ClientHandler
	ClientHandlerURL string

	// Standing session: client certificate, passphrase, default currency, TLS and proxy
	Session ports.Session

	// HTTP client timeout
	Timeout time.Duration

	// Client-side rate limit; zero RequestsPerSecond disables it
	RequestsPerSecond float64
	Burst             int

	// StickyOverrides makes per-call SessionOptions replace the standing
	// session for every later call on the adapter
	StickyOverrides bool
}

// DefaultConfig returns default configuration for the UFC adapter
func DefaultConfig() *Config {
	return &Config{
		BaseURL:          "https://ecommerce.ufc.ge:18443",
		ClientHandlerURL: "https://ecommerce.ufc.ge/ecomm2/ClientHandler",
		Session: ports.Session{
			Currency:           ports.DefaultCurrency,
			InsecureSkipVerify: true,
		},
		Timeout: 30 * time.Second,
	}
}

// merchantHandlerPath is appended to BaseURL for every command
const merchantHandlerPath = "/ecomm2/MerchantHandler"

// EffectiveSession merges per-call options over the standing session.
// It never modifies base; a nil opts returns base unchanged.
func EffectiveSession(base ports.Session, opts *ports.SessionOptions) ports.Session {
	if opts == nil {
		return base
	}

	merged := base
	if len(opts.Certificate) > 0 {
		merged.Certificate = opts.Certificate
	}
	if opts.Passphrase != nil {
		merged.Passphrase = *opts.Passphrase
	}
	if len(opts.CACertificate) > 0 {
		merged.CACertificate = opts.CACertificate
	}
	if opts.InsecureSkipVerify != nil {
		merged.InsecureSkipVerify = *opts.InsecureSkipVerify
	}
	if opts.Proxy != nil {
		proxy := *opts.Proxy
		merged.Proxy = &proxy
	}
	return merged
}

// resolveSession fills the certificate and passphrase from the environment
// when they are not configured, then checks the session can be used
func resolveSession(session ports.Session) (ports.Session, error) {
	if len(session.Certificate) == 0 {
		if v := os.Getenv(EnvCertificate); v != "" {
			cert, err := ReadCertificateSource(v)
			if err != nil {
				return session, pkgerrors.NewConfigurationError("certificate", err.Error())
			}
			session.Certificate = cert
		}
	}
	if session.Passphrase == "" {
		session.Passphrase = os.Getenv(EnvCertificatePhrase)
	}
	if session.Currency == 0 {
		session.Currency = ports.DefaultCurrency
	}

	if err := validateSession(session); err != nil {
		return session, err
	}
	return session, nil
}

// validateSession checks the credentials are present and decodable
func validateSession(session ports.Session) error {
	if len(session.Certificate) == 0 {
		return pkgerrors.NewConfigurationError("certificate", "merchant certificate is required")
	}
	if session.Passphrase == "" {
		return pkgerrors.NewConfigurationError("passphrase", "certificate passphrase is required")
	}
	if _, err := ParseCertificate(session.Certificate, session.Passphrase); err != nil {
		return pkgerrors.NewConfigurationError("certificate", err.Error())
	}
	return nil
}

// ReadCertificateSource accepts inline PEM or a path to a PEM/PKCS#12 file
func ReadCertificateSource(v string) ([]byte, error) {
	if looksLikePEM([]byte(v)) {
		return []byte(v), nil
	}
	return os.ReadFile(v)
}
