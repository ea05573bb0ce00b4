package fixtures

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"time"
)

// CertificateBundle is a self-signed merchant credential for tests
type CertificateBundle struct {
	CertPEM []byte
	KeyPEM  []byte
	Leaf    *x509.Certificate
}

// NewCertificateBundle generates an ECDSA P-256 key and a self-signed
// certificate usable for both client and server authentication.
func NewCertificateBundle(commonName string) (*CertificateBundle, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, err
	}

	serial, err := rand.Int(rand.Reader, big.NewInt(1<<62))
	if err != nil {
		return nil, err
	}

	template := &x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{CommonName: commonName, Organization: []string{"Test Merchant"}},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(24 * time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth, x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		IsCA:                  true,
		DNSNames:              []string{"localhost"},
	}

	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	if err != nil {
		return nil, err
	}
	leaf, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, err
	}

	keyDER, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		return nil, err
	}

	return &CertificateBundle{
		CertPEM: pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}),
		KeyPEM:  pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER}),
		Leaf:    leaf,
	}, nil
}

// Combined returns the certificate followed by the unencrypted key
func (b *CertificateBundle) Combined() []byte {
	out := make([]byte, 0, len(b.CertPEM)+len(b.KeyPEM))
	out = append(out, b.CertPEM...)
	return append(out, b.KeyPEM...)
}

// Encrypted returns the certificate followed by the key encrypted with passphrase
// using legacy PEM encryption.
func (b *CertificateBundle) Encrypted(passphrase string) ([]byte, error) {
	block, _ := pem.Decode(b.KeyPEM)
	//nolint:staticcheck // merchant keys are issued with legacy PEM encryption
	encrypted, err := x509.EncryptPEMBlock(rand.Reader, block.Type, block.Bytes, []byte(passphrase), x509.PEMCipherAES256)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(b.CertPEM)+1024)
	out = append(out, b.CertPEM...)
	return append(out, pem.EncodeToMemory(encrypted)...), nil
}
