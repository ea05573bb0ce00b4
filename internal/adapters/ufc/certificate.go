package ufc

import (
	"bytes"
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"golang.org/x/crypto/pkcs12"
)

var (
	ErrNoCertificate = errors.New("no certificate found")
	ErrNoPrivateKey  = errors.New("no private key found")
	ErrKeyMismatch   = errors.New("private key does not match any certificate")
)

// ParseCertificate decodes a merchant credential into a TLS client certificate.
// PEM input carries the certificate chain and private key, the key optionally
// encrypted with the passphrase (legacy Proc-Type encryption). Anything else is
// treated as a PKCS#12 bundle protected by the passphrase.
func ParseCertificate(data []byte, passphrase string) (tls.Certificate, error) {
	if looksLikePEM(data) {
		return parsePEMCertificate(data, passphrase)
	}
	return parsePKCS12Certificate(data, passphrase)
}

func looksLikePEM(data []byte) bool {
	return bytes.Contains(data, []byte("-----BEGIN "))
}

func parsePEMCertificate(data []byte, passphrase string) (tls.Certificate, error) {
	var (
		chain  [][]byte
		keyDER []byte
	)

	rest := data
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}

		switch block.Type {
		case "CERTIFICATE":
			chain = append(chain, block.Bytes)
		case "ENCRYPTED PRIVATE KEY":
			return tls.Certificate{}, errors.New("PKCS#8 encrypted keys are not supported, use a PKCS#12 bundle")
		case "PRIVATE KEY", "RSA PRIVATE KEY", "EC PRIVATE KEY":
			if keyDER != nil {
				continue
			}
			//nolint:staticcheck // the gateway issues keys with legacy PEM encryption
			if x509.IsEncryptedPEMBlock(block) {
				der, err := x509.DecryptPEMBlock(block, []byte(passphrase))
				if err != nil {
					return tls.Certificate{}, fmt.Errorf("failed to decrypt private key: %w", err)
				}
				keyDER = der
				continue
			}
			keyDER = block.Bytes
		}
	}

	return assembleCertificate(chain, keyDER)
}

func parsePKCS12Certificate(data []byte, passphrase string) (tls.Certificate, error) {
	blocks, err := pkcs12.ToPEM(data, passphrase)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to decode PKCS#12 bundle: %w", err)
	}

	var (
		chain  [][]byte
		keyDER []byte
	)
	for _, block := range blocks {
		switch block.Type {
		case "CERTIFICATE":
			chain = append(chain, block.Bytes)
		case "PRIVATE KEY":
			if keyDER == nil {
				keyDER = block.Bytes
			}
		}
	}

	return assembleCertificate(chain, keyDER)
}

// assembleCertificate orders the chain so the certificate matching the key
// comes first, as crypto/tls expects
func assembleCertificate(chain [][]byte, keyDER []byte) (tls.Certificate, error) {
	if len(chain) == 0 {
		return tls.Certificate{}, ErrNoCertificate
	}
	if keyDER == nil {
		return tls.Certificate{}, ErrNoPrivateKey
	}

	key, err := parsePrivateKey(keyDER)
	if err != nil {
		return tls.Certificate{}, err
	}

	type publicKey interface {
		Equal(crypto.PublicKey) bool
	}
	signer, ok := key.(crypto.Signer)
	if !ok {
		return tls.Certificate{}, errors.New("unsupported private key type")
	}
	pub, ok := signer.Public().(publicKey)
	if !ok {
		return tls.Certificate{}, errors.New("unsupported public key type")
	}

	for i, der := range chain {
		leaf, err := x509.ParseCertificate(der)
		if err != nil {
			return tls.Certificate{}, fmt.Errorf("failed to parse certificate: %w", err)
		}
		if !pub.Equal(leaf.PublicKey) {
			continue
		}

		ordered := make([][]byte, 0, len(chain))
		ordered = append(ordered, der)
		ordered = append(ordered, chain[:i]...)
		ordered = append(ordered, chain[i+1:]...)
		return tls.Certificate{
			Certificate: ordered,
			PrivateKey:  key,
			Leaf:        leaf,
		}, nil
	}

	return tls.Certificate{}, ErrKeyMismatch
}

func parsePrivateKey(der []byte) (crypto.PrivateKey, error) {
	if key, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return key, nil
	}
	if key, err := x509.ParsePKCS8PrivateKey(der); err == nil {
		switch key := key.(type) {
		case *rsa.PrivateKey, *ecdsa.PrivateKey, ed25519.PrivateKey:
			return key, nil
		default:
			return nil, errors.New("unsupported PKCS#8 private key type")
		}
	}
	if key, err := x509.ParseECPrivateKey(der); err == nil {
		return key, nil
	}
	return nil, errors.New("failed to parse private key")
}
