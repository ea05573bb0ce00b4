package ufc

import (
	"container/list"
	"context"
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/kevin07696/ufc-gateway/internal/adapters/ports"
	pkgerrors "github.com/kevin07696/ufc-gateway/pkg/errors"
	pkghttp "github.com/kevin07696/ufc-gateway/pkg/http"
	"go.uber.org/zap"
)

// maxResponseSize bounds the merchant handler reply; real replies are a few hundred bytes
const maxResponseSize = 1 << 20

// maxCachedClients bounds the per-session client cache. The least recently
// used client is evicted and its idle connections closed.
const maxCachedClients = 16

// cachedClient is one entry of the client cache
type cachedClient struct {
	key    string
	client *http.Client
}

// httpTransport implements the MerchantHandlerTransport port over mutual TLS HTTPS
type httpTransport struct {
	endpoint string
	timeout  time.Duration
	logger   *zap.Logger

	// fixed is used for every call when set (tests, custom clients)
	fixed ports.HTTPClient

	mu         sync.Mutex
	maxClients int
	clients    map[string]*list.Element // keyed by session fingerprint
	order      *list.List               // most recently used at the front
}

// NewHTTPTransport creates a transport posting to baseURL's merchant handler.
// One HTTP client is built and cached per distinct credential and proxy setup.
func NewHTTPTransport(baseURL string, timeout time.Duration, logger *zap.Logger) ports.MerchantHandlerTransport {
	return &httpTransport{
		endpoint:   strings.TrimRight(baseURL, "/") + merchantHandlerPath,
		timeout:    timeout,
		logger:     logger,
		maxClients: maxCachedClients,
		clients:    make(map[string]*list.Element),
		order:      list.New(),
	}
}

// NewHTTPTransportWithClient creates a transport that sends every call through
// client. Session TLS and proxy settings are then the client's concern.
func NewHTTPTransportWithClient(baseURL string, client ports.HTTPClient, logger *zap.Logger) ports.MerchantHandlerTransport {
	return &httpTransport{
		endpoint: strings.TrimRight(baseURL, "/") + merchantHandlerPath,
		logger:   logger,
		fixed:    client,
	}
}

// Post sends the query to the merchant handler and returns the raw reply text
func (t *httpTransport) Post(ctx context.Context, session ports.Session, query string) (string, error) {
	client, err := t.clientFor(session)
	if err != nil {
		return "", err
	}

	target := t.endpoint + "?" + escapeRequestTarget(query)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, target, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		t.logger.Warn("Merchant handler returned non-2xx status",
			zap.Int("status_code", resp.StatusCode),
		)
		return "", &pkgerrors.HTTPStatusError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	return string(body), nil
}

// clientFor returns the cached client for the session's credentials, building it on first use
func (t *httpTransport) clientFor(session ports.Session) (ports.HTTPClient, error) {
	if t.fixed != nil {
		return t.fixed, nil
	}

	key := sessionFingerprint(session)

	t.mu.Lock()
	defer t.mu.Unlock()

	if element, ok := t.clients[key]; ok {
		t.order.MoveToFront(element)
		return element.Value.(*cachedClient).client, nil
	}

	client, err := t.buildClient(session)
	if err != nil {
		return nil, err
	}
	t.clients[key] = t.order.PushFront(&cachedClient{key: key, client: client})

	for len(t.clients) > t.maxClients {
		t.evictOldest()
	}

	t.logger.Debug("Created merchant handler HTTP client",
		zap.String("fingerprint", key[:12]),
		zap.Bool("proxy", session.Proxy != nil),
		zap.Int("cached_clients", len(t.clients)),
	)
	return client, nil
}

// evictOldest drops the least recently used client. Caller holds t.mu.
func (t *httpTransport) evictOldest() {
	element := t.order.Back()
	if element == nil {
		return
	}
	entry := element.Value.(*cachedClient)
	t.order.Remove(element)
	delete(t.clients, entry.key)
	entry.client.CloseIdleConnections()

	t.logger.Debug("Evicted merchant handler HTTP client",
		zap.String("fingerprint", entry.key[:12]),
	)
}

func (t *httpTransport) buildClient(session ports.Session) (*http.Client, error) {
	cert, err := ParseCertificate(session.Certificate, session.Passphrase)
	if err != nil {
		return nil, pkgerrors.NewConfigurationError("certificate", err.Error())
	}

	cfg := pkghttp.UFCClientConfig()
	cfg.Certificates = []tls.Certificate{cert}
	cfg.InsecureSkipVerify = session.InsecureSkipVerify

	if len(session.CACertificate) > 0 {
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(session.CACertificate) {
			return nil, pkgerrors.NewConfigurationError("ca_certificate", "no PEM certificates found")
		}
		cfg.RootCAs = pool
		cfg.InsecureSkipVerify = false
	}

	if session.Proxy != nil {
		proxyURL, err := url.Parse(session.Proxy.URL)
		if err != nil || proxyURL.Host == "" {
			return nil, pkgerrors.NewConfigurationError("proxy", fmt.Sprintf("invalid proxy URL %q", session.Proxy.URL))
		}
		cfg.ProxyURL = proxyURL
		if len(session.Proxy.ConnectHeaders) > 0 {
			header := make(http.Header, len(session.Proxy.ConnectHeaders))
			for k, v := range session.Proxy.ConnectHeaders {
				header.Set(k, v)
			}
			cfg.ProxyConnectHeader = header
		}
	}

	return pkghttp.NewHTTPClient(cfg, t.timeout), nil
}

// sessionFingerprint identifies the transport-relevant parts of a session
func sessionFingerprint(session ports.Session) string {
	h := sha256.New()
	write := func(b []byte) {
		fmt.Fprintf(h, "%d:", len(b))
		h.Write(b)
	}

	write(session.Certificate)
	write([]byte(session.Passphrase))
	write(session.CACertificate)
	if session.InsecureSkipVerify {
		write([]byte{1})
	} else {
		write([]byte{0})
	}

	if session.Proxy != nil {
		write([]byte(session.Proxy.URL))
		keys := make([]string, 0, len(session.Proxy.ConnectHeaders))
		for k := range session.Proxy.ConnectHeaders {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			write([]byte(k))
			write([]byte(session.Proxy.ConnectHeaders[k]))
		}
	}

	return hex.EncodeToString(h.Sum(nil))
}
