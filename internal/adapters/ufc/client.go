package ufc

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kevin07696/ufc-gateway/internal/adapters/ports"
	pkgerrors "github.com/kevin07696/ufc-gateway/pkg/errors"
	"github.com/kevin07696/ufc-gateway/pkg/observability"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// merchantHandlerAdapter implements the MerchantHandlerAdapter port
type merchantHandlerAdapter struct {
	config    Config
	transport ports.MerchantHandlerTransport
	defs      *definitions
	limiter   *rate.Limiter
	logger    *zap.Logger

	mu      sync.RWMutex
	session ports.Session // standing session; replaced only with StickyOverrides
}

// NewMerchantHandlerAdapter creates a UFC adapter posting over mutual TLS HTTPS.
// It fails with a ConfigurationError when the certificate or passphrase is
// missing or the certificate cannot be decoded.
func NewMerchantHandlerAdapter(cfg *Config, logger *zap.Logger) (ports.MerchantHandlerAdapter, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	transport := NewHTTPTransport(baseURLOrDefault(cfg.BaseURL), cfg.Timeout, logger)
	return NewMerchantHandlerAdapterWithTransport(cfg, transport, logger)
}

// NewMerchantHandlerAdapterWithTransport creates a UFC adapter with a custom transport
func NewMerchantHandlerAdapterWithTransport(cfg *Config, transport ports.MerchantHandlerTransport, logger *zap.Logger) (ports.MerchantHandlerAdapter, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if transport == nil {
		return nil, pkgerrors.NewConfigurationError("transport", "transport is required")
	}

	session, err := resolveSession(cfg.Session)
	if err != nil {
		return nil, err
	}

	config := *cfg
	config.BaseURL = baseURLOrDefault(config.BaseURL)
	if config.ClientHandlerURL == "" {
		config.ClientHandlerURL = DefaultConfig().ClientHandlerURL
	}
	config.Session = session

	var limiter *rate.Limiter
	if config.RequestsPerSecond > 0 {
		burst := config.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(config.RequestsPerSecond), burst)
	}

	return &merchantHandlerAdapter{
		config:    config,
		transport: transport,
		defs:      newDefinitions(config.ClientHandlerURL),
		limiter:   limiter,
		logger:    logger,
		session:   session,
	}, nil
}

func baseURLOrDefault(baseURL string) string {
	if baseURL == "" {
		return DefaultConfig().BaseURL
	}
	return baseURL
}

// Request starts a sale or pre-authorization and returns the hosted page URL
func (a *merchantHandlerAdapter) Request(ctx context.Context, req *ports.PaymentRequest) (*ports.PaymentRequestResponse, error) {
	if req == nil {
		return nil, nilRequestError()
	}
	return execute(ctx, a, a.defs.request, req, req.Options)
}

// Authorize captures a pre-authorized transaction
func (a *merchantHandlerAdapter) Authorize(ctx context.Context, req *ports.AuthorizeRequest) (*ports.AuthorizeResponse, error) {
	if req == nil {
		return nil, nilRequestError()
	}
	return execute(ctx, a, a.defs.authorize, req, req.Options)
}

// Status queries the state of a transaction
func (a *merchantHandlerAdapter) Status(ctx context.Context, req *ports.StatusRequest) (*ports.StatusResponse, error) {
	if req == nil {
		return nil, nilRequestError()
	}
	return execute(ctx, a, a.defs.status, req, req.Options)
}

// Reverse reverses all or part of a transaction before the day is closed
func (a *merchantHandlerAdapter) Reverse(ctx context.Context, req *ports.ReverseRequest) (*ports.ReverseResponse, error) {
	if req == nil {
		return nil, nilRequestError()
	}
	return execute(ctx, a, a.defs.reverse, req, req.Options)
}

// Refund refunds all or part of a transaction after the day is closed
func (a *merchantHandlerAdapter) Refund(ctx context.Context, req *ports.RefundRequest) (*ports.RefundResponse, error) {
	if req == nil {
		return nil, nilRequestError()
	}
	return execute(ctx, a, a.defs.refund, req, req.Options)
}

// Batch closes the business day
func (a *merchantHandlerAdapter) Batch(ctx context.Context, req *ports.BatchRequest) (*ports.BatchResponse, error) {
	if req == nil {
		return nil, nilRequestError()
	}
	return execute(ctx, a, a.defs.batch, req, req.Options)
}

// Register starts a card registration
func (a *merchantHandlerAdapter) Register(ctx context.Context, req *ports.RegisterRequest) (*ports.RegisterResponse, error) {
	if req == nil {
		return nil, nilRequestError()
	}
	return execute(ctx, a, a.defs.register, req, req.Options)
}

// Charge charges a registered card by token
func (a *merchantHandlerAdapter) Charge(ctx context.Context, req *ports.ChargeRequest) (*ports.ChargeResponse, error) {
	if req == nil {
		return nil, nilRequestError()
	}
	return execute(ctx, a, a.defs.charge, req, req.Options)
}

// Credit sends funds to a previously charged card
func (a *merchantHandlerAdapter) Credit(ctx context.Context, req *ports.CreditRequest) (*ports.CreditResponse, error) {
	if req == nil {
		return nil, nilRequestError()
	}
	return execute(ctx, a, a.defs.credit, req, req.Options)
}

// Session returns the standing session
func (a *merchantHandlerAdapter) Session() ports.Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session
}

// sessionFor returns the session for one call. With StickyOverrides the
// merged session also replaces the standing one.
func (a *merchantHandlerAdapter) sessionFor(opts *ports.SessionOptions) ports.Session {
	if !a.config.StickyOverrides || opts == nil {
		return EffectiveSession(a.Session(), opts)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = EffectiveSession(a.session, opts)
	return a.session
}

func nilRequestError() error {
	return pkgerrors.NewValidationError("request", "request is required")
}

// execute runs one command: build, encode, submit, decode, extract.
// Transport errors are returned as they are; gateway declines are not errors.
func execute[Req any, Resp any](
	ctx context.Context,
	a *merchantHandlerAdapter,
	op operation[Req, Resp],
	req *Req,
	opts *ports.SessionOptions,
) (*Resp, error) {
	requestID := uuid.New().String()
	session := a.sessionFor(opts)

	params, err := op.build(req, session)
	if err != nil {
		a.logger.Error("Invalid UFC request",
			zap.String("request_id", requestID),
			zap.String("operation", op.name),
			zap.Error(err),
		)
		return nil, err
	}
	command, _ := params.Get(paramCommand)

	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	a.logger.Debug("Sending UFC merchant handler command",
		zap.String("request_id", requestID),
		zap.String("operation", op.name),
		zap.String("command", command),
	)

	done := observability.GatewayRequestStarted()
	start := time.Now()
	body, err := a.transport.Post(ctx, session, params.Encode())
	elapsed := time.Since(start)
	done()

	if err != nil {
		observability.RecordGatewayRequest(op.name, "error", elapsed)
		a.logger.Error("UFC merchant handler call failed",
			zap.String("request_id", requestID),
			zap.String("operation", op.name),
			zap.String("command", command),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return nil, err
	}

	fields := getFields()
	decodeInto(fields, body)
	resp := op.extract(fields)
	putFields(fields)

	result := op.outcome(resp)
	observability.RecordGatewayRequest(op.name, string(result.Status), elapsed)
	if result.Status == ports.StatusOK {
		recordAmount(op.name, params, session)
	}

	a.logger.Info("UFC merchant handler command completed",
		zap.String("request_id", requestID),
		zap.String("operation", op.name),
		zap.String("command", command),
		zap.String("status", string(result.Status)),
		zap.Stringp("result_code", result.Code),
		zap.Bool("gateway_error", result.Error != nil),
		zap.Duration("elapsed", elapsed),
	)

	return resp, nil
}

// recordAmount reads the amount and currency back from the sent parameters
func recordAmount(operation string, params *Params, session ports.Session) {
	v, ok := params.Get(paramAmount)
	if !ok {
		return
	}
	amount, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return
	}

	currency := session.Currency
	if c, ok := params.Get(paramCurrency); ok {
		if n, err := strconv.Atoi(c); err == nil {
			currency = n
		}
	}
	observability.RecordGatewayAmount(operation, currency, amount)
}
