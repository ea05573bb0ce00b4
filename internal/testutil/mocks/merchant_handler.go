// Package mocks provides shared testify mock implementations of the ports.
package mocks

import (
	"context"

	"github.com/kevin07696/ufc-gateway/internal/adapters/ports"
	"github.com/stretchr/testify/mock"
)

// MockMerchantHandler is a testify mock of ports.MerchantHandlerAdapter
type MockMerchantHandler struct {
	mock.Mock
}

var _ ports.MerchantHandlerAdapter = (*MockMerchantHandler)(nil)

func (m *MockMerchantHandler) Request(ctx context.Context, req *ports.PaymentRequest) (*ports.PaymentRequestResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.PaymentRequestResponse), args.Error(1)
}

func (m *MockMerchantHandler) Authorize(ctx context.Context, req *ports.AuthorizeRequest) (*ports.AuthorizeResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.AuthorizeResponse), args.Error(1)
}

func (m *MockMerchantHandler) Status(ctx context.Context, req *ports.StatusRequest) (*ports.StatusResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.StatusResponse), args.Error(1)
}

func (m *MockMerchantHandler) Reverse(ctx context.Context, req *ports.ReverseRequest) (*ports.ReverseResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.ReverseResponse), args.Error(1)
}

func (m *MockMerchantHandler) Refund(ctx context.Context, req *ports.RefundRequest) (*ports.RefundResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.RefundResponse), args.Error(1)
}

func (m *MockMerchantHandler) Batch(ctx context.Context, req *ports.BatchRequest) (*ports.BatchResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.BatchResponse), args.Error(1)
}

func (m *MockMerchantHandler) Register(ctx context.Context, req *ports.RegisterRequest) (*ports.RegisterResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.RegisterResponse), args.Error(1)
}

func (m *MockMerchantHandler) Charge(ctx context.Context, req *ports.ChargeRequest) (*ports.ChargeResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.ChargeResponse), args.Error(1)
}

func (m *MockMerchantHandler) Credit(ctx context.Context, req *ports.CreditRequest) (*ports.CreditResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.CreditResponse), args.Error(1)
}

func (m *MockMerchantHandler) Session() ports.Session {
	args := m.Called()
	return args.Get(0).(ports.Session)
}
