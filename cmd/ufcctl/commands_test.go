package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/kevin07696/ufc-gateway/internal/adapters/ports"
	"github.com/kevin07696/ufc-gateway/internal/config"
	"github.com/kevin07696/ufc-gateway/internal/testutil/fixtures"
	"github.com/kevin07696/ufc-gateway/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// executeCLI runs ufcctl with args against adapter and returns stdout
func executeCLI(t *testing.T, adapter ports.MerchantHandlerAdapter, args ...string) (string, error) {
	t.Helper()
	t.Setenv("UFC_CONFIG_FILE", "")
	t.Setenv("SECRET_MANAGER", "")

	opts := &rootOptions{
		logger: zap.NewNop(),
		newAdapter: func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ports.MerchantHandlerAdapter, error) {
			return adapter, nil
		},
	}

	var out bytes.Buffer
	cmd := newRootCmd(opts)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func newMockAdapter() *mocks.MockMerchantHandler {
	m := new(mocks.MockMerchantHandler)
	m.On("Session").Return(ports.Session{Currency: 981}).Maybe()
	return m
}

func TestRequestCommand(t *testing.T) {
	adapter := newMockAdapter()
	adapter.On("Request", mock.Anything, mock.MatchedBy(func(req *ports.PaymentRequest) bool {
		return req.Kind == ports.PaymentKindPreAuth &&
			req.Amount == 1050 &&
			req.IP == "10.0.0.1" &&
			req.Description == "order-1" &&
			req.Language == ports.LanguageEnglish
	})).Return(&ports.PaymentRequestResponse{
		TransactionID: fixtures.StringPtr("abc="),
		URL:           fixtures.StringPtr("https://ecommerce.ufc.ge/ecomm2/ClientHandler?trans_id=abc%3D"),
	}, nil)

	out, err := executeCLI(t, adapter, "request", "--preauth", "--amount", "10.50", "--ip", "10.0.0.1", "-d", "order-1", "-l", "en")
	require.NoError(t, err)

	var got ports.PaymentRequestResponse
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotNil(t, got.TransactionID)
	assert.Equal(t, "abc=", *got.TransactionID)
	adapter.AssertExpectations(t)
}

func TestRequestCommand_InvalidAmount(t *testing.T) {
	adapter := newMockAdapter()

	_, err := executeCLI(t, adapter, "request", "--amount", "10.505")
	require.Error(t, err)
	adapter.AssertNotCalled(t, "Request", mock.Anything, mock.Anything)
}

func TestRequestCommand_MissingAmount(t *testing.T) {
	_, err := executeCLI(t, newMockAdapter(), "request")
	assert.Error(t, err)
}

func TestAuthorizeCommand_ResultCode(t *testing.T) {
	adapter := newMockAdapter()
	adapter.On("Authorize", mock.Anything, mock.MatchedBy(func(req *ports.AuthorizeRequest) bool {
		return req.TransactionID == "tx-1" && req.Amount == 500 && req.Currency == 840
	})).Return(&ports.AuthorizeResponse{
		Result: ports.Result{Status: ports.StatusFailed, Code: fixtures.StringPtr("116")},
	}, nil)

	out, err := executeCLI(t, adapter, "authorize", "-t", "tx-1", "--amount", "5", "--currency", "840")
	require.NoError(t, err)

	var got struct {
		ResultCode struct {
			Category   string
			IsDeclined bool
		} `json:"result_code"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "insufficient_funds", got.ResultCode.Category)
	assert.True(t, got.ResultCode.IsDeclined)
}

func TestStatusCommand(t *testing.T) {
	adapter := newMockAdapter()
	adapter.On("Status", mock.Anything, &ports.StatusRequest{TransactionID: "tx-1", IP: "127.0.0.1"}).
		Return(&ports.StatusResponse{
			Result:       ports.Result{Status: ports.StatusOK, Code: fixtures.StringPtr("000")},
			ThreeDSecure: ports.ThreeDSecureAuthenticated,
		}, nil)

	out, err := executeCLI(t, adapter, "status", "--trans-id", "tx-1")
	require.NoError(t, err)
	assert.Contains(t, out, `"ThreeDSecure": "authenticated"`)
	adapter.AssertExpectations(t)
}

func TestReverseAndRefundCommands(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantAmount *int64
	}{
		{name: "reverse full", args: []string{"reverse", "-t", "tx-1"}},
		{name: "reverse partial", args: []string{"reverse", "-t", "tx-1", "-a", "2.5"}, wantAmount: fixtures.Int64Ptr(250)},
		{name: "refund full", args: []string{"refund", "-t", "tx-1"}},
		{name: "refund partial in JPY", args: []string{"refund", "-t", "tx-1", "-a", "300", "--currency", "392"}, wantAmount: fixtures.Int64Ptr(300)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := newMockAdapter()
			matches := func(amount *int64) bool {
				if tt.wantAmount == nil {
					return amount == nil
				}
				return amount != nil && *amount == *tt.wantAmount
			}
			adapter.On("Reverse", mock.Anything, mock.MatchedBy(func(req *ports.ReverseRequest) bool {
				return req.TransactionID == "tx-1" && matches(req.Amount)
			})).Return(&ports.ReverseResponse{Result: ports.Result{Status: ports.StatusReversed}}, nil).Maybe()
			adapter.On("Refund", mock.Anything, mock.MatchedBy(func(req *ports.RefundRequest) bool {
				return req.TransactionID == "tx-1" && matches(req.Amount)
			})).Return(&ports.RefundResponse{Result: ports.Result{Status: ports.StatusOK}}, nil).Maybe()

			_, err := executeCLI(t, adapter, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, 1, countNonSession(adapter))
		})
	}
}

// countNonSession counts gateway calls, ignoring Session lookups for the currency
func countNonSession(m *mocks.MockMerchantHandler) int {
	n := 0
	for _, c := range m.Calls {
		if c.Method != "Session" {
			n++
		}
	}
	return n
}

func TestBatchCommand(t *testing.T) {
	adapter := newMockAdapter()
	adapter.On("Batch", mock.Anything, &ports.BatchRequest{IP: "127.0.0.1"}).Return(&ports.BatchResponse{
		Result: ports.Result{Status: ports.StatusOK, Code: fixtures.StringPtr("500")},
		Transactions: ports.Totals{
			Credit:      fixtures.Int64Ptr(2),
			TotalCredit: fixtures.Int64Ptr(4500),
		},
	}, nil)

	out, err := executeCLI(t, adapter, "batch")
	require.NoError(t, err)

	var got batchView
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotNil(t, got.Transactions.TotalCredit)
	assert.Equal(t, "45.00", *got.Transactions.TotalCredit)
	assert.Nil(t, got.Transactions.TotalDebit)
	require.NotNil(t, got.ResultCode)
	assert.Equal(t, "500", got.ResultCode.Code)
}

func TestRegisterCommand(t *testing.T) {
	adapter := newMockAdapter()
	adapter.On("Register", mock.Anything, mock.MatchedBy(func(req *ports.RegisterRequest) bool {
		return req.Kind == ports.RegisterKindPreAuth &&
			req.Amount == nil &&
			req.Expiry == "1228" &&
			req.Token != nil && *req.Token == "merchant-token-42"
	})).Return(&ports.RegisterResponse{TransactionID: fixtures.StringPtr("reg=")}, nil)

	_, err := executeCLI(t, adapter, "register", "--preauth", "--expiry", "1228", "--token", "merchant-token-42")
	require.NoError(t, err)
	adapter.AssertExpectations(t)
}

func TestRegisterCommand_PreAuthKeepsAmount(t *testing.T) {
	adapter := newMockAdapter()
	adapter.On("Register", mock.Anything, mock.MatchedBy(func(req *ports.RegisterRequest) bool {
		return req.Kind == ports.RegisterKindPreAuth &&
			req.Amount != nil && *req.Amount == 500
	})).Return(&ports.RegisterResponse{TransactionID: fixtures.StringPtr("reg=")}, nil)

	_, err := executeCLI(t, adapter, "register", "--preauth", "--amount", "5", "--expiry", "1228")
	require.NoError(t, err)
	adapter.AssertExpectations(t)
}

func TestChargeAndCreditCommands(t *testing.T) {
	adapter := newMockAdapter()
	adapter.On("Charge", mock.Anything, mock.MatchedBy(func(req *ports.ChargeRequest) bool {
		return req.Token == "merchant-token-42" && req.Amount == 1999
	})).Return(&ports.ChargeResponse{Result: ports.Result{Status: ports.StatusOK}}, nil)
	adapter.On("Credit", mock.Anything, &ports.CreditRequest{TransactionID: "tx-9", Amount: 100}).
		Return(&ports.CreditResponse{Result: ports.Result{Status: ports.StatusOK}}, nil)

	_, err := executeCLI(t, adapter, "charge", "--token", "merchant-token-42", "-a", "19.99")
	require.NoError(t, err)

	_, err = executeCLI(t, adapter, "credit", "-t", "tx-9", "-a", "1")
	require.NoError(t, err)

	adapter.AssertExpectations(t)
}

func TestCommandPropagatesAdapterError(t *testing.T) {
	adapter := newMockAdapter()
	transportErr := errors.New("failed to send request: connection refused")
	adapter.On("Status", mock.Anything, mock.Anything).Return(nil, transportErr)

	_, err := executeCLI(t, adapter, "status", "-t", "tx-1")
	assert.ErrorIs(t, err, transportErr)
}

func TestResultCodeCommand(t *testing.T) {
	out, err := executeCLI(t, newMockAdapter(), "result-code", "000")
	require.NoError(t, err)
	assert.Contains(t, out, `"IsApproved": true`)
}

func TestInvalidConfig(t *testing.T) {
	t.Setenv("SECRET_MANAGER", "keychain")

	opts := &rootOptions{logger: zap.NewNop(), newAdapter: func(context.Context, *config.Config, *zap.Logger) (ports.MerchantHandlerAdapter, error) {
		t.Fatal("adapter must not be built")
		return nil, nil
	}}
	cmd := newRootCmd(opts)
	cmd.SetArgs([]string{"batch"})
	cmd.SetOut(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}
