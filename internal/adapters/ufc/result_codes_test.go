package ufc

import (
	"testing"

	"github.com/kevin07696/ufc-gateway/internal/testutil/fixtures"
	pkgerrors "github.com/kevin07696/ufc-gateway/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestLookupResultCode(t *testing.T) {
	tests := []struct {
		name            string
		code            string
		wantIsApproved  bool
		wantIsDeclined  bool
		wantIsRetriable bool
		wantCategory    pkgerrors.ErrorCategory
	}{
		{
			name:           "approved 000",
			code:           "000",
			wantIsApproved: true,
			wantCategory:   pkgerrors.CategoryApproved,
		},
		{
			name:            "insufficient funds 116",
			code:            "116",
			wantIsDeclined:  true,
			wantIsRetriable: true,
			wantCategory:    pkgerrors.CategoryInsufficientFunds,
		},
		{
			name:           "expired card 101",
			code:           "101",
			wantIsDeclined: true,
			wantCategory:   pkgerrors.CategoryExpiredCard,
		},
		{
			name:           "invalid card 111",
			code:           "111",
			wantIsDeclined: true,
			wantCategory:   pkgerrors.CategoryInvalidCard,
		},
		{
			name:           "fraud 102",
			code:           "102",
			wantIsDeclined: true,
			wantCategory:   pkgerrors.CategoryFraud,
		},
		{
			name:           "reversal accepted 400",
			code:           "400",
			wantIsApproved: true,
			wantCategory:   pkgerrors.CategoryApproved,
		},
		{
			name:           "reconciled in balance 500",
			code:           "500",
			wantIsApproved: true,
			wantCategory:   pkgerrors.CategoryReconciliation,
		},
		{
			name:         "reconciled out of balance 501",
			code:         "501",
			wantCategory: pkgerrors.CategoryReconciliation,
		},
		{
			name:           "format error 904",
			code:           "904",
			wantIsDeclined: true,
			wantCategory:   pkgerrors.CategoryInvalidRequest,
		},
		{
			name:            "issuer timed out 911",
			code:            "911",
			wantIsDeclined:  true,
			wantIsRetriable: true,
			wantCategory:    pkgerrors.CategorySystemError,
		},
		{
			name:           "undocumented decline 134",
			code:           "134",
			wantIsDeclined: true,
			wantCategory:   pkgerrors.CategoryDeclined,
		},
		{
			name:           "undocumented system 999",
			code:           "999",
			wantIsDeclined: true,
			wantCategory:   pkgerrors.CategorySystemError,
		},
		{
			name:         "garbage",
			code:         "abc",
			wantCategory: pkgerrors.CategoryUnknown,
		},
		{
			name:         "empty",
			code:         "",
			wantCategory: pkgerrors.CategoryUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := LookupResultCode(tt.code)

			assert.Equal(t, tt.code, info.Code)
			assert.Equal(t, tt.wantIsApproved, info.IsApproved)
			assert.Equal(t, tt.wantIsDeclined, info.IsDeclined)
			assert.Equal(t, tt.wantIsRetriable, info.IsRetriable)
			assert.Equal(t, tt.wantCategory, info.Category)
			assert.NotEmpty(t, info.UserMessage)
		})
	}
}

func TestResultCodeTableIsConsistent(t *testing.T) {
	for code, info := range resultCodes {
		assert.Equal(t, code, info.Code)
		assert.False(t, info.IsApproved && info.IsDeclined, "code %s is both approved and declined", code)
		assert.NotEmpty(t, info.Description)
		assert.NotEmpty(t, info.UserMessage)
	}
}

func TestLookupResult(t *testing.T) {
	assert.Equal(t, pkgerrors.CategoryUnknown, LookupResult(nil).Category)
	assert.Equal(t, pkgerrors.CategoryInsufficientFunds, LookupResult(fixtures.StringPtr("116")).Category)
}
