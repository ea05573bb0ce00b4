package ufc

import (
	"testing"

	"github.com/kevin07696/ufc-gateway/internal/testutil/fixtures"
	"github.com/stretchr/testify/assert"
)

// TestParamsEncode tests query construction order and omission
func TestParamsEncode(t *testing.T) {
	tests := []struct {
		name   string
		params *Params
		want   string
	}{
		{
			name:   "empty",
			params: NewParams(),
			want:   "",
		},
		{
			name: "unset values are omitted",
			params: NewParams().
				Set("command", "v").
				SetInt("amount", 500).
				SetOptional("description", nil),
			want: "command=v&amount=500",
		},
		{
			name: "empty string is still sent",
			params: NewParams().
				Set("command", "v").
				Set("description", ""),
			want: "command=v&description=",
		},
		{
			name: "insertion order is preserved",
			params: NewParams().
				Set("z", "1").
				Set("a", "2").
				Set("m", "3"),
			want: "z=1&a=2&m=3",
		},
		{
			name: "optional values",
			params: NewParams().
				Set("command", "r").
				SetOptionalInt("amount", fixtures.Int64Ptr(250)).
				SetOptional("biller_client_id", fixtures.StringPtr("tok")).
				SetOptionalInt("missing", nil),
			want: "command=r&amount=250&biller_client_id=tok",
		},
		{
			name: "values are written raw",
			params: NewParams().
				Set("trans_id", "rHcPZ0KDb/6nR1DqA7yCGMoE3b0="),
			want: "trans_id=rHcPZ0KDb/6nR1DqA7yCGMoE3b0=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.params.Encode())
			assert.Equal(t, tt.want, tt.params.String())
		})
	}
}

// TestParamsGet tests reading back defined values
func TestParamsGet(t *testing.T) {
	params := NewParams().
		Set("command", "c").
		SetOptional("token", nil)

	v, ok := params.Get("command")
	assert.True(t, ok)
	assert.Equal(t, "c", v)

	_, ok = params.Get("token")
	assert.False(t, ok, "unset values are not defined")

	_, ok = params.Get("missing")
	assert.False(t, ok)
}

// TestEscapeRequestTarget tests that only illegal request target bytes are escaped
func TestEscapeRequestTarget(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "plain query unchanged",
			query: "command=v&amount=500&currency=981",
			want:  "command=v&amount=500&currency=981",
		},
		{
			name:  "base64 separators stay raw",
			query: "trans_id=ab+c/d==",
			want:  "trans_id=ab+c/d==",
		},
		{
			name:  "space",
			query: "description=coffee beans",
			want:  "description=coffee%20beans",
		},
		{
			name:  "reserved characters",
			query: `description=a"b<c>d#e`,
			want:  "description=a%22b%3Cc%3Ed%23e",
		},
		{
			name:  "existing escapes kept",
			query: "description=a%20b",
			want:  "description=a%20b",
		},
		{
			name:  "bare percent escaped",
			query: "description=50%",
			want:  "description=50%25",
		},
		{
			name:  "non ascii",
			query: "description=ჩაი",
			want:  "description=%E1%83%A9%E1%83%90%E1%83%98",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeRequestTarget(tt.query))
		})
	}
}
