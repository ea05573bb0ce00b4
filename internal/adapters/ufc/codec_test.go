package ufc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDecode tests line parsing of merchant handler replies
func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		body string
		want map[string]*string
	}{
		{
			name: "empty body",
			body: "",
			want: map[string]*string{},
		},
		{
			name: "whitespace only",
			body: " \r\n\n ",
			want: map[string]*string{},
		},
		{
			name: "crlf lines",
			body: "RESULT: OK\r\nRESULT_CODE: 000\r\n",
			want: map[string]*string{
				KeyResult:     strPtr("OK"),
				KeyResultCode: strPtr("000"),
			},
		},
		{
			name: "split on first colon",
			body: "error: wrong parameter: amount",
			want: map[string]*string{
				KeyError: strPtr("wrong parameter: amount"),
			},
		},
		{
			name: "line without colon keeps key without value",
			body: "RESULT: OK\nSOMETHING ODD",
			want: map[string]*string{
				KeyResult:      strPtr("OK"),
				"somethingOdd": nil,
			},
		},
		{
			name: "blank lines and empty labels skipped",
			body: "\nTRANSACTION_ID: abc=\n\n: orphan\n",
			want: map[string]*string{
				KeyTransactionID: strPtr("abc="),
			},
		},
		{
			name: "empty value kept",
			body: "RRN:",
			want: map[string]*string{
				KeyRRN: strPtr(""),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(tt.body)
			assert.Equal(t, Fields(tt.want), got)
		})
	}
}

// TestNormalizeLabel tests that label spelling does not change the key
func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"RESULT", KeyResult},
		{"Result", KeyResult},
		{"result", KeyResult},
		{" RESULT ", KeyResult},
		{"RESULT_CODE", KeyResultCode},
		{"Result Code", KeyResultCode},
		{"result-code", KeyResultCode},
		{"RESULT__CODE", KeyResultCode},
		{"3DSECURE", KeyThreeDSecure},
		{"3DSecure", KeyThreeDSecure},
		{"TRANSACTION_ID", KeyTransactionID},
		{"REFUND_TRANS_ID", KeyRefundTransactionID},
		{"FLD_074", KeyCreditCount},
		{"fld_089", KeyDebitReversalTotal},
		{"ResultCode", KeyResultCode},
		{"resultCode", KeyResultCode},
		{"RESULT CODE", KeyResultCode},
		{"TransactionId", KeyTransactionID},
		{"transactionID", KeyTransactionID},
		{"ReccPmntExpiry", KeyRecurringExpiry},
		{"RefundTransId", KeyRefundTransactionID},
		{"Fld074", KeyCreditCount},
		{"FLD086", KeyCreditTotal},
		{"SOME_NEW_FIELD", "someNewField"},
		{"SomeNewField", "someNewField"},
		{"Some New Field", "someNewField"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLabel(tt.label))
		})
	}
}

// TestKnownLabelsDoNotCollide tests that every known label owns a distinct key
// and that no fallback spelling of another known label lands on it
func TestKnownLabelsDoNotCollide(t *testing.T) {
	seen := make(map[string]string, len(knownLabels))
	for label, key := range knownLabels {
		require.Equal(t, label, canonicalLabel(label), "table entries must be canonical")
		if other, ok := seen[key]; ok {
			t.Fatalf("labels %q and %q both map to %q", label, other, key)
		}
		seen[key] = label
	}

	for label, key := range knownLabels {
		fallback := camelCase(label)
		if owner, ok := seen[fallback]; ok && owner != label {
			t.Errorf("fallback of %q collides with key %q of %q", label, key, owner)
		}
	}
}

// TestFieldsAccessors tests typed reads from decoded fields
func TestFieldsAccessors(t *testing.T) {
	fields := Decode("FLD_074: 12\nFLD_075: abc\nFLD_076:  7 \nFLD_077: 12abc\nFLD_086: -40\nFLD_087\n")

	assert.Equal(t, int64(12), *fields.Int(KeyCreditCount))
	assert.Nil(t, fields.Int(KeyCreditReversalCount), "non-numeric is unknown")
	assert.Equal(t, int64(7), *fields.Int(KeyDebitCount))
	assert.Nil(t, fields.Int(KeyDebitReversalCount), "partial numbers are rejected")
	assert.Equal(t, int64(-40), *fields.Int(KeyCreditTotal))
	assert.Nil(t, fields.Int(KeyCreditReversalTotal), "label without value")
	assert.Nil(t, fields.Int(KeyDebitTotal), "absent")

	_, ok := fields.Get(KeyCreditReversalTotal)
	assert.False(t, ok)

	v := fields.Value(KeyCreditCount)
	require.NotNil(t, v)
	*v = "changed"
	assert.Equal(t, int64(12), *fields.Int(KeyCreditCount), "Value returns a copy")
}

// TestPooledFieldsAreCleared tests that pooled maps do not leak previous replies
func TestPooledFieldsAreCleared(t *testing.T) {
	fields := getFields()
	decodeInto(fields, "CARD_NUMBER: 4***********1111\n")
	putFields(fields)
	assert.Empty(t, fields)

	again := getFields()
	defer putFields(again)
	assert.Empty(t, again)
}

func strPtr(s string) *string {
	return &s
}

// TestPooledBuffers tests that reused buffers start empty
func TestPooledBuffers(t *testing.T) {
	buf := getBuffer()
	buf.WriteString("command=v&amount=100")
	putBuffer(buf)
	assert.Zero(t, buf.Len())
	assert.Positive(t, buf.Cap(), "Reset keeps capacity")

	again := getBuffer()
	assert.Zero(t, again.Len())
	putBuffer(again)

	first := NewParams().Set(paramCommand, "v").Set(paramAmount, "100").Encode()
	second := NewParams().Set(paramCommand, "c").Encode()
	assert.Equal(t, "command=v&amount=100", first)
	assert.Equal(t, "command=c", second)
}
