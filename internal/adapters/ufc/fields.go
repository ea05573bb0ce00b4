package ufc

import (
	"strings"
	"unicode"
)

// Normalized keys of the merchant handler response labels
const (
	KeyTransactionID         = "transactionId"
	KeyResult                = "result"
	KeyResultCode            = "resultCode"
	KeyResultPS              = "resultPs"
	KeyRRN                   = "rrn"
	KeyApprovalCode          = "approvalCode"
	KeyCardNumber            = "cardNumber"
	KeyThreeDSecure          = "threeDSecure"
	KeyAAV                   = "aav"
	KeyRecurringID           = "reccPmntId"
	KeyRecurringExpiry       = "reccPmntExpiry"
	KeyRefundTransactionID   = "refundTransactionId"
	KeyMerchantTransactionID = "merchantTransactionId"
	KeyError                 = "error"
	KeyWarning               = "warning"

	// End-of-day batch counters
	KeyCreditCount         = "fld074"
	KeyCreditReversalCount = "fld075"
	KeyDebitCount          = "fld076"
	KeyDebitReversalCount  = "fld077"
	KeyCreditTotal         = "fld086"
	KeyCreditReversalTotal = "fld087"
	KeyDebitTotal          = "fld088"
	KeyDebitReversalTotal  = "fld089"
)

// knownLabels maps every documented gateway label, in canonical form, to its key
var knownLabels = map[string]string{
	"TRANSACTION_ID":      KeyTransactionID,
	"RESULT":              KeyResult,
	"RESULT_CODE":         KeyResultCode,
	"RESULT_PS":           KeyResultPS,
	"RRN":                 KeyRRN,
	"APPROVAL_CODE":       KeyApprovalCode,
	"CARD_NUMBER":         KeyCardNumber,
	"3DSECURE":            KeyThreeDSecure,
	"AAV":                 KeyAAV,
	"RECC_PMNT_ID":        KeyRecurringID,
	"RECC_PMNT_EXPIRY":    KeyRecurringExpiry,
	"REFUND_TRANS_ID":     KeyRefundTransactionID,
	"MRCH_TRANSACTION_ID": KeyMerchantTransactionID,
	"ERROR":               KeyError,
	"WARNING":             KeyWarning,
	"FLD_074":             KeyCreditCount,
	"FLD_075":             KeyCreditReversalCount,
	"FLD_076":             KeyDebitCount,
	"FLD_077":             KeyDebitReversalCount,
	"FLD_086":             KeyCreditTotal,
	"FLD_087":             KeyCreditReversalTotal,
	"FLD_088":             KeyDebitTotal,
	"FLD_089":             KeyDebitReversalTotal,
}

// NormalizeLabel maps a response label to its field key.
// Known labels resolve through the table regardless of case or separator
// style; anything else becomes lower camel case of its canonical words.
func NormalizeLabel(label string) string {
	canonical := canonicalLabel(label)
	if key, ok := knownLabels[canonical]; ok {
		return key
	}
	return camelCase(canonical)
}

// canonicalLabel upper-cases a label and joins its words with a single '_'.
// Words end at spaces, hyphens and underscores, at a lower-to-upper case
// change and where a letter is followed by a digit.
func canonicalLabel(label string) string {
	var sb strings.Builder
	sb.Grow(len(label) + 4)
	pendingSep := false
	var prev rune
	for _, r := range strings.TrimSpace(label) {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			pendingSep = sb.Len() > 0
			prev = 0
			continue
		}
		if sb.Len() > 0 && wordBoundary(prev, r) {
			pendingSep = true
		}
		if pendingSep {
			sb.WriteByte('_')
			pendingSep = false
		}
		sb.WriteRune(unicode.ToUpper(r))
		prev = r
	}
	return sb.String()
}

func wordBoundary(prev, r rune) bool {
	return (unicode.IsLower(prev) && unicode.IsUpper(r)) ||
		(unicode.IsLetter(prev) && unicode.IsDigit(r))
}

func camelCase(canonical string) string {
	words := strings.Split(canonical, "_")
	var sb strings.Builder
	sb.Grow(len(canonical))
	for i, w := range words {
		if w == "" {
			continue
		}
		lower := strings.ToLower(w)
		if i == 0 {
			sb.WriteString(lower)
			continue
		}
		runes := []rune(lower)
		runes[0] = unicode.ToUpper(runes[0])
		sb.WriteString(string(runes))
	}
	return sb.String()
}
