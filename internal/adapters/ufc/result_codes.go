package ufc

import (
	pkgerrors "github.com/kevin07696/ufc-gateway/pkg/errors"
)

// ResultCodeInfo contains detailed information about a RESULT_CODE
type ResultCodeInfo struct {
	Code        string
	Description string
	IsApproved  bool
	IsDeclined  bool
	IsRetriable bool
	Category    pkgerrors.ErrorCategory
	UserMessage string
}

// Result codes documented for the merchant handler
var resultCodes = map[string]ResultCodeInfo{
	// Approvals
	"000": {
		Code:        "000",
		Description: "Approved",
		IsApproved:  true,
		Category:    pkgerrors.CategoryApproved,
		UserMessage: "Payment successful",
	},
	"001": {
		Code:        "001",
		Description: "Approved, honour with identification",
		IsApproved:  true,
		Category:    pkgerrors.CategoryApproved,
		UserMessage: "Payment successful",
	},
	"002": {
		Code:        "002",
		Description: "Approved for partial amount",
		IsApproved:  true,
		Category:    pkgerrors.CategoryApproved,
		UserMessage: "Payment partially approved",
	},
	"003": {
		Code:        "003",
		Description: "Approved for VIP",
		IsApproved:  true,
		Category:    pkgerrors.CategoryApproved,
		UserMessage: "Payment successful",
	},
	"004": {
		Code:        "004",
		Description: "Approved, update track 3",
		IsApproved:  true,
		Category:    pkgerrors.CategoryApproved,
		UserMessage: "Payment successful",
	},
	"005": {
		Code:        "005",
		Description: "Approved, account type specified by card issuer",
		IsApproved:  true,
		Category:    pkgerrors.CategoryApproved,
		UserMessage: "Payment successful",
	},
	"006": {
		Code:        "006",
		Description: "Approved for partial amount, account type specified by card issuer",
		IsApproved:  true,
		Category:    pkgerrors.CategoryApproved,
		UserMessage: "Payment partially approved",
	},
	"007": {
		Code:        "007",
		Description: "Approved, update ICC",
		IsApproved:  true,
		Category:    pkgerrors.CategoryApproved,
		UserMessage: "Payment successful",
	},

	// Declines
	"100": {
		Code:        "100",
		Description: "Decline (general, no comments)",
		IsDeclined:  true,
		Category:    pkgerrors.CategoryDeclined,
		UserMessage: "Transaction declined. Please try a different payment method.",
	},
	"101": {
		Code:        "101",
		Description: "Decline, expired card",
		IsDeclined:  true,
		Category:    pkgerrors.CategoryExpiredCard,
		UserMessage: "Your card has expired. Please use a different payment method.",
	},
	"102": {
		Code:        "102",
		Description: "Decline, suspected fraud",
		IsDeclined:  true,
		Category:    pkgerrors.CategoryFraud,
		UserMessage: "Transaction declined. Please contact your card issuer.",
	},
	"104": {
		Code:        "104",
		Description: "Decline, restricted card",
		IsDeclined:  true,
		Category:    pkgerrors.CategoryInvalidCard,
		UserMessage: "This card cannot be used for this purchase.",
	},
	"107": {
		Code:        "107",
		Description: "Decline, refer to card issuer",
		IsDeclined:  true,
		Category:    pkgerrors.CategoryDeclined,
		UserMessage: "Transaction declined. Please contact your card issuer.",
	},
	"110": {
		Code:        "110",
		Description: "Decline, invalid amount",
		IsDeclined:  true,
		Category:    pkgerrors.CategoryInvalidRequest,
		UserMessage: "Invalid amount.",
	},
	"111": {
		Code:        "111",
		Description: "Decline, invalid card number",
		IsDeclined:  true,
		Category:    pkgerrors.CategoryInvalidCard,
		UserMessage: "Invalid card number. Please check your card details.",
	},
	"116": {
		Code:        "116",
		Description: "Decline, not sufficient funds",
		IsDeclined:  true,
		IsRetriable: true,
		Category:    pkgerrors.CategoryInsufficientFunds,
		UserMessage: "Insufficient funds. Please use a different payment method or add funds to your account.",
	},
	"118": {
		Code:        "118",
		Description: "Decline, no card record",
		IsDeclined:  true,
		Category:    pkgerrors.CategoryInvalidCard,
		UserMessage: "Invalid card number. Please check your card details.",
	},
	"119": {
		Code:        "119",
		Description: "Decline, transaction not permitted to cardholder",
		IsDeclined:  true,
		Category:    pkgerrors.CategoryDeclined,
		UserMessage: "This card cannot be used for this purchase.",
	},
	"120": {
		Code:        "120",
		Description: "Decline, transaction not permitted to terminal",
		IsDeclined:  true,
		Category:    pkgerrors.CategoryDeclined,
		UserMessage: "Transaction declined. Please try a different payment method.",
	},
	"121": {
		Code:        "121",
		Description: "Decline, exceeds withdrawal amount limit",
		IsDeclined:  true,
		IsRetriable: true,
		Category:    pkgerrors.CategoryInsufficientFunds,
		UserMessage: "Amount exceeds your card limit.",
	},
	"123": {
		Code:        "123",
		Description: "Decline, exceeds withdrawal frequency limit",
		IsDeclined:  true,
		IsRetriable: true,
		Category:    pkgerrors.CategoryDeclined,
		UserMessage: "Card usage limit reached. Please try again later.",
	},
	"129": {
		Code:        "129",
		Description: "Decline, suspected counterfeit card",
		IsDeclined:  true,
		Category:    pkgerrors.CategoryFraud,
		UserMessage: "Transaction declined. Please contact your card issuer.",
	},

	// Pick-up
	"208": {
		Code:        "208",
		Description: "Pick-up, lost card",
		IsDeclined:  true,
		Category:    pkgerrors.CategoryFraud,
		UserMessage: "Transaction declined. Please contact your card issuer.",
	},
	"209": {
		Code:        "209",
		Description: "Pick-up, stolen card",
		IsDeclined:  true,
		Category:    pkgerrors.CategoryFraud,
		UserMessage: "Transaction declined. Please contact your card issuer.",
	},

	// Reversal
	"400": {
		Code:        "400",
		Description: "Accepted (for reversal)",
		IsApproved:  true,
		Category:    pkgerrors.CategoryApproved,
		UserMessage: "Payment reversed",
	},

	// End-of-day reconciliation
	"500": {
		Code:        "500",
		Description: "Reconciled, in balance",
		IsApproved:  true,
		Category:    pkgerrors.CategoryReconciliation,
		UserMessage: "Business day closed",
	},
	"501": {
		Code:        "501",
		Description: "Reconciled, out of balance",
		Category:    pkgerrors.CategoryReconciliation,
		UserMessage: "Business day closed with differences",
	},
	"502": {
		Code:        "502",
		Description: "Amount not reconciled, totals provided",
		Category:    pkgerrors.CategoryReconciliation,
		UserMessage: "Business day closed with differences",
	},
	"503": {
		Code:        "503",
		Description: "Totals for reconciliation not available",
		IsRetriable: true,
		Category:    pkgerrors.CategoryReconciliation,
		UserMessage: "Totals not available",
	},
	"504": {
		Code:        "504",
		Description: "Not reconciled, totals provided",
		Category:    pkgerrors.CategoryReconciliation,
		UserMessage: "Business day closed with differences",
	},

	// System
	"904": {
		Code:        "904",
		Description: "Decline reason message: format error",
		IsDeclined:  true,
		Category:    pkgerrors.CategoryInvalidRequest,
		UserMessage: "Invalid request.",
	},
	"907": {
		Code:        "907",
		Description: "Decline reason message: card issuer or switch inoperative",
		IsDeclined:  true,
		IsRetriable: true,
		Category:    pkgerrors.CategorySystemError,
		UserMessage: "Card issuer unavailable. Please try again in a few moments.",
	},
	"909": {
		Code:        "909",
		Description: "Decline reason message: system malfunction",
		IsDeclined:  true,
		IsRetriable: true,
		Category:    pkgerrors.CategorySystemError,
		UserMessage: "System error. Please try again in a few moments.",
	},
	"911": {
		Code:        "911",
		Description: "Decline reason message: card issuer timed out",
		IsDeclined:  true,
		IsRetriable: true,
		Category:    pkgerrors.CategorySystemError,
		UserMessage: "Card issuer unavailable. Please try again in a few moments.",
	},
	"913": {
		Code:        "913",
		Description: "Decline reason message: duplicate transmission",
		IsDeclined:  true,
		Category:    pkgerrors.CategoryInvalidRequest,
		UserMessage: "Duplicate transaction.",
	},
	"914": {
		Code:        "914",
		Description: "Decline reason message: not able to trace back to original transaction",
		IsDeclined:  true,
		Category:    pkgerrors.CategoryInvalidRequest,
		UserMessage: "Original transaction not found.",
	},
	"921": {
		Code:        "921",
		Description: "Decline reason message: try again",
		IsDeclined:  true,
		IsRetriable: true,
		Category:    pkgerrors.CategorySystemError,
		UserMessage: "System error. Please try again in a few moments.",
	},
	"940": {
		Code:        "940",
		Description: "Decline, banned by fraud management",
		IsDeclined:  true,
		Category:    pkgerrors.CategoryFraud,
		UserMessage: "Transaction declined. Please contact your card issuer.",
	},
	"950": {
		Code:        "950",
		Description: "Decline reason message: violation of business arrangement",
		IsDeclined:  true,
		Category:    pkgerrors.CategoryDeclined,
		UserMessage: "Transaction declined. Please try a different payment method.",
	},
}

// LookupResultCode retrieves information for a gateway RESULT_CODE.
// Undocumented codes are classified by their leading digit.
func LookupResultCode(code string) ResultCodeInfo {
	if info, exists := resultCodes[code]; exists {
		return info
	}

	info := ResultCodeInfo{
		Code:        code,
		Description: "Unknown result code",
		Category:    pkgerrors.CategoryUnknown,
		UserMessage: "Transaction status unknown. Please contact support.",
	}
	if len(code) != 3 || code[0] < '0' || code[0] > '9' {
		return info
	}

	switch code[0] {
	case '0':
		info.IsApproved = true
		info.Category = pkgerrors.CategoryApproved
		info.UserMessage = "Payment successful"
	case '1':
		info.IsDeclined = true
		info.Category = pkgerrors.CategoryDeclined
		info.UserMessage = "Transaction declined. Please try a different payment method."
	case '2':
		info.IsDeclined = true
		info.Category = pkgerrors.CategoryFraud
		info.UserMessage = "Transaction declined. Please contact your card issuer."
	case '5':
		info.Category = pkgerrors.CategoryReconciliation
	case '9':
		info.IsDeclined = true
		info.Category = pkgerrors.CategorySystemError
		info.UserMessage = "System error. Please try again in a few moments."
	}
	return info
}

// LookupResult classifies a decoded result. A missing code yields CategoryUnknown.
func LookupResult(code *string) ResultCodeInfo {
	if code == nil {
		return LookupResultCode("")
	}
	return LookupResultCode(*code)
}
