package ports

import "context"

// Command is the single-character operation code understood by the UFC merchant handler
type Command string

const (
	CommandSale             Command = "v" // Request: single message (auth + capture)
	CommandPreAuth          Command = "a" // Request: dual message, reserve funds only
	CommandCapture          Command = "t" // Complete a pre-authorized transaction
	CommandStatus           Command = "c" // Query transaction result
	CommandReverse          Command = "r" // Reverse before the business day is closed
	CommandRefund           Command = "k" // Refund after the business day is closed
	CommandCloseDay         Command = "b" // End-of-day batch
	CommandRegister         Command = "z" // Register card with an immediate payment
	CommandRegisterPreAuth  Command = "p" // Register card with a zero-amount authorization
	CommandChargeRegistered Command = "e" // Charge a registered card by token
	CommandCredit           Command = "g" // Send funds to a previously charged card
)

// PaymentKind selects the command for a payment request
type PaymentKind int

const (
	PaymentKindSale PaymentKind = iota
	PaymentKindPreAuth
)

// RegisterKind selects the command for a card registration
type RegisterKind int

const (
	RegisterKindImmediate RegisterKind = iota
	RegisterKindPreAuth
)

// Language of the hosted card page
type Language string

const (
	LanguageGeorgian    Language = "ge"
	LanguageGeorgianISO Language = "ka"
	LanguageEnglish     Language = "en"
	LanguageRussian     Language = "ru"
)

// ResultStatus is the normalized RESULT field. StatusUnknown means the
// gateway sent no RESULT; a value outside the operation's set is StatusFailed.
type ResultStatus string

const (
	StatusUnknown      ResultStatus = ""
	StatusOK           ResultStatus = "ok"
	StatusFailed       ResultStatus = "failed"
	StatusCreated      ResultStatus = "created"
	StatusPending      ResultStatus = "pending"
	StatusDeclined     ResultStatus = "declined"
	StatusReversed     ResultStatus = "reversed"
	StatusAutoReversed ResultStatus = "autoreversed"
	StatusTimeout      ResultStatus = "timeout"
)

// ThreeDSecureStatus is the normalized 3DSECURE field of a status response
type ThreeDSecureStatus string

const (
	ThreeDSecureUnknown         ThreeDSecureStatus = ""
	ThreeDSecureAuthenticated   ThreeDSecureStatus = "authenticated"
	ThreeDSecureDeclined        ThreeDSecureStatus = "declined"
	ThreeDSecureNotParticipated ThreeDSecureStatus = "notparticipated"
	ThreeDSecureNoRange         ThreeDSecureStatus = "no_range"
	ThreeDSecureAttempted       ThreeDSecureStatus = "attempted"
	ThreeDSecureUnavailable     ThreeDSecureStatus = "unavailable"
	ThreeDSecureError           ThreeDSecureStatus = "error"
	ThreeDSecureSystemError     ThreeDSecureStatus = "syserror"
	ThreeDSecureUnknownScheme   ThreeDSecureStatus = "unknownscheme"
	ThreeDSecureFailed          ThreeDSecureStatus = "failed"
)

// Result is the outcome block shared by most responses.
// Pointer fields are nil when the gateway did not supply them.
type Result struct {
	Status ResultStatus
	Code   *string // RESULT_CODE, e.g. "000" approved, "116" insufficient funds
	Text   *string // RESULT exactly as sent
	Error  *string // "error:" line, present when the gateway rejected the command
}

// Card holds the card details the gateway echoes back
type Card struct {
	Mask   *string // Masked PAN, e.g. 4***********1111
	Token  *string // RECC_PMNT_ID of a registered card
	Expiry *string // RECC_PMNT_EXPIRY (MMYY)
}

// Totals is one half of the end-of-day batch counters.
// A nil counter is unknown, not zero.
type Totals struct {
	Credit      *int64 // Number of credit transactions
	TotalCredit *int64 // Sum of credit transactions (minor units)
	Debit       *int64 // Number of debit transactions
	TotalDebit  *int64 // Sum of debit transactions (minor units)
}

// PaymentRequest starts a payment (commands v / a)
type PaymentRequest struct {
	Kind        PaymentKind
	IP          string // Cardholder IP address
	Amount      int64  // Minor units (e.g. 1000 = 10.00 GEL)
	Currency    int    // ISO 4217 numeric; 0 uses the session default
	Description string
	Language    Language // Empty uses "ge"
	Options     *SessionOptions
}

// PaymentRequestResponse carries the new transaction and the hosted page URL
type PaymentRequestResponse struct {
	TransactionID *string
	URL           *string // ClientHandler redirect, built locally
	Error         *string
}

// AuthorizeRequest completes a pre-authorization (command t).
// Amount may be less than or equal to the reserved amount.
type AuthorizeRequest struct {
	TransactionID string
	IP            string
	Amount        int64
	Currency      int
	Description   string
	Language      Language
	Options       *SessionOptions
}

// AuthorizeResponse is the capture outcome
type AuthorizeResponse struct {
	Result       Result
	RRN          *string
	ApprovalCode *string
	Card         Card
}

// StatusRequest queries a transaction (command c)
type StatusRequest struct {
	TransactionID string
	IP            string
	Options       *SessionOptions
}

// StatusResponse is the transaction state as the gateway reports it
type StatusResponse struct {
	Result       Result
	ThreeDSecure ThreeDSecureStatus
	RRN          *string
	ApprovalCode *string
	Card         Card
}

// ReverseRequest reverses a transaction before the day is closed (command r).
// A nil Amount reverses the full amount.
type ReverseRequest struct {
	TransactionID string
	IP            string
	Amount        *int64
	Options       *SessionOptions
}

// ReverseResponse is the reversal outcome
type ReverseResponse struct {
	Result Result
}

// RefundRequest refunds a transaction after the day is closed (command k).
// Partial refunds may be repeated up to the charged amount.
type RefundRequest struct {
	TransactionID string
	IP            string
	Amount        *int64
	Options       *SessionOptions
}

// RefundResponse is the refund outcome
type RefundResponse struct {
	Result              Result
	RefundTransactionID *string
}

// BatchRequest closes the business day (command b)
type BatchRequest struct {
	IP      string
	Options *SessionOptions
}

// BatchResponse carries the day's totals
type BatchResponse struct {
	Result       Result
	Transactions Totals
	Reversals    Totals
}

// RegisterRequest registers a card for later charges (commands z / p).
// RegisterKindPreAuth without an amount sends command p with amount 0; with
// a non-zero amount it is sent as z under the AUTH message type.
type RegisterRequest struct {
	Kind        RegisterKind
	IP          string
	Amount      *int64 // nil sends 0
	Currency    int
	Description string
	Language    Language
	Expiry      string  // MMYY; capped by the gateway at the card's own expiry
	Token       *string // Merchant token; the transaction id is used when nil
	Options     *SessionOptions
}

// RegisterResponse carries the registration transaction and hosted page URL
type RegisterResponse struct {
	TransactionID *string
	URL           *string
	Error         *string
}

// ChargeRequest charges a registered card (command e)
type ChargeRequest struct {
	Token       string
	IP          string
	Amount      int64
	Currency    int
	Description string
	Language    Language
	Options     *SessionOptions
}

// ChargeResponse is the charge outcome
type ChargeResponse struct {
	Result        Result
	TransactionID *string
	RRN           *string
	ApprovalCode  *string
}

// CreditRequest sends funds back to a previously charged card (command g)
type CreditRequest struct {
	TransactionID string
	Amount        int64
	Options       *SessionOptions
}

// CreditResponse is the credit outcome
type CreditResponse struct {
	Result              Result
	RefundTransactionID *string
}

// MerchantHandlerAdapter defines the port for the UFC merchant handler.
// Gateway declines are returned as ordinary responses; errors are reserved for
// transport failures and invalid request kinds.
type MerchantHandlerAdapter interface {
	Request(ctx context.Context, req *PaymentRequest) (*PaymentRequestResponse, error)
	Authorize(ctx context.Context, req *AuthorizeRequest) (*AuthorizeResponse, error)
	Status(ctx context.Context, req *StatusRequest) (*StatusResponse, error)
	Reverse(ctx context.Context, req *ReverseRequest) (*ReverseResponse, error)
	Refund(ctx context.Context, req *RefundRequest) (*RefundResponse, error)
	Batch(ctx context.Context, req *BatchRequest) (*BatchResponse, error)
	Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error)
	Charge(ctx context.Context, req *ChargeRequest) (*ChargeResponse, error)
	Credit(ctx context.Context, req *CreditRequest) (*CreditResponse, error)

	// Session returns a copy of the standing session configuration
	Session() Session
}
