package ufc

import (
	"fmt"
	"strings"

	"github.com/kevin07696/ufc-gateway/internal/adapters/ports"
	pkgerrors "github.com/kevin07696/ufc-gateway/pkg/errors"
)

// Wire parameter names of the merchant handler
const (
	paramCommand      = "command"
	paramTransID      = "trans_id"
	paramClientIP     = "client_ip_addr"
	paramIP           = "ip" // close-day takes the bare name
	paramDescription  = "description"
	paramLanguage     = "language"
	paramCurrency     = "currency"
	paramAmount       = "amount"
	paramMsgType      = "msg_type"
	paramExpiry       = "perspayee_expiry"
	paramBillerClient = "biller_client_id"
	paramPerspayeeGen = "perspayee_gen"
)

// Message types sent with commands that open a transaction
const (
	msgTypeSingle   = "SMS"  // Single message: authorize and capture
	msgTypeDual     = "DMS"  // Dual message: authorize now, capture with command t
	msgTypeAuthOnly = "AUTH" // Zero-amount registration authorization
)

// operation is the definition of one merchant handler command: how a typed
// request becomes wire parameters and how decoded fields become a typed response.
// The decoded Fields never escape extract.
type operation[Req any, Resp any] struct {
	name    string
	build   func(req *Req, session ports.Session) (*Params, error)
	extract func(fields Fields) *Resp
	outcome func(resp *Resp) ports.Result // for logs and metrics
}

// definitions holds every operation supported by the adapter
type definitions struct {
	request   operation[ports.PaymentRequest, ports.PaymentRequestResponse]
	authorize operation[ports.AuthorizeRequest, ports.AuthorizeResponse]
	status    operation[ports.StatusRequest, ports.StatusResponse]
	reverse   operation[ports.ReverseRequest, ports.ReverseResponse]
	refund    operation[ports.RefundRequest, ports.RefundResponse]
	batch     operation[ports.BatchRequest, ports.BatchResponse]
	register  operation[ports.RegisterRequest, ports.RegisterResponse]
	charge    operation[ports.ChargeRequest, ports.ChargeResponse]
	credit    operation[ports.CreditRequest, ports.CreditResponse]
}

type statusSet map[ports.ResultStatus]struct{}

func newStatusSet(statuses ...ports.ResultStatus) statusSet {
	set := make(statusSet, len(statuses))
	for _, s := range statuses {
		set[s] = struct{}{}
	}
	return set
}

var (
	okFailed = newStatusSet(ports.StatusOK, ports.StatusFailed)

	reverseStatuses = newStatusSet(ports.StatusOK, ports.StatusReversed, ports.StatusFailed)

	transactionStatuses = newStatusSet(
		ports.StatusOK,
		ports.StatusFailed,
		ports.StatusCreated,
		ports.StatusPending,
		ports.StatusDeclined,
		ports.StatusReversed,
		ports.StatusAutoReversed,
		ports.StatusTimeout,
	)

	threeDSecureStatuses = map[ports.ThreeDSecureStatus]struct{}{
		ports.ThreeDSecureAuthenticated:   {},
		ports.ThreeDSecureDeclined:        {},
		ports.ThreeDSecureNotParticipated: {},
		ports.ThreeDSecureNoRange:         {},
		ports.ThreeDSecureAttempted:       {},
		ports.ThreeDSecureUnavailable:     {},
		ports.ThreeDSecureError:           {},
		ports.ThreeDSecureSystemError:     {},
		ports.ThreeDSecureUnknownScheme:   {},
		ports.ThreeDSecureFailed:          {},
	}
)

// newDefinitions builds the operation table. clientHandlerURL is the hosted
// card page that request and register redirect the cardholder to.
func newDefinitions(clientHandlerURL string) *definitions {
	redirect := func(transactionID *string) *string {
		if transactionID == nil {
			return nil
		}
		url := RedirectURL(clientHandlerURL, *transactionID)
		return &url
	}

	return &definitions{
		request: operation[ports.PaymentRequest, ports.PaymentRequestResponse]{
			name: "request",
			build: func(req *ports.PaymentRequest, session ports.Session) (*Params, error) {
				command, msgType, err := paymentCommand(req.Kind)
				if err != nil {
					return nil, err
				}
				return NewParams().
					Set(paramCommand, string(command)).
					Set(paramClientIP, req.IP).
					Set(paramDescription, req.Description).
					Set(paramLanguage, string(languageOrDefault(req.Language))).
					SetInt(paramCurrency, int64(currencyOrDefault(req.Currency, session))).
					SetInt(paramAmount, req.Amount).
					Set(paramMsgType, msgType), nil
			},
			extract: func(f Fields) *ports.PaymentRequestResponse {
				transactionID := f.Value(KeyTransactionID)
				return &ports.PaymentRequestResponse{
					TransactionID: transactionID,
					URL:           redirect(transactionID),
					Error:         f.Value(KeyError),
				}
			},
			outcome: func(r *ports.PaymentRequestResponse) ports.Result { return openedOutcome(r.TransactionID, r.Error) },
		},

		authorize: operation[ports.AuthorizeRequest, ports.AuthorizeResponse]{
			name: "authorize",
			build: func(req *ports.AuthorizeRequest, session ports.Session) (*Params, error) {
				return NewParams().
					Set(paramCommand, string(ports.CommandCapture)).
					Set(paramTransID, req.TransactionID).
					Set(paramClientIP, req.IP).
					Set(paramDescription, req.Description).
					Set(paramLanguage, string(languageOrDefault(req.Language))).
					SetInt(paramCurrency, int64(currencyOrDefault(req.Currency, session))).
					SetInt(paramAmount, req.Amount), nil
			},
			extract: func(f Fields) *ports.AuthorizeResponse {
				return &ports.AuthorizeResponse{
					Result:       extractResult(f, okFailed),
					RRN:          f.Value(KeyRRN),
					ApprovalCode: f.Value(KeyApprovalCode),
					Card:         ports.Card{Mask: f.Value(KeyCardNumber)},
				}
			},
			outcome: func(r *ports.AuthorizeResponse) ports.Result { return r.Result },
		},

		status: operation[ports.StatusRequest, ports.StatusResponse]{
			name: "status",
			build: func(req *ports.StatusRequest, _ ports.Session) (*Params, error) {
				return NewParams().
					Set(paramCommand, string(ports.CommandStatus)).
					Set(paramClientIP, req.IP).
					Set(paramTransID, req.TransactionID), nil
			},
			extract: func(f Fields) *ports.StatusResponse {
				return &ports.StatusResponse{
					Result:       extractResult(f, transactionStatuses),
					ThreeDSecure: normalizeThreeDSecure(f.Value(KeyThreeDSecure)),
					RRN:          f.Value(KeyRRN),
					ApprovalCode: f.Value(KeyApprovalCode),
					Card: ports.Card{
						Mask:   f.Value(KeyCardNumber),
						Token:  f.Value(KeyRecurringID),
						Expiry: f.Value(KeyRecurringExpiry),
					},
				}
			},
			outcome: func(r *ports.StatusResponse) ports.Result { return r.Result },
		},

		reverse: operation[ports.ReverseRequest, ports.ReverseResponse]{
			name: "reverse",
			build: func(req *ports.ReverseRequest, _ ports.Session) (*Params, error) {
				return NewParams().
					Set(paramCommand, string(ports.CommandReverse)).
					Set(paramClientIP, req.IP).
					Set(paramTransID, req.TransactionID).
					SetOptionalInt(paramAmount, req.Amount), nil
			},
			extract: func(f Fields) *ports.ReverseResponse {
				return &ports.ReverseResponse{
					Result: extractResult(f, reverseStatuses),
				}
			},
			outcome: func(r *ports.ReverseResponse) ports.Result { return r.Result },
		},

		refund: operation[ports.RefundRequest, ports.RefundResponse]{
			name: "refund",
			build: func(req *ports.RefundRequest, _ ports.Session) (*Params, error) {
				return NewParams().
					Set(paramCommand, string(ports.CommandRefund)).
					Set(paramClientIP, req.IP).
					Set(paramTransID, req.TransactionID).
					SetOptionalInt(paramAmount, req.Amount), nil
			},
			extract: func(f Fields) *ports.RefundResponse {
				return &ports.RefundResponse{
					Result:              extractResult(f, okFailed),
					RefundTransactionID: f.Value(KeyRefundTransactionID),
				}
			},
			outcome: func(r *ports.RefundResponse) ports.Result { return r.Result },
		},

		batch: operation[ports.BatchRequest, ports.BatchResponse]{
			name: "batch",
			build: func(req *ports.BatchRequest, _ ports.Session) (*Params, error) {
				return NewParams().
					Set(paramCommand, string(ports.CommandCloseDay)).
					Set(paramIP, req.IP), nil
			},
			extract: func(f Fields) *ports.BatchResponse {
				return &ports.BatchResponse{
					Result: extractResult(f, okFailed),
					Transactions: ports.Totals{
						Credit:      f.Int(KeyCreditCount),
						TotalCredit: f.Int(KeyCreditTotal),
						Debit:       f.Int(KeyDebitCount),
						TotalDebit:  f.Int(KeyDebitTotal),
					},
					Reversals: ports.Totals{
						Credit:      f.Int(KeyCreditReversalCount),
						TotalCredit: f.Int(KeyCreditReversalTotal),
						Debit:       f.Int(KeyDebitReversalCount),
						TotalDebit:  f.Int(KeyDebitReversalTotal),
					},
				}
			},
			outcome: func(r *ports.BatchResponse) ports.Result { return r.Result },
		},

		register: operation[ports.RegisterRequest, ports.RegisterResponse]{
			name: "register",
			build: func(req *ports.RegisterRequest, session ports.Session) (*Params, error) {
				var amount int64
				if req.Amount != nil {
					amount = *req.Amount
				}
				command, msgType, err := registerCommand(req.Kind, amount)
				if err != nil {
					return nil, err
				}
				return NewParams().
					Set(paramCommand, string(command)).
					Set(paramClientIP, req.IP).
					Set(paramDescription, req.Description).
					Set(paramLanguage, string(languageOrDefault(req.Language))).
					SetInt(paramCurrency, int64(currencyOrDefault(req.Currency, session))).
					SetInt(paramAmount, amount).
					Set(paramExpiry, req.Expiry).
					SetOptional(paramBillerClient, req.Token).
					Set(paramMsgType, msgType).
					SetInt(paramPerspayeeGen, 1), nil
			},
			extract: func(f Fields) *ports.RegisterResponse {
				transactionID := f.Value(KeyTransactionID)
				return &ports.RegisterResponse{
					TransactionID: transactionID,
					URL:           redirect(transactionID),
					Error:         f.Value(KeyError),
				}
			},
			outcome: func(r *ports.RegisterResponse) ports.Result { return openedOutcome(r.TransactionID, r.Error) },
		},

		charge: operation[ports.ChargeRequest, ports.ChargeResponse]{
			name: "charge",
			build: func(req *ports.ChargeRequest, session ports.Session) (*Params, error) {
				return NewParams().
					Set(paramCommand, string(ports.CommandChargeRegistered)).
					Set(paramClientIP, req.IP).
					Set(paramDescription, req.Description).
					Set(paramLanguage, string(languageOrDefault(req.Language))).
					SetInt(paramCurrency, int64(currencyOrDefault(req.Currency, session))).
					SetInt(paramAmount, req.Amount).
					Set(paramBillerClient, req.Token), nil
			},
			extract: func(f Fields) *ports.ChargeResponse {
				return &ports.ChargeResponse{
					Result:        extractResult(f, okFailed),
					TransactionID: f.Value(KeyTransactionID),
					RRN:           f.Value(KeyRRN),
					ApprovalCode:  f.Value(KeyApprovalCode),
				}
			},
			outcome: func(r *ports.ChargeResponse) ports.Result { return r.Result },
		},

		credit: operation[ports.CreditRequest, ports.CreditResponse]{
			name: "credit",
			build: func(req *ports.CreditRequest, _ ports.Session) (*Params, error) {
				return NewParams().
					Set(paramCommand, string(ports.CommandCredit)).
					SetInt(paramAmount, req.Amount).
					Set(paramTransID, req.TransactionID), nil
			},
			extract: func(f Fields) *ports.CreditResponse {
				return &ports.CreditResponse{
					Result:              extractResult(f, okFailed),
					RefundTransactionID: f.Value(KeyRefundTransactionID),
				}
			},
			outcome: func(r *ports.CreditResponse) ports.Result { return r.Result },
		},
	}
}

// RedirectURL builds the hosted card page link for a transaction.
// The gateway does not return it; the id is appended as sent.
func RedirectURL(clientHandlerURL, transactionID string) string {
	return clientHandlerURL + "?trans_id=" + transactionID
}

// paymentCommand maps a payment kind to its command and message type
func paymentCommand(kind ports.PaymentKind) (ports.Command, string, error) {
	switch kind {
	case ports.PaymentKindSale:
		return ports.CommandSale, msgTypeSingle, nil
	case ports.PaymentKindPreAuth:
		return ports.CommandPreAuth, msgTypeDual, nil
	default:
		return "", "", pkgerrors.NewValidationError("kind", fmt.Sprintf("unknown payment kind %d", kind))
	}
}

// registerCommand maps a registration kind to its command and message type.
// Only a zero-amount pre-auth registration uses command p; a pre-auth with an
// amount is sent as z and keeps the AUTH message type.
func registerCommand(kind ports.RegisterKind, amount int64) (ports.Command, string, error) {
	switch kind {
	case ports.RegisterKindImmediate:
		return ports.CommandRegister, msgTypeSingle, nil
	case ports.RegisterKindPreAuth:
		if amount == 0 {
			return ports.CommandRegisterPreAuth, msgTypeAuthOnly, nil
		}
		return ports.CommandRegister, msgTypeAuthOnly, nil
	default:
		return "", "", pkgerrors.NewValidationError("kind", fmt.Sprintf("unknown register kind %d", kind))
	}
}

func languageOrDefault(lang ports.Language) ports.Language {
	if lang == "" {
		return ports.LanguageGeorgian
	}
	return lang
}

func currencyOrDefault(currency int, session ports.Session) int {
	if currency != 0 {
		return currency
	}
	if session.Currency != 0 {
		return session.Currency
	}
	return ports.DefaultCurrency
}

// openedOutcome summarizes request and register, which only open a transaction
func openedOutcome(transactionID, errText *string) ports.Result {
	status := ports.StatusCreated
	if transactionID == nil {
		status = ports.StatusFailed
	}
	return ports.Result{Status: status, Error: errText}
}

// extractResult reads RESULT, RESULT_CODE and any error line
func extractResult(f Fields, allowed statusSet) ports.Result {
	text := f.Value(KeyResult)
	return ports.Result{
		Status: normalizeStatus(text, allowed),
		Code:   f.Value(KeyResultCode),
		Text:   text,
		Error:  f.Value(KeyError),
	}
}

// normalizeStatus lower-cases the gateway's RESULT and constrains it to the
// operation's set. A value outside the set is a failure; the raw text stays in
// Result.Text.
func normalizeStatus(text *string, allowed statusSet) ports.ResultStatus {
	if text == nil {
		return ports.StatusUnknown
	}
	status := ports.ResultStatus(strings.ToLower(strings.TrimSpace(*text)))
	if _, ok := allowed[status]; !ok {
		return ports.StatusFailed
	}
	return status
}

func normalizeThreeDSecure(text *string) ports.ThreeDSecureStatus {
	if text == nil {
		return ports.ThreeDSecureUnknown
	}
	status := ports.ThreeDSecureStatus(strings.ToLower(strings.TrimSpace(*text)))
	if _, ok := threeDSecureStatuses[status]; !ok {
		return ports.ThreeDSecureUnknown
	}
	return status
}
