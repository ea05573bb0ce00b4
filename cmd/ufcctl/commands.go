package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/kevin07696/ufc-gateway/internal/adapters/ports"
	"github.com/kevin07696/ufc-gateway/internal/adapters/ufc"
	"github.com/kevin07696/ufc-gateway/pkg/money"
	"github.com/spf13/cobra"
)

// paymentFlags are shared by commands that move money
type paymentFlags struct {
	amount      string
	currency    int
	description string
	language    string
}

func (f *paymentFlags) register(cmd *cobra.Command, amountRequired bool) {
	cmd.Flags().StringVarP(&f.amount, "amount", "a", "", "Amount in major units (e.g. 10.50)")
	cmd.Flags().IntVar(&f.currency, "currency", 0, "ISO 4217 numeric currency (default: session currency)")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "Description shown to the cardholder")
	cmd.Flags().StringVarP(&f.language, "language", "l", "", "Card page language: ge, ka, en, ru")
	if amountRequired {
		_ = cmd.MarkFlagRequired("amount")
	}
}

// run builds the adapter, applies the command deadline and prints the result as JSON
func run(cmd *cobra.Command, opts *rootOptions, call func(ctx context.Context, adapter ports.MerchantHandlerAdapter) (any, error)) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	adapter, err := opts.newAdapter(ctx, opts.cfg, opts.logger)
	if err != nil {
		return err
	}

	resp, err := call(ctx, adapter)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), resp)
}

// minorAmount converts a major-unit flag value using the currency's exponent
func minorAmount(amount string, currency int, adapter ports.MerchantHandlerAdapter) (int64, error) {
	if currency == 0 {
		currency = adapter.Session().Currency
	}
	return money.ToMinor(amount, currency)
}

// optionalMinorAmount is minorAmount for flags that may be left unset
func optionalMinorAmount(amount string, currency int, adapter ports.MerchantHandlerAdapter) (*int64, error) {
	if amount == "" {
		return nil, nil
	}
	v, err := minorAmount(amount, currency, adapter)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func requestCmd(opts *rootOptions) *cobra.Command {
	var (
		flags   paymentFlags
		preAuth bool
	)

	cmd := &cobra.Command{
		Use:   "request",
		Short: "Start a sale (v) or pre-authorization (a) and print the card page URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, adapter ports.MerchantHandlerAdapter) (any, error) {
				amount, err := minorAmount(flags.amount, flags.currency, adapter)
				if err != nil {
					return nil, err
				}
				kind := ports.PaymentKindSale
				if preAuth {
					kind = ports.PaymentKindPreAuth
				}
				return adapter.Request(ctx, &ports.PaymentRequest{
					Kind:        kind,
					IP:          opts.ip,
					Amount:      amount,
					Currency:    flags.currency,
					Description: flags.description,
					Language:    ports.Language(flags.language),
				})
			})
		},
	}

	flags.register(cmd, true)
	cmd.Flags().BoolVar(&preAuth, "preauth", false, "Reserve funds only; capture later with authorize")
	return cmd
}

func authorizeCmd(opts *rootOptions) *cobra.Command {
	var (
		flags   paymentFlags
		transID string
	)

	cmd := &cobra.Command{
		Use:   "authorize",
		Short: "Capture a pre-authorized transaction (t)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, adapter ports.MerchantHandlerAdapter) (any, error) {
				amount, err := minorAmount(flags.amount, flags.currency, adapter)
				if err != nil {
					return nil, err
				}
				resp, err := adapter.Authorize(ctx, &ports.AuthorizeRequest{
					TransactionID: transID,
					IP:            opts.ip,
					Amount:        amount,
					Currency:      flags.currency,
					Description:   flags.description,
					Language:      ports.Language(flags.language),
				})
				if err != nil {
					return nil, err
				}
				return withResultCode(resp, resp.Result), nil
			})
		},
	}

	flags.register(cmd, true)
	cmd.Flags().StringVarP(&transID, "trans-id", "t", "", "Transaction ID returned by request")
	_ = cmd.MarkFlagRequired("trans-id")
	return cmd
}

func statusCmd(opts *rootOptions) *cobra.Command {
	var transID string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Query the state of a transaction (c)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, adapter ports.MerchantHandlerAdapter) (any, error) {
				resp, err := adapter.Status(ctx, &ports.StatusRequest{
					TransactionID: transID,
					IP:            opts.ip,
				})
				if err != nil {
					return nil, err
				}
				return withResultCode(resp, resp.Result), nil
			})
		},
	}

	cmd.Flags().StringVarP(&transID, "trans-id", "t", "", "Transaction ID")
	_ = cmd.MarkFlagRequired("trans-id")
	return cmd
}

func reverseCmd(opts *rootOptions) *cobra.Command {
	var (
		transID  string
		amount   string
		currency int
	)

	cmd := &cobra.Command{
		Use:   "reverse",
		Short: "Reverse a transaction before the business day is closed (r)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, adapter ports.MerchantHandlerAdapter) (any, error) {
				minor, err := optionalMinorAmount(amount, currency, adapter)
				if err != nil {
					return nil, err
				}
				resp, err := adapter.Reverse(ctx, &ports.ReverseRequest{
					TransactionID: transID,
					IP:            opts.ip,
					Amount:        minor,
				})
				if err != nil {
					return nil, err
				}
				return withResultCode(resp, resp.Result), nil
			})
		},
	}

	cmd.Flags().StringVarP(&transID, "trans-id", "t", "", "Transaction ID")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Partial amount in major units (default: full amount)")
	cmd.Flags().IntVar(&currency, "currency", 0, "Currency of --amount (default: session currency)")
	_ = cmd.MarkFlagRequired("trans-id")
	return cmd
}

func refundCmd(opts *rootOptions) *cobra.Command {
	var (
		transID  string
		amount   string
		currency int
	)

	cmd := &cobra.Command{
		Use:   "refund",
		Short: "Refund a transaction after the business day is closed (k)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, adapter ports.MerchantHandlerAdapter) (any, error) {
				minor, err := optionalMinorAmount(amount, currency, adapter)
				if err != nil {
					return nil, err
				}
				resp, err := adapter.Refund(ctx, &ports.RefundRequest{
					TransactionID: transID,
					IP:            opts.ip,
					Amount:        minor,
				})
				if err != nil {
					return nil, err
				}
				return withResultCode(resp, resp.Result), nil
			})
		},
	}

	cmd.Flags().StringVarP(&transID, "trans-id", "t", "", "Transaction ID")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Partial amount in major units (default: full amount)")
	cmd.Flags().IntVar(&currency, "currency", 0, "Currency of --amount (default: session currency)")
	_ = cmd.MarkFlagRequired("trans-id")
	return cmd
}

func batchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "batch",
		Short: "Close the business day (b) and print the day's totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, adapter ports.MerchantHandlerAdapter) (any, error) {
				resp, err := adapter.Batch(ctx, &ports.BatchRequest{IP: opts.ip})
				if err != nil {
					return nil, err
				}
				return newBatchView(resp, adapter.Session().Currency), nil
			})
		},
	}
}

func registerCmd(opts *rootOptions) *cobra.Command {
	var (
		flags   paymentFlags
		preAuth bool
		expiry  string
		token   string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a card for later charges (z, or p with --preauth and no amount)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, adapter ports.MerchantHandlerAdapter) (any, error) {
				amount, err := optionalMinorAmount(flags.amount, flags.currency, adapter)
				if err != nil {
					return nil, err
				}
				req := &ports.RegisterRequest{
					Kind:        ports.RegisterKindImmediate,
					IP:          opts.ip,
					Amount:      amount,
					Currency:    flags.currency,
					Description: flags.description,
					Language:    ports.Language(flags.language),
					Expiry:      expiry,
				}
				if preAuth {
					req.Kind = ports.RegisterKindPreAuth
				}
				if token != "" {
					req.Token = &token
				}
				return adapter.Register(ctx, req)
			})
		},
	}

	flags.register(cmd, false)
	cmd.Flags().BoolVar(&preAuth, "preauth", false, "Register under an authorization; zero-amount unless --amount is set")
	cmd.Flags().StringVar(&expiry, "expiry", "", "Registration expiry as MMYY")
	cmd.Flags().StringVar(&token, "token", "", "Merchant token for the card (default: transaction ID)")
	_ = cmd.MarkFlagRequired("expiry")
	return cmd
}

func chargeCmd(opts *rootOptions) *cobra.Command {
	var (
		flags paymentFlags
		token string
	)

	cmd := &cobra.Command{
		Use:   "charge",
		Short: "Charge a registered card by token (e)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, adapter ports.MerchantHandlerAdapter) (any, error) {
				amount, err := minorAmount(flags.amount, flags.currency, adapter)
				if err != nil {
					return nil, err
				}
				resp, err := adapter.Charge(ctx, &ports.ChargeRequest{
					Token:       token,
					IP:          opts.ip,
					Amount:      amount,
					Currency:    flags.currency,
					Description: flags.description,
					Language:    ports.Language(flags.language),
				})
				if err != nil {
					return nil, err
				}
				return withResultCode(resp, resp.Result), nil
			})
		},
	}

	flags.register(cmd, true)
	cmd.Flags().StringVar(&token, "token", "", "Registered card token")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}

func creditCmd(opts *rootOptions) *cobra.Command {
	var (
		transID  string
		amount   string
		currency int
	)

	cmd := &cobra.Command{
		Use:   "credit",
		Short: "Send funds to a previously charged card (g)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, adapter ports.MerchantHandlerAdapter) (any, error) {
				minor, err := minorAmount(amount, currency, adapter)
				if err != nil {
					return nil, err
				}
				resp, err := adapter.Credit(ctx, &ports.CreditRequest{
					TransactionID: transID,
					Amount:        minor,
				})
				if err != nil {
					return nil, err
				}
				return withResultCode(resp, resp.Result), nil
			})
		},
	}

	cmd.Flags().StringVarP(&transID, "trans-id", "t", "", "Transaction ID of the original charge")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount in major units")
	cmd.Flags().IntVar(&currency, "currency", 0, "Currency of --amount (default: session currency)")
	_ = cmd.MarkFlagRequired("trans-id")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func resultCodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "result-code [code]",
		Short: "Explain a RESULT_CODE returned by the gateway",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd.OutOrStdout(), ufc.LookupResultCode(strings.TrimSpace(args[0])))
		},
	}
}

// resultView adds the result code classification to a response
type resultView struct {
	Response   any                 `json:"response"`
	ResultCode *ufc.ResultCodeInfo `json:"result_code,omitempty"`
}

func withResultCode(resp any, result ports.Result) resultView {
	view := resultView{Response: resp}
	if result.Code != nil {
		info := ufc.LookupResult(result.Code)
		view.ResultCode = &info
	}
	return view
}

// totalsView renders batch counters with amounts in major units
type totalsView struct {
	Credit      *int64  `json:"credit"`
	TotalCredit *string `json:"total_credit"`
	Debit       *int64  `json:"debit"`
	TotalDebit  *string `json:"total_debit"`
}

type batchView struct {
	Result       ports.Result        `json:"result"`
	ResultCode   *ufc.ResultCodeInfo `json:"result_code,omitempty"`
	Transactions totalsView          `json:"transactions"`
	Reversals    totalsView          `json:"reversals"`
}

func newBatchView(resp *ports.BatchResponse, currency int) batchView {
	totals := func(t ports.Totals) totalsView {
		return totalsView{
			Credit:      t.Credit,
			TotalCredit: money.FromMinorPtr(t.TotalCredit, currency),
			Debit:       t.Debit,
			TotalDebit:  money.FromMinorPtr(t.TotalDebit, currency),
		}
	}

	view := batchView{
		Result:       resp.Result,
		Transactions: totals(resp.Transactions),
		Reversals:    totals(resp.Reversals),
	}
	if resp.Result.Code != nil {
		info := ufc.LookupResult(resp.Result.Code)
		view.ResultCode = &info
	}
	return view
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
