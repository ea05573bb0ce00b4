// Command ufcctl drives the UFC merchant handler from the command line.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/kevin07696/ufc-gateway/internal/adapters/ports"
	"github.com/kevin07696/ufc-gateway/internal/adapters/ufc"
	"github.com/kevin07696/ufc-gateway/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Version = "dev"

// adapterFactory builds the merchant handler adapter for one command run
type adapterFactory func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ports.MerchantHandlerAdapter, error)

// rootOptions is shared by every subcommand
type rootOptions struct {
	configPath string
	timeout    time.Duration
	ip         string

	cfg        *config.Config
	logger     *zap.Logger
	newAdapter adapterFactory
}

func main() {
	rootCmd := newRootCmd(&rootOptions{newAdapter: newUFCAdapter})
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ufcctl",
		Short:         "ufcctl - UFC merchant handler client",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if path == "" {
				path = os.Getenv("UFC_CONFIG_FILE")
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			opts.cfg = cfg

			if opts.logger == nil {
				opts.logger = initLogger(cfg)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "YAML config file (default $UFC_CONFIG_FILE)")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", time.Minute, "Overall deadline for the command")
	rootCmd.PersistentFlags().StringVar(&opts.ip, "ip", "127.0.0.1", "Cardholder IP address sent as client_ip_addr")

	rootCmd.AddCommand(requestCmd(opts))
	rootCmd.AddCommand(authorizeCmd(opts))
	rootCmd.AddCommand(statusCmd(opts))
	rootCmd.AddCommand(reverseCmd(opts))
	rootCmd.AddCommand(refundCmd(opts))
	rootCmd.AddCommand(batchCmd(opts))
	rootCmd.AddCommand(registerCmd(opts))
	rootCmd.AddCommand(chargeCmd(opts))
	rootCmd.AddCommand(creditCmd(opts))
	rootCmd.AddCommand(resultCodeCmd())

	return rootCmd
}

// initLogger initializes the zap logger
func initLogger(cfg *config.Config) *zap.Logger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if err := level.UnmarshalText([]byte(cfg.Logger.Level)); err != nil {
		level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	zapCfg := zap.NewDevelopmentConfig()
	if cfg.Environment == "production" || !cfg.Logger.Development {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = level

	logger, err := zapCfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// newUFCAdapter loads credentials and builds the mutual TLS adapter
func newUFCAdapter(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ports.MerchantHandlerAdapter, error) {
	secrets, err := initSecretManager(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	ufcCfg, err := cfg.UFCConfig(ctx, secrets)
	if err != nil {
		return nil, err
	}

	logger.Info("Creating UFC merchant handler adapter",
		zap.String("base_url", ufcCfg.BaseURL),
		zap.String("secret_manager", cfg.Secrets.Manager),
		zap.Int("currency", ufcCfg.Session.Currency),
		zap.Bool("proxy", ufcCfg.Session.Proxy != nil),
	)

	return ufc.NewMerchantHandlerAdapter(ufcCfg, logger)
}
