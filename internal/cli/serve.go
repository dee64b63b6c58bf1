package cli

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/attestlab/attestd/internal/api"
	"github.com/attestlab/attestd/internal/app"
	"github.com/attestlab/attestd/internal/config"
	"github.com/attestlab/attestd/internal/errors"
	"github.com/attestlab/attestd/internal/keys"
	"github.com/attestlab/attestd/internal/pipeline"
	"github.com/attestlab/attestd/internal/signal"
)

// AddServeCommand adds the serve command to the root command.
func AddServeCommand(root *cobra.Command, _ *GlobalFlags) {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the attestation node",
		Long: `Run the attestation HTTP node.

The signer key is read from the ATTESTD_SIGNER_KEY environment variable at
startup; the process refuses to start without a valid key. Computation
modules are registered at startup and served on the configured listen
address until the process receives SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := GetLogger()
			ctx := logger.WithContext(cmd.Context())

			cfg, err := config.Load(ctx)
			if err != nil {
				return errors.Wrap(err, "failed to load configuration")
			}

			identity, err := keys.IdentityFromEnv()
			if err != nil {
				return errors.Wrap(err, "failed to load signer key")
			}

			registry, err := buildRegistry(cfg)
			if err != nil {
				return errors.Wrap(err, "failed to register modules")
			}

			pipe := pipeline.New(registry, identity, pipeline.WithLogger(logger))

			addr := cfg.Server.Listen
			if listen != "" {
				addr = listen
			}

			server := api.NewServer(pipe, addr,
				api.WithLogger(logger),
				api.WithTimeouts(cfg.Server.RequestTimeout, cfg.Server.ShutdownTimeout),
			)

			handler := signal.NewHandler(ctx)
			defer handler.Stop()

			logger.Info().
				Str("addr", addr).
				Str("signer", identity.Address()).
				Strs("modules", registry.Names()).
				Msg("starting attestation node")

			if err := server.Run(handler.Context()); err != nil {
				return errors.Wrap(err, "server stopped with error")
			}

			select {
			case <-handler.Interrupted():
				logger.Info().Msg("attestation node stopped on interrupt")
			default:
				logger.Info().Msg("attestation node stopped")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides configuration)")

	root.AddCommand(cmd)
}

// buildRegistry registers the built-in computation modules. Quote prices
// configured under modules.quotes seed the static quote source.
func buildRegistry(cfg *config.Config) (*app.Registry, error) {
	registry := app.NewRegistry()

	if err := registry.Register(app.NewEchoModule()); err != nil {
		return nil, err
	}

	prices := make(map[string]*big.Int, len(cfg.Modules.Quotes))
	for symbol, raw := range cfg.Modules.Quotes {
		price, ok := new(big.Int).SetString(raw, 10)
		if !ok {
			return nil, fmt.Errorf("%w: quote price for %q is not a decimal integer", errors.ErrInvalidParams, symbol)
		}
		prices[symbol] = price
	}

	if err := registry.Register(app.NewQuoteModule(app.NewStaticQuoteSource(prices))); err != nil {
		return nil, err
	}

	return registry, nil
}
