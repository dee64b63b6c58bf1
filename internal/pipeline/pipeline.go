// Package pipeline turns a computation module's output into a signed,
// address-bound response.
//
// Each request is independent: the pipeline holds no mutable state beyond the
// node's static identity (read-only after startup), so concurrent requests
// need no locking. The only suspension point is the module's Compute call.
package pipeline

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/attestlab/attestd/internal/abihash"
	"github.com/attestlab/attestd/internal/app"
	"github.com/attestlab/attestd/internal/clock"
	"github.com/attestlab/attestd/internal/ctxutil"
	"github.com/attestlab/attestd/internal/errors"
	"github.com/attestlab/attestd/internal/ethaddr"
	"github.com/attestlab/attestd/internal/keys"
	"github.com/attestlab/attestd/internal/schnorr"
)

// Pipeline orchestrates compute, commitment hashing, and signing.
type Pipeline struct {
	registry *app.Registry
	identity *keys.Identity
	clk      clock.Clock
	logger   zerolog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock sets the clock used for request timestamps.
// If not set, the system clock is used.
func WithClock(c clock.Clock) Option {
	return func(p *Pipeline) {
		p.clk = c
	}
}

// WithLogger sets the logger for the Pipeline.
// If not set, a no-op logger is used.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger.With().Str("component", "pipeline").Logger()
	}
}

// New creates a Pipeline over the given module registry and signing identity.
func New(registry *app.Registry, identity *keys.Identity, opts ...Option) *Pipeline {
	p := &Pipeline{
		registry: registry,
		identity: identity,
		clk:      clock.RealClock{},
		logger:   zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Process runs one signing request end to end: resolve the module, compute,
// collect the signed fields, hash the full ordered list with (appId, reqId)
// prepended, and sign the hash with a fresh nonce under the node identity.
//
// A missing module surfaces ErrModuleNotFound, terminal for the request.
func (p *Pipeline) Process(ctx context.Context, appName, method string, params map[string]any) (*Response, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	module, err := p.registry.Resolve(appName)
	if err != nil {
		return nil, err
	}

	appID := app.ID(appName)
	sctx := &app.Context{
		AppID:     appID,
		Method:    method,
		Params:    params,
		Timestamp: clock.Epoch(p.clk),
	}

	result, err := module.Compute(ctx, sctx)
	if err != nil {
		return nil, errors.Wrapf(err, "module %q compute failed", appName)
	}

	fields, err := module.SignedFields(sctx, result)
	if err != nil {
		return nil, errors.Wrapf(err, "module %q signed fields failed", appName)
	}

	reqID, err := keys.NewRequestID()
	if err != nil {
		return nil, err
	}

	// The commitment covers (appId, reqId) ahead of the module's own fields,
	// in that order. Large numeric values travel as decimal strings so a
	// consumer re-hashing the JSON response recovers the exact same bytes.
	signParams := make([]abihash.Field, 0, len(fields)+2)
	signParams = append(signParams,
		abihash.Field{Name: "appId", Type: abihash.TypeUint256, Value: appID.String()},
		abihash.Field{Name: "reqId", Type: abihash.TypeUint256, Value: reqID},
	)
	signParams = append(signParams, fields...)

	digest, err := abihash.Hash(signParams)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to hash signed fields for %q", appName)
	}

	nonce, err := keys.GenerateNonce()
	if err != nil {
		return nil, err
	}

	sig, err := schnorr.Sign(p.identity, nonce, digest[:])
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign commitment")
	}

	p.logger.Debug().
		Str("app", appName).
		Str("method", method).
		Str("req_id", reqID).
		Hex("digest", digest[:]).
		Msg("signed response produced")

	return &Response{
		ReqID:  reqID,
		App:    appName,
		AppID:  appID.String(),
		Method: method,
		Data: Data{
			Params:     params,
			Timestamp:  sctx.Timestamp,
			SignParams: signParams,
		},
		Signatures: []SignatureEntry{
			{
				Owner:       p.identity.Address(),
				OwnerPubKey: ethaddr.NewView(p.identity.Public(), true),
				Signature:   sig.Encode(),
			},
		},
	}, nil
}

// Identity exposes the pipeline's signing identity for read-only use by the
// transport layer (health and info endpoints).
func (p *Pipeline) Identity() *keys.Identity {
	return p.identity
}

// Modules returns the registered module names.
func (p *Pipeline) Modules() []string {
	return p.registry.Names()
}
