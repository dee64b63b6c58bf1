// Package app defines the computation-module capability contract and the
// startup-populated registry that resolves modules by name.
//
// A computation module is the pluggable unit the signing pipeline wraps: it
// computes a result for a request and then describes, as an ordered list of
// typed fields, exactly what of that result gets cryptographically committed.
package app

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/attestlab/attestd/internal/abihash"
)

// Context carries the per-request inputs a module computes over. It is created
// at request start and discarded after the response is produced.
type Context struct {
	// AppID is the deterministic identifier of the module handling the
	// request, derived from its canonical name.
	AppID *big.Int

	// Method is the module operation requested by the caller.
	Method string

	// Params are the caller-supplied request parameters.
	Params map[string]any

	// Timestamp is the request time in epoch seconds.
	Timestamp int64
}

// Result is a module's computed output, opaque to the pipeline. The module
// itself interprets it again in SignedFields.
type Result any

// Module is the capability contract for a pluggable computation unit.
type Module interface {
	// Name returns the module's canonical registry name.
	Name() string

	// Compute performs the module's computation. It may block on I/O and
	// must honor ctx cancellation.
	Compute(ctx context.Context, sctx *Context) (Result, error)

	// SignedFields describes the ordered, typed fields of the result that
	// must be included in the cryptographic commitment. Field order and type
	// tags are hash-significant.
	SignedFields(sctx *Context, result Result) ([]abihash.Field, error)
}

// ID derives the deterministic module identifier: the keccak256 hash of the
// module's canonical name, interpreted as a uint256.
func ID(name string) *big.Int {
	return new(big.Int).SetBytes(crypto.Keccak256([]byte(name)))
}
