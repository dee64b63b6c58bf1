package app

import (
	"context"

	"github.com/attestlab/attestd/internal/abihash"
	"github.com/attestlab/attestd/internal/errors"
)

// EchoModule binds a caller-supplied message into a signed attestation. It is
// the smallest useful module: the computation is the identity function and the
// commitment covers the message verbatim.
type EchoModule struct{}

// NewEchoModule creates the echo module.
func NewEchoModule() *EchoModule {
	return &EchoModule{}
}

// Name implements Module.
func (m *EchoModule) Name() string { return "echo" }

// Compute returns the caller's message unchanged. The "message" parameter is
// required and must be a non-empty string.
func (m *EchoModule) Compute(_ context.Context, sctx *Context) (Result, error) {
	msg, ok := sctx.Params["message"].(string)
	if !ok || msg == "" {
		return nil, errors.Wrap(errors.ErrInvalidParams, "message must be a non-empty string")
	}
	return msg, nil
}

// SignedFields commits to the echoed message as a single string field.
func (m *EchoModule) SignedFields(_ *Context, result Result) ([]abihash.Field, error) {
	msg, ok := result.(string)
	if !ok {
		return nil, errors.Wrapf(errors.ErrFieldValueMismatch, "echo result is %T", result)
	}
	return []abihash.Field{
		{Name: "message", Type: abihash.TypeString, Value: msg},
	}, nil
}
