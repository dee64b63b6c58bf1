package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attestlab/attestd/internal/abihash"
	"github.com/attestlab/attestd/internal/app"
	"github.com/attestlab/attestd/internal/clock"
	"github.com/attestlab/attestd/internal/errors"
	"github.com/attestlab/attestd/internal/keys"
	"github.com/attestlab/attestd/internal/schnorr"
	"github.com/attestlab/attestd/internal/testutil"
)

// brokenModule fails at a configurable stage.
type brokenModule struct {
	failCompute bool
}

func (m *brokenModule) Name() string { return "broken" }

func (m *brokenModule) Compute(context.Context, *app.Context) (app.Result, error) {
	if m.failCompute {
		return nil, testutil.ErrMockCompute
	}
	return "ok", nil
}

func (m *brokenModule) SignedFields(*app.Context, app.Result) ([]abihash.Field, error) {
	return nil, testutil.ErrMockFields
}

// newTestPipeline builds a pipeline with the echo module and a fresh identity.
func newTestPipeline(t *testing.T, opts ...Option) *Pipeline {
	t.Helper()

	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)

	registry := app.NewRegistry()
	require.NoError(t, registry.Register(app.NewEchoModule()))

	return New(registry, keys.NewIdentity(priv), opts...)
}

func TestProcess(t *testing.T) {
	fixed := clock.Fixed{T: time.Unix(1_700_000_000, 0)}
	p := newTestPipeline(t, WithClock(fixed))

	params := map[string]any{"message": "hello"}
	resp, err := p.Process(context.Background(), "echo", "sign", params)
	require.NoError(t, err)

	t.Run("response shape", func(t *testing.T) {
		assert.Equal(t, "echo", resp.App)
		assert.Equal(t, app.ID("echo").String(), resp.AppID)
		assert.Equal(t, "sign", resp.Method)
		assert.Len(t, resp.ReqID, 66)
		assert.Equal(t, int64(1_700_000_000), resp.Data.Timestamp)
		assert.Equal(t, params, resp.Data.Params)
	})

	t.Run("sign params order", func(t *testing.T) {
		require.Len(t, resp.Data.SignParams, 3)
		assert.Equal(t, "appId", resp.Data.SignParams[0].Name)
		assert.Equal(t, abihash.TypeUint256, resp.Data.SignParams[0].Type)
		assert.Equal(t, "reqId", resp.Data.SignParams[1].Name)
		assert.Equal(t, resp.ReqID, resp.Data.SignParams[1].Value)
		assert.Equal(t, "message", resp.Data.SignParams[2].Name)
		assert.Equal(t, "hello", resp.Data.SignParams[2].Value)
	})

	t.Run("signature entry", func(t *testing.T) {
		require.Len(t, resp.Signatures, 1)
		entry := resp.Signatures[0]
		assert.Equal(t, p.Identity().Address(), entry.Owner)
		assert.NotEmpty(t, entry.OwnerPubKey.X)
		assert.Empty(t, entry.OwnerPubKey.Address)
		assert.Len(t, entry.Signature, 130)
	})

	t.Run("signature verifies over recomputed hash", func(t *testing.T) {
		digest, err := abihash.Hash(resp.Data.SignParams)
		require.NoError(t, err)

		assert.True(t, schnorr.VerifyEncoded(p.Identity().Public(), digest[:], resp.Signatures[0].Signature))
	})
}

func TestProcessRequestIDsAreFresh(t *testing.T) {
	p := newTestPipeline(t)
	params := map[string]any{"message": "same"}

	r1, err := p.Process(context.Background(), "echo", "sign", params)
	require.NoError(t, err)
	r2, err := p.Process(context.Background(), "echo", "sign", params)
	require.NoError(t, err)

	assert.NotEqual(t, r1.ReqID, r2.ReqID)
	assert.NotEqual(t, r1.Signatures[0].Signature, r2.Signatures[0].Signature)
}

func TestProcessErrors(t *testing.T) {
	t.Run("unknown module", func(t *testing.T) {
		p := newTestPipeline(t)

		_, err := p.Process(context.Background(), "ghost", "sign", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrModuleNotFound)
	})

	t.Run("invalid params", func(t *testing.T) {
		p := newTestPipeline(t)

		_, err := p.Process(context.Background(), "echo", "sign", map[string]any{})
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrInvalidParams)
	})

	t.Run("canceled context", func(t *testing.T) {
		p := newTestPipeline(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := p.Process(ctx, "echo", "sign", map[string]any{"message": "hi"})
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("compute failure", func(t *testing.T) {
		priv, err := secp256k1.GeneratePrivateKey()
		require.NoError(t, err)

		registry := app.NewRegistry()
		require.NoError(t, registry.Register(&brokenModule{failCompute: true}))
		p := New(registry, keys.NewIdentity(priv))

		_, err = p.Process(context.Background(), "broken", "sign", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, testutil.ErrMockCompute)
	})

	t.Run("signed fields failure", func(t *testing.T) {
		priv, err := secp256k1.GeneratePrivateKey()
		require.NoError(t, err)

		registry := app.NewRegistry()
		require.NoError(t, registry.Register(&brokenModule{}))
		p := New(registry, keys.NewIdentity(priv))

		_, err = p.Process(context.Background(), "broken", "sign", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, testutil.ErrMockFields)
	})
}

func TestModules(t *testing.T) {
	p := newTestPipeline(t)
	assert.Equal(t, []string{"echo"}, p.Modules())
}
