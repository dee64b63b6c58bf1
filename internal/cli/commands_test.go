package cli

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attestlab/attestd/internal/ethaddr"
	"github.com/attestlab/attestd/internal/keys"
	"github.com/attestlab/attestd/internal/schnorr"
)

// runCommand executes the root command with args and returns stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestKeygenCommand(t *testing.T) {
	t.Run("json output", func(t *testing.T) {
		out, err := runCommand(t, "keygen", "--output", "json")
		require.NoError(t, err)

		var res struct {
			PrivateKey string `json:"privateKey"`
			Address    string `json:"address"`
			PublicKey  struct {
				X       string `json:"x"`
				YParity string `json:"yParity"`
				Address string `json:"address"`
			} `json:"publicKey"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &res))

		require.Len(t, res.PrivateKey, 64)
		assert.Equal(t, res.Address, res.PublicKey.Address)

		// The printed key must load back to the printed address.
		id, err := keys.IdentityFromHex(res.PrivateKey)
		require.NoError(t, err)
		assert.Equal(t, res.Address, id.Address())
	})

	t.Run("text output", func(t *testing.T) {
		out, err := runCommand(t, "keygen")
		require.NoError(t, err)

		assert.Contains(t, out, "Private key:")
		assert.Contains(t, out, "Address:")
		assert.Contains(t, out, "Public key:")
	})
}

func TestVerifyCommand(t *testing.T) {
	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	id := keys.NewIdentity(priv)

	nonce, err := keys.GenerateNonce()
	require.NoError(t, err)

	digest := crypto.Keccak256([]byte("cli verify"))
	sig, err := schnorr.Sign(id, nonce, digest)
	require.NoError(t, err)

	view := ethaddr.NewView(id.Public(), true)
	digestHex := "0x" + hex.EncodeToString(digest)

	t.Run("valid signature", func(t *testing.T) {
		out, err := runCommand(t, "verify",
			"--x", view.X,
			"--parity", view.YParity,
			digestHex, sig.Encode())
		require.NoError(t, err)
		assert.Contains(t, out, "valid signature from "+id.Address())
	})

	t.Run("wrong digest", func(t *testing.T) {
		tampered := crypto.Keccak256([]byte("other payload"))
		out, err := runCommand(t, "verify",
			"--x", view.X,
			"--parity", view.YParity,
			"0x"+hex.EncodeToString(tampered), sig.Encode())
		require.NoError(t, err)
		assert.Contains(t, out, "invalid signature")
	})

	t.Run("json output", func(t *testing.T) {
		out, err := runCommand(t, "verify",
			"--output", "json",
			"--x", view.X,
			"--parity", view.YParity,
			digestHex, sig.Encode())
		require.NoError(t, err)

		var res struct {
			Valid bool   `json:"valid"`
			Owner string `json:"owner"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.True(t, res.Valid)
		assert.Equal(t, id.Address(), res.Owner)
	})

	t.Run("malformed x coordinate", func(t *testing.T) {
		_, err := runCommand(t, "verify",
			"--x", "0x1234",
			digestHex, sig.Encode())
		require.Error(t, err)
	})

	t.Run("bad parity", func(t *testing.T) {
		_, err := runCommand(t, "verify",
			"--x", view.X,
			"--parity", "2",
			digestHex, sig.Encode())
		require.Error(t, err)
	})
}
