// Package keys manages the node's signing identity and the ephemeral key
// material consumed by the signing pipeline.
//
// The static identity is loaded exactly once at process startup and passed by
// reference wherever signing happens; nothing in this package holds ambient
// global key state, so tests can construct as many identities as they need.
package keys

import (
	"encoding/hex"
	"os"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/attestlab/attestd/internal/errors"
	"github.com/attestlab/attestd/internal/ethaddr"
)

// EnvSignerKey is the environment variable holding the node's private scalar
// as 64 hex characters. Absence or malformation is startup-fatal.
const EnvSignerKey = "ATTESTD_SIGNER_KEY"

// Identity is the node's static signing key pair. It is immutable after
// construction and safe for concurrent use.
type Identity struct {
	priv *secp256k1.PrivateKey
	pub  *secp256k1.PublicKey
}

// NewIdentity wraps an existing private key as a signing identity.
func NewIdentity(priv *secp256k1.PrivateKey) *Identity {
	return &Identity{priv: priv, pub: priv.PubKey()}
}

// IdentityFromHex parses a 64-hex-character private scalar. The scalar must be
// in [1, n).
func IdentityFromHex(s string) (*Identity, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
	if err != nil {
		return nil, errors.Wrap(errors.ErrSignerKeyInvalid, "not valid hex")
	}
	if len(raw) != 32 {
		return nil, errors.Wrapf(errors.ErrSignerKeyInvalid, "expected 32 bytes, got %d", len(raw))
	}

	var d secp256k1.ModNScalar
	if overflow := d.SetByteSlice(raw); overflow {
		return nil, errors.Wrap(errors.ErrSignerKeyInvalid, "scalar not below group order")
	}
	if d.IsZero() {
		return nil, errors.Wrap(errors.ErrSignerKeyInvalid, "scalar is zero")
	}

	return NewIdentity(secp256k1.NewPrivateKey(&d)), nil
}

// IdentityFromEnv loads the signing identity from the ATTESTD_SIGNER_KEY
// environment variable. Callers treat any error as fatal; there is no
// per-request recovery from a missing or malformed signer key.
func IdentityFromEnv() (*Identity, error) {
	raw, ok := os.LookupEnv(EnvSignerKey)
	if !ok || raw == "" {
		return nil, errors.Wrapf(errors.ErrSignerKeyMissing, "%s", EnvSignerKey)
	}
	return IdentityFromHex(raw)
}

// Scalar returns the private scalar d.
func (id *Identity) Scalar() *secp256k1.ModNScalar {
	return &id.priv.Key
}

// Public returns the public point d·G.
func (id *Identity) Public() *secp256k1.PublicKey {
	return id.pub
}

// Address returns the checksummed address of the identity's public key.
func (id *Identity) Address() string {
	return ethaddr.Derive(id.pub)
}
