package keys

import (
	"encoding/hex"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/attestlab/attestd/internal/errors"
)

// Nonce is a single-use ephemeral key pair. Reusing a nonce across two
// distinct messages signed by the same private key leaks that key
// algebraically, so a Nonce must never outlive the one Sign call it was
// generated for.
type Nonce struct {
	priv *secp256k1.PrivateKey
	pub  *secp256k1.PublicKey
}

// NewNonce wraps an existing private key as a nonce. Callers that construct
// nonces this way own the single-use contract themselves.
func NewNonce(priv *secp256k1.PrivateKey) *Nonce {
	return &Nonce{priv: priv, pub: priv.PubKey()}
}

// GenerateNonce draws a fresh ephemeral key pair from crypto/rand. Every call
// produces independent output; there is no pooling and no shared state across
// calls.
func GenerateNonce() (*Nonce, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate nonce key")
	}
	return &Nonce{priv: priv, pub: priv.PubKey()}, nil
}

// Scalar returns the ephemeral scalar k.
func (n *Nonce) Scalar() *secp256k1.ModNScalar {
	return &n.priv.Key
}

// Public returns the nonce point R = k·G.
func (n *Nonce) Public() *secp256k1.PublicKey {
	return n.pub
}

// NewRequestID returns an unpredictable request identifier: the hex encoding
// of a freshly generated private scalar. The identifier is entropy for the
// signed payload only; it is never used as nonce material for the signature
// itself.
func NewRequestID() (string, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return "", errors.Wrap(err, "failed to generate request id")
	}
	return "0x" + hex.EncodeToString(priv.Serialize()), nil
}
