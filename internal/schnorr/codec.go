package schnorr

import (
	"encoding/hex"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/attestlab/attestd/internal/errors"
)

// encodedBodyLen is the hex-character length of an encoded signature body:
// two 32-byte scalars.
const encodedBodyLen = 128

// Signature is a (challenge, response) scalar pair. It is created once per
// signed message and immutable thereafter.
type Signature struct {
	E secp256k1.ModNScalar
	S secp256k1.ModNScalar
}

// Encode serializes the signature as "0x" followed by the challenge and
// response scalars as 32-byte big-endian hex, 130 characters total.
func (sig Signature) Encode() string {
	e := sig.E.Bytes()
	s := sig.S.Bytes()
	return "0x" + hex.EncodeToString(e[:]) + hex.EncodeToString(s[:])
}

// Decode parses a wire-format signature. Any input whose hex body is not
// exactly 128 characters, or is not valid hex, fails with
// ErrMalformedSignature. Scalars are reduced modulo the group order.
func Decode(encoded string) (Signature, error) {
	body := strings.TrimPrefix(encoded, "0x")
	if len(body) != encodedBodyLen {
		return Signature{}, errors.Wrapf(errors.ErrMalformedSignature, "body length %d, want %d", len(body), encodedBodyLen)
	}

	raw, err := hex.DecodeString(body)
	if err != nil {
		return Signature{}, errors.Wrap(errors.ErrMalformedSignature, "not valid hex")
	}

	var sig Signature
	sig.E.SetByteSlice(raw[:32])
	sig.S.SetByteSlice(raw[32:])
	return sig, nil
}
