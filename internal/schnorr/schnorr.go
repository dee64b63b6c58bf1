// Package schnorr implements the single-signer Schnorr scheme used for
// attestd responses: a keccak256 challenge hash binding the signer's public
// key, the message digest, and the address of the nonce point, with the
// subtractive response formula s = k − d·e mod n.
//
// The subtractive form is authoritative for this system. Sign and Verify are
// paired around it; converting to the more common additive convention would
// break compatibility with every deployed verifier.
package schnorr

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/attestlab/attestd/internal/curve"
	"github.com/attestlab/attestd/internal/errors"
	"github.com/attestlab/attestd/internal/ethaddr"
	"github.com/attestlab/attestd/internal/keys"
)

// DigestLen is the required length of a message digest in bytes.
const DigestLen = 32

// ChallengeHash derives the challenge scalar e. The preimage is the packed
// concatenation of the signer public key's x-coordinate (32 bytes), a single
// byte for its y-parity, the raw message digest (32 bytes), and the raw
// 20-byte nonce-point address; the keccak256 of those 85 bytes is interpreted
// as a scalar modulo the group order.
func ChallengeHash(signerPub *secp256k1.PublicKey, nonceAddress common.Address, digest []byte) *secp256k1.ModNScalar {
	compressed := signerPub.SerializeCompressed()

	preimage := make([]byte, 0, 32+1+len(digest)+common.AddressLength)
	preimage = append(preimage, compressed[1:33]...)
	preimage = append(preimage, ethaddr.YParity(signerPub))
	preimage = append(preimage, digest...)
	preimage = append(preimage, nonceAddress.Bytes()...)

	return curve.HashToScalar(crypto.Keccak256(preimage))
}

// Sign produces a signature over a 32-byte message digest.
//
// The nonce must be freshly generated for this digest and discarded
// afterwards; the engine draws no randomness of its own and performs no reuse
// detection. That contract belongs to the caller.
func Sign(id *keys.Identity, nonce *keys.Nonce, digest []byte) (Signature, error) {
	if len(digest) != DigestLen {
		return Signature{}, errors.Wrapf(errors.ErrDigestLength, "got %d", len(digest))
	}

	addrR := ethaddr.Address(nonce.Public())
	e := ChallengeHash(id.Public(), addrR, digest)

	// s = k − d·e mod n
	de := new(secp256k1.ModNScalar).Mul2(id.Scalar(), e)
	s := new(secp256k1.ModNScalar).Add2(nonce.Scalar(), de.Negate())

	return Signature{E: *e, S: *s}, nil
}

// Verify reports whether sig is a valid signature by signerPub over digest.
//
// Verification fails closed: an invalid public key, a degenerate recovered
// point, or a wrong-length digest all yield false rather than an error.
// The recovered nonce point is R_v = s·G + e·P; the signature is valid iff
// the challenge recomputed from R_v's address equals e.
func Verify(signerPub *secp256k1.PublicKey, digest []byte, sig Signature) bool {
	if len(digest) != DigestLen {
		return false
	}
	if err := curve.ValidatePoint(signerPub); err != nil {
		return false
	}

	sG, err := curve.ScalarBaseMult(&sig.S)
	if err != nil {
		return false
	}
	eP, err := curve.ScalarMult(&sig.E, signerPub)
	if err != nil {
		return false
	}
	rv, err := curve.AddPoints(sG, eP)
	if err != nil {
		return false
	}

	ev := ChallengeHash(signerPub, ethaddr.Address(rv), digest)
	return ev.Equals(&sig.E)
}

// VerifyEncoded decodes a wire-format signature string and verifies it.
// Decode failures yield false.
func VerifyEncoded(signerPub *secp256k1.PublicKey, digest []byte, encoded string) bool {
	sig, err := Decode(encoded)
	if err != nil {
		return false
	}
	return Verify(signerPub, digest, sig)
}
