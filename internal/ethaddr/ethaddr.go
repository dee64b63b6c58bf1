// Package ethaddr derives checksummed 20-byte addresses from secp256k1 public
// keys and produces the compact public-key views carried in signed responses.
package ethaddr

import (
	"encoding/hex"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Address returns the 20-byte address of a public key: the last 20 bytes of
// keccak256 over the uncompressed point with the 0x04 prefix stripped.
func Address(pub *secp256k1.PublicKey) common.Address {
	uncompressed := pub.SerializeUncompressed()
	return common.BytesToAddress(crypto.Keccak256(uncompressed[1:]))
}

// Derive returns the checksummed hex form of the public key's address. The
// mixed-case checksum casing follows EIP-55: the case of each hex character is
// driven by the keccak256 hash of the lowercase address body.
func Derive(pub *secp256k1.PublicKey) string {
	return Address(pub).Hex()
}

// YParity returns the parity of the public key's y-coordinate: 0 for even,
// 1 for odd.
func YParity(pub *secp256k1.PublicKey) byte {
	// The compressed encoding prefix is 0x02 for even y and 0x03 for odd y.
	if pub.SerializeCompressed()[0] == secp256k1.PubKeyFormatCompressedOdd {
		return 1
	}
	return 0
}

// XHex returns the public key's x-coordinate as 0x-prefixed 64-character hex.
func XHex(pub *secp256k1.PublicKey) string {
	compressed := pub.SerializeCompressed()
	return "0x" + hex.EncodeToString(compressed[1:33])
}

// View is the wire representation of a public key. The minimal form carries
// only the x-coordinate and y-parity, which is sufficient to reconstruct the
// full point; the full form adds the derived address and the compressed
// encoding for convenience.
type View struct {
	X       string `json:"x"`
	YParity string `json:"yParity"`
	Address string `json:"address,omitempty"`
	Encoded string `json:"encoded,omitempty"`
}

// NewView builds a public-key view. When minimal is true only the x-coordinate
// and y-parity are populated.
func NewView(pub *secp256k1.PublicKey, minimal bool) View {
	v := View{
		X:       XHex(pub),
		YParity: "0",
	}
	if YParity(pub) == 1 {
		v.YParity = "1"
	}
	if !minimal {
		v.Address = Derive(pub)
		v.Encoded = "0x" + hex.EncodeToString(pub.SerializeCompressed())
	}
	return v
}
