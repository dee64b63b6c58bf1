// Package abihash computes order- and type-sensitive commitment hashes over
// typed fields, using solidity-style packed encoding and keccak256.
//
// The type vocabulary is deliberately small: the tags accepted here are the
// only ones a computation module may use when describing its signed fields.
package abihash

import (
	"encoding/hex"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/attestlab/attestd/internal/errors"
)

// Type tags accepted in a Field. Matching is exact.
const (
	TypeUint256 = "uint256"
	TypeUint32  = "uint32"
	TypeUint8   = "uint8"
	TypeInt256  = "int256"
	TypeAddress = "address"
	TypeBool    = "bool"
	TypeBytes   = "bytes"
	TypeBytes32 = "bytes32"
	TypeString  = "string"
)

// Field is a single named, typed value included in a commitment hash.
// Fields are hashed in the order given; reordering or retyping a field
// changes the hash.
type Field struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// Hash computes keccak256 over the packed encoding of the fields.
func Hash(fields []Field) ([32]byte, error) {
	var packed []byte
	for i, f := range fields {
		enc, err := packField(f)
		if err != nil {
			return [32]byte{}, errors.Wrapf(err, "field %d (%s)", i, f.Name)
		}
		packed = append(packed, enc...)
	}

	var out [32]byte
	copy(out[:], crypto.Keccak256(packed))
	return out, nil
}

// packField encodes a single field using solidity packed-encoding widths:
// uint256/int256/bytes32 occupy 32 bytes, address 20, uint32 4, uint8 and
// bool 1, and bytes/string their raw length.
func packField(f Field) ([]byte, error) {
	switch f.Type {
	case TypeUint256:
		v, err := toBigInt(f.Value)
		if err != nil {
			return nil, err
		}
		if v.Sign() < 0 || v.BitLen() > 256 {
			return nil, errors.Wrapf(errors.ErrFieldValueMismatch, "uint256 out of range")
		}
		return common.LeftPadBytes(v.Bytes(), 32), nil

	case TypeInt256:
		v, err := toBigInt(f.Value)
		if err != nil {
			return nil, err
		}
		if v.Sign() < 0 {
			// Two's complement over 256 bits.
			v = new(big.Int).Add(v, oneShl256)
		}
		if v.Sign() < 0 || v.BitLen() > 256 {
			return nil, errors.Wrapf(errors.ErrFieldValueMismatch, "int256 out of range")
		}
		return common.LeftPadBytes(v.Bytes(), 32), nil

	case TypeUint32:
		v, err := toBigInt(f.Value)
		if err != nil {
			return nil, err
		}
		if v.Sign() < 0 || v.BitLen() > 32 {
			return nil, errors.Wrapf(errors.ErrFieldValueMismatch, "uint32 out of range")
		}
		return common.LeftPadBytes(v.Bytes(), 4), nil

	case TypeUint8:
		v, err := toBigInt(f.Value)
		if err != nil {
			return nil, err
		}
		if v.Sign() < 0 || v.BitLen() > 8 {
			return nil, errors.Wrapf(errors.ErrFieldValueMismatch, "uint8 out of range")
		}
		return common.LeftPadBytes(v.Bytes(), 1), nil

	case TypeAddress:
		switch v := f.Value.(type) {
		case common.Address:
			return v.Bytes(), nil
		case string:
			if !common.IsHexAddress(v) {
				return nil, errors.Wrapf(errors.ErrFieldValueMismatch, "not a hex address: %q", v)
			}
			return common.HexToAddress(v).Bytes(), nil
		default:
			return nil, errors.Wrapf(errors.ErrFieldValueMismatch, "address from %T", f.Value)
		}

	case TypeBool:
		v, ok := f.Value.(bool)
		if !ok {
			return nil, errors.Wrapf(errors.ErrFieldValueMismatch, "bool from %T", f.Value)
		}
		if v {
			return []byte{1}, nil
		}
		return []byte{0}, nil

	case TypeBytes:
		switch v := f.Value.(type) {
		case []byte:
			return v, nil
		case string:
			b, err := hex.DecodeString(strings.TrimPrefix(v, "0x"))
			if err != nil {
				return nil, errors.Wrapf(errors.ErrFieldValueMismatch, "bytes from %q", v)
			}
			return b, nil
		default:
			return nil, errors.Wrapf(errors.ErrFieldValueMismatch, "bytes from %T", f.Value)
		}

	case TypeBytes32:
		switch v := f.Value.(type) {
		case [32]byte:
			return v[:], nil
		case []byte:
			if len(v) != 32 {
				return nil, errors.Wrapf(errors.ErrFieldValueMismatch, "bytes32 length %d", len(v))
			}
			return v, nil
		case string:
			b, err := hex.DecodeString(strings.TrimPrefix(v, "0x"))
			if err != nil || len(b) != 32 {
				return nil, errors.Wrapf(errors.ErrFieldValueMismatch, "bytes32 from %q", v)
			}
			return b, nil
		default:
			return nil, errors.Wrapf(errors.ErrFieldValueMismatch, "bytes32 from %T", f.Value)
		}

	case TypeString:
		v, ok := f.Value.(string)
		if !ok {
			return nil, errors.Wrapf(errors.ErrFieldValueMismatch, "string from %T", f.Value)
		}
		return []byte(v), nil

	default:
		return nil, errors.Wrapf(errors.ErrUnknownFieldType, "%q", f.Type)
	}
}

// oneShl256 is 2^256, used for two's-complement encoding of negative int256.
var oneShl256 = new(big.Int).Lsh(big.NewInt(1), 256) //nolint:gochecknoglobals // Constant

// toBigInt widens the integer representations accepted for numeric type tags.
func toBigInt(v any) (*big.Int, error) {
	switch n := v.(type) {
	case *big.Int:
		if n == nil {
			return nil, errors.Wrap(errors.ErrFieldValueMismatch, "nil *big.Int")
		}
		return n, nil
	case big.Int:
		return &n, nil
	case int:
		return big.NewInt(int64(n)), nil
	case int64:
		return big.NewInt(n), nil
	case uint64:
		return new(big.Int).SetUint64(n), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(n)), nil
	case float64:
		// JSON numbers decode as float64; only exact integers are acceptable.
		if n != math.Trunc(n) || math.Abs(n) >= 1<<53 {
			return nil, errors.Wrapf(errors.ErrFieldValueMismatch, "integer from float %v", n)
		}
		return big.NewInt(int64(n)), nil
	case string:
		s := n
		base := 10
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			s, base = s[2:], 16
		}
		parsed, ok := new(big.Int).SetString(s, base)
		if !ok {
			return nil, errors.Wrapf(errors.ErrFieldValueMismatch, "integer from %q", n)
		}
		return parsed, nil
	case [32]byte:
		return new(big.Int).SetBytes(n[:]), nil
	default:
		return nil, fmt.Errorf("%w: integer from %T", errors.ErrFieldValueMismatch, v)
	}
}
