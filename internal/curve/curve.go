// Package curve provides secp256k1 point validation and arithmetic for attestd.
//
// All point math is delegated to the decred secp256k1 implementation. This
// package layers the validation rules the signing engine depends on: every
// point that enters or leaves an operation satisfies the curve equation, and
// the point at infinity is never a valid result.
package curve

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/attestlab/attestd/internal/errors"
)

// generator is the fixed base point G, computed once at package init.
var generator = func() *secp256k1.PublicKey { //nolint:gochecknoglobals // Curve constant
	var one secp256k1.ModNScalar
	one.SetInt(1)
	var p secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&one, &p)
	p.ToAffine()
	return secp256k1.NewPublicKey(&p.X, &p.Y)
}()

// Generator returns the secp256k1 base point G.
func Generator() *secp256k1.PublicKey {
	return generator
}

// ValidatePoint checks that pub is a finite point satisfying the secp256k1
// curve equation. The curve has cofactor 1, so curve membership implies
// membership in the prime-order subgroup.
func ValidatePoint(pub *secp256k1.PublicKey) error {
	if pub == nil {
		return errors.Wrap(errors.ErrInvalidPoint, "nil point")
	}
	if !pub.IsOnCurve() {
		return errors.ErrInvalidPoint
	}
	return nil
}

// AddPoints returns p1 + p2.
//
// Both operands must be valid curve points and the sum must be finite;
// otherwise ErrInvalidPoint is returned. Callers handle the error explicitly
// rather than receiving a substitute value that could masquerade as a valid
// result.
func AddPoints(p1, p2 *secp256k1.PublicKey) (*secp256k1.PublicKey, error) {
	if err := ValidatePoint(p1); err != nil {
		return nil, errors.Wrap(err, "left operand")
	}
	if err := ValidatePoint(p2); err != nil {
		return nil, errors.Wrap(err, "right operand")
	}

	var j1, j2, sum secp256k1.JacobianPoint
	p1.AsJacobian(&j1)
	p2.AsJacobian(&j2)
	secp256k1.AddNonConst(&j1, &j2, &sum)

	return fromJacobian(&sum)
}

// ScalarBaseMult returns k·G. A zero scalar yields the point at infinity,
// which is reported as ErrInvalidPoint.
func ScalarBaseMult(k *secp256k1.ModNScalar) (*secp256k1.PublicKey, error) {
	var p secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(k, &p)
	return fromJacobian(&p)
}

// ScalarMult returns k·P for a valid point P. A zero scalar or invalid point
// yields ErrInvalidPoint.
func ScalarMult(k *secp256k1.ModNScalar, pub *secp256k1.PublicKey) (*secp256k1.PublicKey, error) {
	if err := ValidatePoint(pub); err != nil {
		return nil, err
	}

	var j, res secp256k1.JacobianPoint
	pub.AsJacobian(&j)
	secp256k1.ScalarMultNonConst(k, &j, &res)
	return fromJacobian(&res)
}

// fromJacobian converts a Jacobian point to an affine public key, rejecting
// the point at infinity.
func fromJacobian(p *secp256k1.JacobianPoint) (*secp256k1.PublicKey, error) {
	if p.Z.Normalize().IsZero() {
		return nil, errors.Wrap(errors.ErrInvalidPoint, "point at infinity")
	}
	p.ToAffine()
	pub := secp256k1.NewPublicKey(&p.X, &p.Y)
	if !pub.IsOnCurve() {
		return nil, errors.ErrInvalidPoint
	}
	return pub, nil
}

// HashToScalar interprets a 32-byte hash as a scalar modulo the group order n.
func HashToScalar(hash []byte) *secp256k1.ModNScalar {
	var s secp256k1.ModNScalar
	s.SetByteSlice(hash)
	return &s
}
