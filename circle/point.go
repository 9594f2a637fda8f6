// Package circle implements the circle group over the Mersenne-31 field
// tower and the coset and domain structures the circle transforms and
// FRI operate on.
package circle

import (
	"math/big"

	"github.com/teddyjfpender/circlestark/field"
)

// LogOrder is the base-2 logarithm of the order of the circle group
// over the base field.
const LogOrder = 31

// Point is a point (x, y) with x^2 + y^2 = 1, an element of the circle
// group under circle addition.
type Point[F field.Element[F]] struct {
	X, Y F
}

// Identity returns the group identity (1, 0).
func Identity[F field.Element[F]]() Point[F] {
	var z F
	return Point[F]{X: z.One(), Y: z.Zero()}
}

// Add returns the circle group sum of p and q.
func (p Point[F]) Add(q Point[F]) Point[F] {
	return Point[F]{
		X: p.X.Mul(q.X).Sub(p.Y.Mul(q.Y)),
		Y: p.X.Mul(q.Y).Add(p.Y.Mul(q.X)),
	}
}

// Double returns p + p.
func (p Point[F]) Double() Point[F] {
	return p.Add(p)
}

// Conjugate returns the group inverse (x, -y) of p.
func (p Point[F]) Conjugate() Point[F] {
	return Point[F]{X: p.X, Y: p.Y.Neg()}
}

// Neg is an alias for Conjugate.
func (p Point[F]) Neg() Point[F] {
	return p.Conjugate()
}

// Antipode returns (-x, -y), the point diametrically opposite p.
func (p Point[F]) Antipode() Point[F] {
	return Point[F]{X: p.X.Neg(), Y: p.Y.Neg()}
}

// Sub returns p - q.
func (p Point[F]) Sub(q Point[F]) Point[F] {
	return p.Add(q.Conjugate())
}

// MulUint64 returns k*p by binary double-and-add.
func (p Point[F]) MulUint64(k uint64) Point[F] {
	r := Identity[F]()
	for k > 0 {
		if k&1 == 1 {
			r = r.Add(p)
		}
		p = p.Double()
		k >>= 1
	}
	return r
}

// Mul returns k*p for an arbitrary precision scalar.
// Negative scalars multiply the conjugate.
func (p Point[F]) Mul(k *big.Int) Point[F] {
	if k.Sign() < 0 {
		return p.Conjugate().Mul(new(big.Int).Neg(k))
	}
	r := Identity[F]()
	for i := k.BitLen() - 1; i >= 0; i-- {
		r = r.Double()
		if k.Bit(i) == 1 {
			r = r.Add(p)
		}
	}
	return r
}

// MulSigned returns off*p, multiplying the conjugate when off is negative.
func (p Point[F]) MulSigned(off int64) Point[F] {
	if off < 0 {
		return p.Conjugate().MulUint64(uint64(-off))
	}
	return p.MulUint64(uint64(off))
}

// DoubleX maps an x-coordinate through the point-doubling map
// pi(x) = 2x^2 - 1.
func DoubleX[F field.Element[F]](x F) F {
	return x.Square().Double().Sub(x.One())
}

// FeltDrawer is the part of a Fiat-Shamir channel RandomPoint consumes.
type FeltDrawer interface {
	DrawFelt() field.QM31
}

// RandomPoint maps a channel draw t to a secure field circle point via the
// rational parametrization x = (1-t^2)/(1+t^2), y = 2t/(1+t^2), so no
// rejection sampling is needed.
func RandomPoint(ch FeltDrawer) Point[field.QM31] {
	t := ch.DrawFelt()
	dInv := t.Square().Add(t.One()).Inverse()
	return Point[field.QM31]{
		X: t.One().Sub(t.Square()).Mul(dInv),
		Y: t.Double().Mul(dInv),
	}
}
