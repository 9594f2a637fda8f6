// Package field implements the Mersenne-31 field tower used by the circle
// transforms: the base field M31, its complex extension CM31 with i^2 = -1,
// and the degree four extension QM31 with u^2 = 2 + i.
package field

// Element is the capability set the circle and transform algorithms are
// written against. Both M31 and QM31 implement it.
type Element[F any] interface {
	Add(F) F
	Sub(F) F
	Mul(F) F
	MulM31(M31) F
	Double() F
	Neg() F
	Square() F
	Inverse() F
	IsZero() bool
	Equal(F) bool
	Zero() F
	One() F
}

// BatchInverse sets vOut[i] = v[i]^-1 using Montgomery's trick,
// which costs a single field inversion for the whole batch.
// Panics if any element is zero, or if vOut is shorter than v.
func BatchInverse[F Element[F]](v, vOut []F) {
	if len(vOut) < len(v) {
		panic("field: output buffer too small")
	}
	if len(v) == 0 {
		return
	}

	acc := v[0].One()
	for i := range v {
		vOut[i] = acc
		acc = acc.Mul(v[i])
	}
	acc = acc.Inverse()
	for i := len(v) - 1; i >= 0; i-- {
		vOut[i] = vOut[i].Mul(acc)
		acc = acc.Mul(v[i])
	}
}
