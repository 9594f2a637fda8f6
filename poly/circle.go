package poly

import (
	"github.com/teddyjfpender/circlestark/circle"
	"github.com/teddyjfpender/circlestark/field"
	"github.com/teddyjfpender/circlestark/num"
)

// Order tags the storage order of an evaluation. Evaluations are never
// silently reinterpreted; conversion goes through BitReverse.
type Order int

const (
	// Natural order follows the domain's iteration order.
	Natural Order = iota
	// BitReversed order stores the value of the i-th domain point at
	// the bit-reversed position of i.
	BitReversed
)

// CircleEvaluation holds the values of a function over a circle domain,
// in the tagged storage order.
type CircleEvaluation[F field.Element[F]] struct {
	Domain circle.Domain
	Values []F
	Order  Order
}

// SecureEvaluation is a circle evaluation over the secure field.
type SecureEvaluation = CircleEvaluation[field.QM31]

// NewCircleEvaluation wraps values as an evaluation over domain.
// Panics if the lengths disagree.
func NewCircleEvaluation[F field.Element[F]](domain circle.Domain, values []F, order Order) CircleEvaluation[F] {
	if len(values) != domain.Size() {
		panic("poly: evaluation length does not match domain size")
	}
	return CircleEvaluation[F]{Domain: domain, Values: values, Order: order}
}

// BitReverse returns the evaluation in the opposite storage order.
func (ev CircleEvaluation[F]) BitReverse() CircleEvaluation[F] {
	values := num.BitReverse(ev.Values)
	order := BitReversed
	if ev.Order == BitReversed {
		order = Natural
	}
	return CircleEvaluation[F]{Domain: ev.Domain, Values: values, Order: order}
}

// CirclePoly is a polynomial on the circle, held as its coefficients in
// the circle transform basis: the bits of index j select the basis
// factors y, x, pi(x), ... of the j-th function, so degree grows with
// the index and zero-padding the tail extends the degree bound.
type CirclePoly[F field.Element[F]] struct {
	Coeffs []F
}

// NewCirclePoly wraps a power-of-two length coefficient vector.
func NewCirclePoly[F field.Element[F]](coeffs []F) CirclePoly[F] {
	if !num.IsPowerOfTwo(len(coeffs)) {
		panic("poly: coefficient count must be a power of two")
	}
	return CirclePoly[F]{Coeffs: coeffs}
}

// LogSize returns the base-2 logarithm of the coefficient count.
func (p CirclePoly[F]) LogSize() int {
	return num.Log2(len(p.Coeffs))
}

// Extend zero-pads the coefficients up to 2^logSize, raising the declared
// degree bound without changing the polynomial. Panics if logSize is
// below the current size; a degree bound cannot shrink implicitly.
func (p CirclePoly[F]) Extend(logSize int) CirclePoly[F] {
	if logSize < p.LogSize() {
		panic("poly: cannot extend to a smaller size")
	}
	coeffs := make([]F, 1<<logSize)
	copy(coeffs, p.Coeffs)
	var zero F
	for i := len(p.Coeffs); i < len(coeffs); i++ {
		coeffs[i] = zero.Zero()
	}
	return CirclePoly[F]{Coeffs: coeffs}
}

// EvalAtPoint evaluates the polynomial at an arbitrary circle point by
// folding the coefficients against the basis values
// y, x, pi(x), ..., pi^(n-2)(x).
func (p CirclePoly[F]) EvalAtPoint(pt circle.Point[F]) F {
	n := p.LogSize()
	if n == 0 {
		return p.Coeffs[0]
	}
	factors := make([]F, 0, n)
	factors = append(factors, pt.Y)
	if n >= 2 {
		x := pt.X
		factors = append(factors, x)
		for i := 2; i < n; i++ {
			x = circle.DoubleX(x)
			factors = append(factors, x)
		}
	}
	reverse(factors)
	return fold(p.Coeffs, factors)
}

// EvalAtSecurePoint evaluates a base field polynomial at a secure field
// point.
func EvalAtSecurePoint(p CirclePoly[field.M31], pt circle.Point[field.QM31]) field.QM31 {
	coeffs := make([]field.QM31, len(p.Coeffs))
	for i, c := range p.Coeffs {
		coeffs[i] = field.QM31FromM31(c)
	}
	return CirclePoly[field.QM31]{Coeffs: coeffs}.EvalAtPoint(pt)
}

// Evaluate computes the values of p over domain, returned in natural
// order. The polynomial is extended if it is smaller than the domain;
// a polynomial larger than the domain panics.
func Evaluate[F field.Element[F]](p CirclePoly[F], domain circle.Domain, tw *TwiddleTree) CircleEvaluation[F] {
	if !tw.matches(domain.HalfCoset) {
		panic("poly: twiddle tree does not match domain")
	}
	if p.LogSize() > domain.LogSize() {
		panic("poly: polynomial is larger than the domain")
	}
	if p.LogSize() < domain.LogSize() {
		p = p.Extend(domain.LogSize())
	}

	v := make([]F, len(p.Coeffs))
	copy(v, p.Coeffs)
	fftInPlace(v, tw.Tw)
	num.BitReverseInPlace(v)
	return CircleEvaluation[F]{Domain: domain, Values: v, Order: Natural}
}

// Interpolate computes the coefficients of the polynomial whose values
// over ev's domain are ev. It is the exact inverse of Evaluate.
func Interpolate[F field.Element[F]](ev CircleEvaluation[F], tw *TwiddleTree) CirclePoly[F] {
	if !tw.matches(ev.Domain.HalfCoset) {
		panic("poly: twiddle tree does not match domain")
	}

	v := make([]F, len(ev.Values))
	copy(v, ev.Values)
	if ev.Order == Natural {
		num.BitReverseInPlace(v)
	}
	ifftInPlace(v, tw.TwInv)

	nInv := field.NewM31(uint32(len(v))).Inverse()
	for i := range v {
		v[i] = v[i].MulM31(nInv)
	}
	return CirclePoly[F]{Coeffs: v}
}

// ifftInPlace runs the inverse butterfly passes on bit-reversal ordered
// values: the circle layer on adjacent pairs first, then the line layers
// with doubling stride. Output is unnormalized.
func ifftInPlace[F field.Element[F]](v []F, twInv [][]field.M31) {
	t := 1
	for _, tws := range twInv {
		nblocks := len(v) / (2 * t)
		for b := 0; b < nblocks; b++ {
			j0 := 2 * b * t
			for j := j0; j < j0+t; j++ {
				u, w := v[j], v[j+t]
				v[j] = u.Add(w)
				v[j+t] = u.Sub(w).MulM31(tws[b])
			}
		}
		t *= 2
	}
}

// fftInPlace runs the forward butterfly passes, the exact inverse layer
// order of ifftInPlace.
func fftInPlace[F field.Element[F]](v []F, tw [][]field.M31) {
	n := num.Log2(len(v))
	t := len(v) / 2
	for l := n - 1; l >= 0; l-- {
		tws := tw[l]
		nblocks := len(v) / (2 * t)
		for b := 0; b < nblocks; b++ {
			j0 := 2 * b * t
			for j := j0; j < j0+t; j++ {
				u, w := v[j], v[j+t].MulM31(tws[b])
				v[j] = u.Add(w)
				v[j+t] = u.Sub(w)
			}
		}
		t /= 2
	}
}

// fold evaluates a coefficient vector against folding factors ordered
// outermost first.
func fold[F field.Element[F]](v, factors []F) F {
	if len(v) == 1 {
		return v[0]
	}
	h := len(v) / 2
	lhs := fold(v[:h], factors[1:])
	rhs := fold(v[h:], factors[1:])
	return lhs.Add(rhs.Mul(factors[0]))
}

func reverse[T any](v []T) {
	for i, j := 0, len(v)-1; i < j; i, j = i+1, j-1 {
		v[i], v[j] = v[j], v[i]
	}
}
