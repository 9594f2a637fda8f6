package poly

import (
	"github.com/teddyjfpender/circlestark/circle"
	"github.com/teddyjfpender/circlestark/field"
	"github.com/teddyjfpender/circlestark/num"
)

// LineDomain is the x projection of a coset whose points have pairwise
// distinct x coordinates, the folding target of each FRI step. Doubling
// halves it until it reaches size 1.
type LineDomain struct {
	Coset circle.Coset
}

// NewLineDomain wraps a coset as a line domain.
func NewLineDomain(c circle.Coset) LineDomain {
	return LineDomain{Coset: c}
}

// Size returns the number of points in the domain.
func (d LineDomain) Size() int {
	return d.Coset.Size()
}

// LogSize returns the base-2 logarithm of the domain size.
func (d LineDomain) LogSize() int {
	return d.Coset.Log
}

// At returns the i-th domain point.
func (d LineDomain) At(i int) field.M31 {
	return d.Coset.At(i).X
}

// Double maps the domain through pi(x) = 2x^2 - 1, halving its size.
func (d LineDomain) Double() LineDomain {
	return LineDomain{Coset: d.Coset.Double()}
}

// LineEvaluation holds secure field values of a function over a line
// domain, in bit-reversed order.
type LineEvaluation struct {
	Domain LineDomain
	Values []field.QM31
}

// NewLineEvaluation wraps values as an evaluation over domain.
// Panics if the lengths disagree.
func NewLineEvaluation(domain LineDomain, values []field.QM31) LineEvaluation {
	if len(values) != domain.Size() {
		panic("poly: evaluation length does not match domain size")
	}
	return LineEvaluation{Domain: domain, Values: values}
}

// LinePoly is a univariate polynomial in the line transform basis: the
// bits of index j select the basis factors x, pi(x), pi(pi(x)), ... of
// the j-th function, so degree grows with the index.
type LinePoly struct {
	Coeffs []field.QM31
}

// NewLinePoly wraps a power-of-two length coefficient vector.
func NewLinePoly(coeffs []field.QM31) LinePoly {
	if !num.IsPowerOfTwo(len(coeffs)) {
		panic("poly: coefficient count must be a power of two")
	}
	return LinePoly{Coeffs: coeffs}
}

// LogSize returns the base-2 logarithm of the coefficient count.
func (p LinePoly) LogSize() int {
	return num.Log2(len(p.Coeffs))
}

// EvalAtPoint evaluates the polynomial at an arbitrary x.
func (p LinePoly) EvalAtPoint(x field.QM31) field.QM31 {
	n := p.LogSize()
	if n == 0 {
		return p.Coeffs[0]
	}
	factors := make([]field.QM31, 0, n)
	factors = append(factors, x)
	for i := 1; i < n; i++ {
		x = circle.DoubleX(x)
		factors = append(factors, x)
	}
	reverse(factors)
	return fold(p.Coeffs, factors)
}

// InterpolateLine computes the coefficients of the polynomial whose
// values over ev's domain are ev. A size-1 evaluation is its own
// constant coefficient.
func InterpolateLine(ev LineEvaluation) LinePoly {
	v := make([]field.QM31, len(ev.Values))
	copy(v, ev.Values)

	layersInv := invertLayers(lineTwiddleLayers(ev.Domain.Coset))
	t := 1
	for _, tws := range layersInv {
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

	nInv := field.NewM31(uint32(len(v))).Inverse()
	for i := range v {
		v[i] = v[i].MulM31(nInv)
	}
	return LinePoly{Coeffs: v}
}

// EvaluateLine computes the values of p over domain, in bit-reversed
// order. The polynomial is zero-extended if it is smaller than the
// domain.
func EvaluateLine(p LinePoly, domain LineDomain) LineEvaluation {
	if p.LogSize() > domain.LogSize() {
		panic("poly: polynomial is larger than the domain")
	}
	v := make([]field.QM31, domain.Size())
	copy(v, p.Coeffs)

	layers := lineTwiddleLayers(domain.Coset)
	t := len(v) / 2
	for l := len(layers) - 1; l >= 0; l-- {
		tws := layers[l]
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
	return LineEvaluation{Domain: domain, Values: v}
}

// lineTwiddleLayers computes the x twiddles of the coset and its
// doublings, bit-reversal ordered per layer.
func lineTwiddleLayers(c circle.Coset) [][]field.M31 {
	layers := make([][]field.M31, 0, c.Log)
	for cnt := c.Size() / 2; cnt >= 1; cnt /= 2 {
		xs := make([]field.M31, cnt)
		p := c.Initial
		for i := range xs {
			xs[i] = p.X
			p = p.Add(c.Step)
		}
		num.BitReverseInPlace(xs)
		layers = append(layers, xs)
		if cnt == 1 {
			break
		}
		c = c.Double()
	}
	return layers
}
