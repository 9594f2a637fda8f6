package fri

import (
	"github.com/teddyjfpender/circlestark/circle"
	"github.com/teddyjfpender/circlestark/field"
	"github.com/teddyjfpender/circlestark/num"
	"github.com/teddyjfpender/circlestark/poly"
)

// halfM31 is the inverse of two in the base field.
const halfM31 = field.M31(1 << 30)

// FoldLine folds 2n line evaluations into n evaluations on the doubled
// domain, combining each conjugate pair as
//
//	f'(pi(x)) = (f(x)+f(-x))/2 + alpha*(f(x)-f(-x))/(2x)
//
// so a polynomial of degree below 2d folds to one of degree below d.
// A single evaluation is returned unchanged, terminating the recursion;
// an empty or odd length input panics.
func FoldLine(ev poly.LineEvaluation, alpha field.QM31) poly.LineEvaluation {
	n := len(ev.Values)
	switch {
	case n == 0:
		panic("fri: folding an empty evaluation")
	case n == 1:
		return ev
	case n%2 == 1:
		panic("fri: folding an odd length evaluation")
	}

	c := ev.Domain.Coset
	xInv := foldTwiddleInverses(c, false)
	out := make([]field.QM31, n/2)
	for i := range out {
		fx, fnx := ev.Values[2*i], ev.Values[2*i+1]
		f0 := fx.Add(fnx).MulM31(halfM31)
		f1 := fx.Sub(fnx).MulM31(halfM31).MulM31(xInv[i])
		out[i] = f0.Add(alpha.Mul(f1))
	}
	return poly.NewLineEvaluation(ev.Domain.Double(), out)
}

// FoldCircleIntoLine performs the one folding step specific to circle
// domains, reducing a bit-reversed circle evaluation to a line
// evaluation of half the size over the domain's half coset:
//
//	f'(x_p) = (f(p)+f(-p))/2 + alpha*(f(p)-f(-p))/(2*y_p)
//
// Circle domains are not halvable by the line rule, so this bridge runs
// exactly once per FRI instance.
func FoldCircleIntoLine(ev poly.SecureEvaluation, alpha field.QM31) poly.LineEvaluation {
	if ev.Order != poly.BitReversed {
		panic("fri: evaluation must be in bit-reversed order")
	}
	n := len(ev.Values)
	switch {
	case n == 0:
		panic("fri: folding an empty evaluation")
	case n%2 == 1:
		panic("fri: folding an odd length evaluation")
	}

	h := ev.Domain.HalfCoset
	yInv := foldTwiddleInverses(h, true)
	out := make([]field.QM31, n/2)
	for i := range out {
		fp, fnp := ev.Values[2*i], ev.Values[2*i+1]
		f0 := fp.Add(fnp).MulM31(halfM31)
		f1 := fp.Sub(fnp).MulM31(halfM31).MulM31(yInv[i])
		out[i] = f0.Add(alpha.Mul(f1))
	}
	return poly.NewLineEvaluation(poly.NewLineDomain(h), out)
}

// foldTwiddleInverses returns the inverted folding denominators of c in
// bit-reversed pair order: the y coordinates of the full coset when
// useY is set, the x coordinates of its first half otherwise.
func foldTwiddleInverses(c circle.Coset, useY bool) []field.M31 {
	var tw []field.M31
	if useY {
		tw = make([]field.M31, c.Size())
		p := c.Initial
		for i := range tw {
			tw[i] = p.Y
			p = p.Add(c.Step)
		}
	} else {
		tw = make([]field.M31, c.Size()/2)
		p := c.Initial
		for i := range tw {
			tw[i] = p.X
			p = p.Add(c.Step)
		}
	}
	num.BitReverseInPlace(tw)
	inv := make([]field.M31, len(tw))
	field.BatchInverse(tw, inv)
	return inv
}

// Decompose splits a bit-reversed secure evaluation into a component g
// in the image of the circle transform plus a multiple of the vanishing
// alternator of the domain: lambda is the average difference between
// the half coset values and their conjugates, g the residual.
// Reconstruct inverts it exactly.
func Decompose(ev poly.SecureEvaluation) (poly.SecureEvaluation, field.QM31) {
	if ev.Order != poly.BitReversed {
		panic("fri: evaluation must be in bit-reversed order")
	}
	n := len(ev.Values)

	var sumHalf, sumConj field.QM31
	for i := 0; i < n; i += 2 {
		sumHalf = sumHalf.Add(ev.Values[i])
		sumConj = sumConj.Add(ev.Values[i+1])
	}
	lambda := sumHalf.Sub(sumConj).MulM31(field.NewM31(uint32(n)).Inverse())

	g := make([]field.QM31, n)
	for i := 0; i < n; i += 2 {
		g[i] = ev.Values[i].Sub(lambda)
		g[i+1] = ev.Values[i+1].Add(lambda)
	}
	return poly.SecureEvaluation{Domain: ev.Domain, Values: g, Order: poly.BitReversed}, lambda
}

// Reconstruct is the exact inverse of Decompose.
func Reconstruct(g poly.SecureEvaluation, lambda field.QM31) poly.SecureEvaluation {
	if g.Order != poly.BitReversed {
		panic("fri: evaluation must be in bit-reversed order")
	}
	v := make([]field.QM31, len(g.Values))
	for i := 0; i < len(v); i += 2 {
		v[i] = g.Values[i].Add(lambda)
		v[i+1] = g.Values[i+1].Sub(lambda)
	}
	return poly.SecureEvaluation{Domain: g.Domain, Values: v, Order: poly.BitReversed}
}
