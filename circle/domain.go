package circle

import (
	"github.com/teddyjfpender/circlestark/field"
)

// Domain is a circle domain: the disjoint union of a half coset and its
// conjugate. Iteration order is fixed, half coset points first, then the
// conjugated points.
type Domain struct {
	HalfCoset Coset
}

// NewDomain returns the circle domain spanned by half and its conjugate.
func NewDomain(half Coset) Domain {
	return Domain{HalfCoset: half}
}

// Size returns the number of points in the domain.
func (d Domain) Size() int {
	return 2 * d.HalfCoset.Size()
}

// LogSize returns the base-2 logarithm of the domain size.
func (d Domain) LogSize() int {
	return d.HalfCoset.Log + 1
}

// IndexAt returns the index of the i-th domain point: the half coset for
// i below its size, the conjugated half coset above. Behavior for i at or
// above the domain size is the caller's responsibility.
func (d Domain) IndexAt(i int) PointIndex {
	h := d.HalfCoset.Size()
	if i < h {
		return d.HalfCoset.IndexAt(i)
	}
	return d.HalfCoset.IndexAt(i - h).Neg()
}

// At returns the i-th domain point.
func (d Domain) At(i int) Point[field.M31] {
	return d.IndexAt(i).ToPoint()
}

// Indices returns the indices of all domain points in iteration order.
func (d Domain) Indices() []PointIndex {
	idx := make([]PointIndex, d.Size())
	for i := range idx {
		idx[i] = d.IndexAt(i)
	}
	return idx
}

// IsCanonic reports whether the domain is the canonic evaluation domain
// of its size.
func (d Domain) IsCanonic() bool {
	return d.HalfCoset.InitialIndex.Scale(4) == d.HalfCoset.StepSize
}

// CanonicCoset is a coset of the odds form G_2n + <G_n>, the standard
// interpolation coset. No point of it has a zero x or y coordinate, so
// transform divisions never see a zero denominator.
type CanonicCoset struct {
	Coset Coset
}

// NewCanonicCoset returns the canonic coset of size 2^log.
// Panics if log is not positive; a canonic coset of size 1 is
// meaningless in this representation.
func NewCanonicCoset(log int) CanonicCoset {
	if log <= 0 {
		panic("circle: canonic coset log size must be positive")
	}
	return CanonicCoset{Coset: Odds(log)}
}

// Size returns the number of points in the coset.
func (c CanonicCoset) Size() int {
	return c.Coset.Size()
}

// LogSize returns the base-2 logarithm of the coset size.
func (c CanonicCoset) LogSize() int {
	return c.Coset.Log
}

// HalfCoset returns the quarter-odds coset whose union with its
// conjugate is the canonic coset.
func (c CanonicCoset) HalfCoset() Coset {
	return HalfOdds(c.Coset.Log - 1)
}

// Domain returns the circle domain view of the coset.
func (c CanonicCoset) Domain() Domain {
	return NewDomain(c.HalfCoset())
}

// IndexAt returns the index of the i-th coset point.
func (c CanonicCoset) IndexAt(i int) PointIndex {
	return c.Coset.IndexAt(i)
}

// At returns the i-th coset point.
func (c CanonicCoset) At(i int) Point[field.M31] {
	return c.Coset.At(i)
}
