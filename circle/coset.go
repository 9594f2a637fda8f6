package circle

import (
	"github.com/teddyjfpender/circlestark/field"
)

// Coset is the set {initial + k*step : k in [0, 2^log)} in the base field
// circle group, with step a generator of the size-2^log subgroup.
// Cosets are immutable; derived operations return new values.
type Coset struct {
	InitialIndex PointIndex
	Initial      Point[field.M31]
	StepSize     PointIndex
	Step         Point[field.M31]
	Log          int
}

// NewCoset returns the coset initial + <subgroup_gen(log)>.
// Panics if log exceeds LogOrder.
func NewCoset(initial PointIndex, log int) Coset {
	return newCoset(initial, SubgroupGen(log), log)
}

func newCoset(initial, step PointIndex, log int) Coset {
	return Coset{
		InitialIndex: initial,
		Initial:      initial.ToPoint(),
		StepSize:     step,
		Step:         step.ToPoint(),
		Log:          log,
	}
}

// Subgroup returns the subgroup of size 2^log.
func Subgroup(log int) Coset {
	return NewCoset(0, log)
}

// Odds returns the coset G_2n + <G_n> of odd multiples of G_2n,
// n = 2^log.
func Odds(log int) Coset {
	return NewCoset(SubgroupGen(log+1), log)
}

// HalfOdds returns the coset G_4n + <G_n>, n = 2^log. It is the half
// coset of the canonic domain of size 2n.
func HalfOdds(log int) Coset {
	return NewCoset(SubgroupGen(log+2), log)
}

// Size returns the number of points in the coset.
func (c Coset) Size() int {
	return 1 << c.Log
}

// LogSize returns the base-2 logarithm of the coset size.
func (c Coset) LogSize() int {
	return c.Log
}

// IndexAt returns the index of the i-th coset point.
func (c Coset) IndexAt(i int) PointIndex {
	return c.InitialIndex.Add(c.StepSize.Scale(uint64(i)))
}

// At returns the i-th coset point.
func (c Coset) At(i int) Point[field.M31] {
	return c.IndexAt(i).ToPoint()
}

// Indices returns the indices of all coset points in iteration order.
func (c Coset) Indices() []PointIndex {
	idx := make([]PointIndex, c.Size())
	for i := range idx {
		idx[i] = c.IndexAt(i)
	}
	return idx
}

// Points returns all coset points in iteration order.
func (c Coset) Points() []Point[field.M31] {
	pts := make([]Point[field.M31], c.Size())
	p := c.Initial
	for i := range pts {
		pts[i] = p
		p = p.Add(c.Step)
	}
	return pts
}

// Double maps the coset through point doubling, halving its size.
// Panics on a size-1 coset.
func (c Coset) Double() Coset {
	if c.Log == 0 {
		panic("circle: doubling a size-1 coset")
	}
	return newCoset(c.InitialIndex.Scale(2), c.StepSize.Scale(2), c.Log-1)
}

// Conjugate returns the coset of conjugated points.
func (c Coset) Conjugate() Coset {
	return newCoset(c.InitialIndex.Neg(), c.StepSize.Neg(), c.Log)
}

// Shift translates the coset by offset.
func (c Coset) Shift(offset PointIndex) Coset {
	return newCoset(c.InitialIndex.Add(offset), c.StepSize, c.Log)
}

// IsDoublingOf reports whether repeatedly doubling other reproduces c.
func (c Coset) IsDoublingOf(other Coset) bool {
	if c.Log > other.Log {
		return false
	}
	d := other
	for d.Log > c.Log {
		d = d.Double()
	}
	return d.InitialIndex == c.InitialIndex && d.StepSize == c.StepSize
}
