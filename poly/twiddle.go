// Package poly implements the circle transforms between coefficient and
// evaluation form, the polynomial and evaluation containers they operate
// on, and their one-dimensional line counterparts used by FRI folding.
package poly

import (
	"golang.org/x/sync/errgroup"

	"github.com/teddyjfpender/circlestark/circle"
	"github.com/teddyjfpender/circlestark/field"
	"github.com/teddyjfpender/circlestark/num"
)

// inverseChunkSize is the batch size of the parallel twiddle inversion.
const inverseChunkSize = 1 << 12

// TwiddleTree holds the butterfly twiddles of a half coset and all its
// doublings, bit-reversal ordered per layer, with their inverses.
// Layer 0 carries the y twiddles of the full root coset; layer l >= 1
// carries the x twiddles of the (l-1)-times doubled root, and the tree
// ends with the multiplicative identity, the twiddle of the size-1
// domain. A tree is computed once per root coset and is safe for
// concurrent readers.
type TwiddleTree struct {
	Root  circle.Coset
	Tw    [][]field.M31
	TwInv [][]field.M31
}

// PrecomputeTwiddles computes the twiddle tree of a half coset. Field
// inversions are amortized over chunked batches running in parallel.
func PrecomputeTwiddles(root circle.Coset) *TwiddleTree {
	m := root.Size()

	layers := make([][]field.M31, 0, root.Log+2)
	y := make([]field.M31, m)
	p := root.Initial
	for i := range y {
		y[i] = p.Y
		p = p.Add(root.Step)
	}
	num.BitReverseInPlace(y)
	layers = append(layers, y)

	c := root
	for cnt := m / 2; cnt >= 1; cnt /= 2 {
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
	layers = append(layers, []field.M31{1})

	return &TwiddleTree{Root: root, Tw: layers, TwInv: invertLayers(layers)}
}

func invertLayers(layers [][]field.M31) [][]field.M31 {
	inv := make([][]field.M31, len(layers))
	g := new(errgroup.Group)
	for l := range layers {
		src := layers[l]
		dst := make([]field.M31, len(src))
		inv[l] = dst
		for start := 0; start < len(src); start += inverseChunkSize {
			end := min(start+inverseChunkSize, len(src))
			s, d := src[start:end], dst[start:end]
			g.Go(func() error {
				field.BatchInverse(s, d)
				return nil
			})
		}
	}
	_ = g.Wait()
	return inv
}

func (t *TwiddleTree) matches(half circle.Coset) bool {
	return t.Root.InitialIndex == half.InitialIndex &&
		t.Root.StepSize == half.StepSize &&
		t.Root.Log == half.Log
}
