package fri_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teddyjfpender/circlestark/channel"
	"github.com/teddyjfpender/circlestark/circle"
	"github.com/teddyjfpender/circlestark/field"
	"github.com/teddyjfpender/circlestark/fri"
	"github.com/teddyjfpender/circlestark/poly"
	"github.com/teddyjfpender/circlestark/vcs"
)

var testParams = fri.ParametersLiteral{
	LogBlowupFactor:         2,
	LogLastLayerDegreeBound: 1,
	NQueries:                10,
}.Compile()

// lowDegreeEvaluation returns a bit-reversed evaluation of a random
// polynomial whose degree bound is the domain size over the blowup
// factor.
func lowDegreeEvaluation(logSize, logBlowup int, oracle *channel.Blake2bChannel) poly.SecureEvaluation {
	coeffs := make([]field.QM31, 1<<logSize)
	for i := 0; i < 1<<(logSize-logBlowup); i++ {
		coeffs[i] = oracle.DrawFelt()
	}

	domain := circle.NewCanonicCoset(logSize).Domain()
	tw := poly.PrecomputeTwiddles(domain.HalfCoset)
	return poly.Evaluate(poly.NewCirclePoly(coeffs), domain, tw).BitReverse()
}

func TestParameters(t *testing.T) {
	assert.NotPanics(t, func() { fri.ParamsSecure.Compile() })
	assert.NotPanics(t, func() { fri.ParamsFast.Compile() })

	assert.Panics(t, func() { fri.ParametersLiteral{LogBlowupFactor: 0, NQueries: 1}.Compile() })
	assert.Panics(t, func() {
		fri.ParametersLiteral{LogBlowupFactor: 1, LogLastLayerDegreeBound: -1, NQueries: 1}.Compile()
	})
	assert.Panics(t, func() { fri.ParametersLiteral{LogBlowupFactor: 1, NQueries: 0}.Compile() })

	p := testParams
	assert.Equal(t, 2, p.LogBlowupFactor())
	assert.Equal(t, 1, p.LogLastLayerDegreeBound())
	assert.Equal(t, 10, p.NQueries())
}

func TestFoldLine(t *testing.T) {
	oracle := channel.NewBlake2bChannel()
	const logSize = 6
	domain := poly.NewLineDomain(circle.NewCanonicCoset(logSize + 1).Domain().HalfCoset)

	// evaluation of a polynomial of degree < 2^(logSize-1)
	coeffs := make([]field.QM31, domain.Size())
	for i := 0; i < 1<<(logSize-1); i++ {
		coeffs[i] = oracle.DrawFelt()
	}
	ev := poly.EvaluateLine(poly.NewLinePoly(coeffs), domain)

	alpha := oracle.DrawFelt()
	folded := fri.FoldLine(ev, alpha)

	t.Run("HalvesSize", func(t *testing.T) {
		assert.Equal(t, domain.Size()/2, len(folded.Values))
		assert.Equal(t, domain.LogSize()-1, folded.Domain.LogSize())
	})

	t.Run("PreservesDegreeBound", func(t *testing.T) {
		p := poly.InterpolateLine(folded)
		for _, c := range p.Coeffs[1<<(logSize-2):] {
			assert.True(t, c.IsZero())
		}
	})

	t.Run("SizeOneUnchanged", func(t *testing.T) {
		one := poly.NewLineEvaluation(
			poly.NewLineDomain(circle.HalfOdds(0)),
			[]field.QM31{oracle.DrawFelt()})
		assert.Equal(t, one, fri.FoldLine(one, alpha))
	})

	t.Run("EmptyPanics", func(t *testing.T) {
		assert.Panics(t, func() {
			fri.FoldLine(poly.LineEvaluation{Values: nil}, alpha)
		})
	})

	t.Run("OddLengthPanics", func(t *testing.T) {
		assert.Panics(t, func() {
			fri.FoldLine(poly.LineEvaluation{Values: make([]field.QM31, 3)}, alpha)
		})
	})
}

func TestFoldCircleIntoLine(t *testing.T) {
	oracle := channel.NewBlake2bChannel()
	ev := lowDegreeEvaluation(6, 1, oracle)
	alpha := oracle.DrawFelt()

	folded := fri.FoldCircleIntoLine(ev, alpha)

	t.Run("HalvesSize", func(t *testing.T) {
		assert.Equal(t, len(ev.Values)/2, len(folded.Values))
		assert.Equal(t, ev.Domain.HalfCoset, folded.Domain.Coset)
	})

	t.Run("PreservesDegreeBound", func(t *testing.T) {
		g, _ := fri.Decompose(ev)
		p := poly.InterpolateLine(fri.FoldCircleIntoLine(g, alpha))
		for _, c := range p.Coeffs[len(p.Coeffs)/2:] {
			assert.True(t, c.IsZero())
		}
	})

	t.Run("RequiresBitReversed", func(t *testing.T) {
		assert.Panics(t, func() { fri.FoldCircleIntoLine(ev.BitReverse(), alpha) })
	})

	t.Run("EmptyPanics", func(t *testing.T) {
		assert.Panics(t, func() {
			fri.FoldCircleIntoLine(poly.SecureEvaluation{Order: poly.BitReversed}, alpha)
		})
	})

	t.Run("OddLengthPanics", func(t *testing.T) {
		assert.Panics(t, func() {
			fri.FoldCircleIntoLine(poly.SecureEvaluation{
				Values: make([]field.QM31, 3),
				Order:  poly.BitReversed,
			}, alpha)
		})
	})
}

func TestDecompose(t *testing.T) {
	oracle := channel.NewBlake2bChannel()
	domain := circle.NewCanonicCoset(7).Domain()
	ev := poly.NewCircleEvaluation(domain, oracle.DrawFelts(domain.Size()), poly.BitReversed)

	g, lambda := fri.Decompose(ev)

	t.Run("Reconstructs", func(t *testing.T) {
		assert.Equal(t, ev, fri.Reconstruct(g, lambda))
	})

	t.Run("Balanced", func(t *testing.T) {
		// after decomposition the half coset and conjugate sums agree
		var sumHalf, sumConj field.QM31
		for i := 0; i < len(g.Values); i += 2 {
			sumHalf = sumHalf.Add(g.Values[i])
			sumConj = sumConj.Add(g.Values[i+1])
		}
		assert.Equal(t, sumHalf, sumConj)
	})

	t.Run("LowDegreeInputZeroLambda", func(t *testing.T) {
		low := lowDegreeEvaluation(6, 1, oracle)
		_, lam := fri.Decompose(low)
		assert.True(t, lam.IsZero())
	})
}

func TestSampleQueries(t *testing.T) {
	ch := channel.NewBlake2bChannel()
	ch.MixUint64(1)
	q := fri.SampleQueries(ch, 10, 20)

	assert.LessOrEqual(t, len(q.Positions), 20)
	assert.NotEmpty(t, q.Positions)
	for i, pos := range q.Positions {
		assert.GreaterOrEqual(t, pos, 0)
		assert.Less(t, pos, 1<<10)
		if i > 0 {
			assert.Greater(t, pos, q.Positions[i-1])
		}
	}

	t.Run("Deterministic", func(t *testing.T) {
		ch2 := channel.NewBlake2bChannel()
		ch2.MixUint64(1)
		assert.Equal(t, q, fri.SampleQueries(ch2, 10, 20))
	})

	t.Run("FullSizeDomain", func(t *testing.T) {
		big := fri.SampleQueries(channel.NewBlake2bChannel(), 31, 8)
		assert.Len(t, big.Positions, 8)
		for i, pos := range big.Positions {
			assert.Less(t, pos, 1<<31)
			if i > 0 {
				assert.Greater(t, pos, big.Positions[i-1])
			}
		}
	})

	t.Run("Fold", func(t *testing.T) {
		f := q.Fold(3)
		assert.Equal(t, 7, f.LogDomainSize)
		for i, pos := range f.Positions {
			if i > 0 {
				assert.Greater(t, pos, f.Positions[i-1])
			}
			assert.Less(t, pos, 1<<7)
		}
		assert.Panics(t, func() { q.Fold(11) })
	})
}

func TestProveVerify(t *testing.T) {
	for _, logSize := range []int{4, 6, 9} {
		oracle := channel.NewBlake2bChannel()
		oracle.MixUint64(uint64(logSize))
		ev := lowDegreeEvaluation(logSize, testParams.LogBlowupFactor(), oracle)

		prover := fri.NewProver(testParams)
		proof := prover.Prove(channel.NewBlake2bChannel(), ev)

		verifier := fri.NewVerifier(testParams)
		err := verifier.Verify(channel.NewBlake2bChannel(), proof, logSize)
		assert.NoError(t, err, "logSize=%d", logSize)
	}
}

func TestProveHighDegree(t *testing.T) {
	oracle := channel.NewBlake2bChannel()
	domain := circle.NewCanonicCoset(6).Domain()
	ev := poly.NewCircleEvaluation(domain, oracle.DrawFelts(domain.Size()), poly.BitReversed)

	prover := fri.NewProver(testParams)
	assert.Panics(t, func() { prover.Prove(channel.NewBlake2bChannel(), ev) })
}

func TestProverMisuse(t *testing.T) {
	oracle := channel.NewBlake2bChannel()
	prover := fri.NewProver(testParams)

	t.Run("NaturalOrder", func(t *testing.T) {
		ev := lowDegreeEvaluation(6, 2, oracle).BitReverse()
		assert.Panics(t, func() { prover.Prove(channel.NewBlake2bChannel(), ev) })
	})

	t.Run("NonCanonicDomain", func(t *testing.T) {
		domain := circle.NewDomain(circle.Subgroup(5))
		ev := poly.NewCircleEvaluation(domain, make([]field.QM31, domain.Size()), poly.BitReversed)
		assert.Panics(t, func() { prover.Prove(channel.NewBlake2bChannel(), ev) })
	})

	t.Run("TooSmall", func(t *testing.T) {
		ev := lowDegreeEvaluation(3, 2, oracle)
		assert.Panics(t, func() { prover.Prove(channel.NewBlake2bChannel(), ev) })
	})
}

func TestVerifyCorrupted(t *testing.T) {
	const logSize = 7
	oracle := channel.NewBlake2bChannel()
	ev := lowDegreeEvaluation(logSize, testParams.LogBlowupFactor(), oracle)

	proof := fri.NewProver(testParams).Prove(channel.NewBlake2bChannel(), ev)
	verifier := fri.NewVerifier(testParams)

	verify := func(p fri.Proof) error {
		return verifier.Verify(channel.NewBlake2bChannel(), p, logSize)
	}
	assert.NoError(t, verify(proof))

	t.Run("MissingLayer", func(t *testing.T) {
		bad := proof
		bad.Inner = bad.Inner[:len(bad.Inner)-1]
		assert.ErrorIs(t, verify(bad), fri.ErrInvalidNumLayers)
	})

	t.Run("LastLayerTooLong", func(t *testing.T) {
		bad := proof
		bad.LastLayerPoly = poly.LinePoly{
			Coeffs: append(append([]field.QM31{}, proof.LastLayerPoly.Coeffs...), field.QM31{}),
		}
		assert.ErrorIs(t, verify(bad), fri.ErrLastLayerDegreeInvalid)
	})

	t.Run("CorruptLastLayerCoeff", func(t *testing.T) {
		bad := proof
		coeffs := append([]field.QM31{}, proof.LastLayerPoly.Coeffs...)
		coeffs[0] = coeffs[0].Add(coeffs[0].One())
		bad.LastLayerPoly = poly.LinePoly{Coeffs: coeffs}
		assert.Error(t, verify(bad))
	})

	t.Run("CorruptLambda", func(t *testing.T) {
		bad := proof
		bad.Lambda = bad.Lambda.Add(bad.Lambda.One())
		assert.Error(t, verify(bad))
	})

	t.Run("CorruptFirstLayerValue", func(t *testing.T) {
		bad := proof
		w := append([]field.QM31{}, proof.FirstLayer.EvalWitness...)
		w[0] = w[0].Add(w[0].One())
		bad.FirstLayer.EvalWitness = w
		assert.ErrorIs(t, verify(bad), vcs.ErrRootMismatch)
	})

	t.Run("CorruptInnerLayerValue", func(t *testing.T) {
		bad := proof
		inner := append([]fri.LayerProof{}, proof.Inner...)
		w := append([]field.QM31{}, inner[0].EvalWitness...)
		w[0] = w[0].Add(w[0].One())
		inner[0].EvalWitness = w
		bad.Inner = inner
		assert.ErrorIs(t, verify(bad), vcs.ErrRootMismatch)
	})

	t.Run("CorruptHashWitness", func(t *testing.T) {
		bad := proof
		w := append([]vcs.Digest{}, proof.FirstLayer.HashWitness...)
		w[0][0] ^= 1
		bad.FirstLayer.HashWitness = w
		assert.ErrorIs(t, verify(bad), vcs.ErrRootMismatch)
	})

	t.Run("TruncatedHashWitness", func(t *testing.T) {
		bad := proof
		bad.FirstLayer.HashWitness = proof.FirstLayer.HashWitness[:len(proof.FirstLayer.HashWitness)-1]
		assert.ErrorIs(t, verify(bad), vcs.ErrWitnessTooShort)
	})

	t.Run("TruncatedEvalWitness", func(t *testing.T) {
		bad := proof
		bad.FirstLayer.EvalWitness = proof.FirstLayer.EvalWitness[:len(proof.FirstLayer.EvalWitness)-1]
		assert.ErrorIs(t, verify(bad), fri.ErrEvalWitnessInvalid)
	})
}
