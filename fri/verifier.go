package fri

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/teddyjfpender/circlestark/channel"
	"github.com/teddyjfpender/circlestark/circle"
	"github.com/teddyjfpender/circlestark/field"
	"github.com/teddyjfpender/circlestark/logger"
	"github.com/teddyjfpender/circlestark/num"
	"github.com/teddyjfpender/circlestark/vcs"
)

// Typed verification failures. Layer decommitment failures wrap the
// underlying vcs error. Verification never panics on adversarial proofs.
var (
	ErrInvalidNumLayers            = errors.New("fri: proof contains an invalid number of layers")
	ErrLastLayerDegreeInvalid      = errors.New("fri: last layer polynomial degree exceeds the bound")
	ErrLastLayerEvaluationsInvalid = errors.New("fri: last layer evaluation mismatch")
	ErrEvalWitnessInvalid          = errors.New("fri: evaluation witness length mismatch")
)

// Verifier replays the transcript of a proof and checks its query phase.
type Verifier struct {
	params Parameters
	log    zerolog.Logger
}

// NewVerifier returns a verifier for the given compiled parameters.
func NewVerifier(params Parameters) *Verifier {
	log := logger.Logger().With().Str("component", "fri-verifier").Logger()
	return &Verifier{params: params, log: log}
}

// Verify checks a proof for an evaluation domain of size 2^logSize. The
// channel must be in the same state the prover's was when Prove began.
// Any structural or decommitment failure is reported as a typed error;
// the protocol never retries.
func (v *Verifier) Verify(ch channel.Channel, proof Proof, logSize int) error {
	expected := logSize - 1 - v.params.logLastLayerDomainSize()
	if expected < 0 || len(proof.Inner) != expected {
		return ErrInvalidNumLayers
	}
	if len(proof.LastLayerPoly.Coeffs) != 1<<v.params.logLastLayerDegreeBound {
		return ErrLastLayerDegreeInvalid
	}

	// Transcript replay, in the exact order the prover committed.
	ch.MixFelts([]field.QM31{proof.Lambda})
	ch.MixDigest([32]byte(proof.FirstLayer.Commitment))
	firstAlpha := ch.DrawFelt()
	alphas := make([]field.QM31, len(proof.Inner))
	for i := range proof.Inner {
		ch.MixDigest([32]byte(proof.Inner[i].Commitment))
		alphas[i] = ch.DrawFelt()
	}
	ch.MixFelts(proof.LastLayerPoly.Coeffs)
	queries := SampleQueries(ch, logSize, v.params.nQueries)
	v.log.Debug().Ints("positions", queries.Positions).Msg("sampled queries")

	domain := circle.NewCanonicCoset(logSize).Domain()
	h := domain.HalfCoset

	// First layer: the verifier can recompute nothing, so every queried
	// value comes from the witness.
	pairs := queries.Fold(1)
	if len(proof.FirstLayer.EvalWitness) != 2*len(pairs.Positions) {
		return ErrEvalWitnessInvalid
	}
	leafPositions := make([]int, 0, 2*len(pairs.Positions))
	for _, i := range pairs.Positions {
		leafPositions = append(leafPositions, 2*i, 2*i+1)
	}
	if err := vcs.Verify(proof.FirstLayer.Commitment, logSize, leafPositions, proof.FirstLayer.EvalWitness, proof.FirstLayer.HashWitness); err != nil {
		return fmt.Errorf("fri: first layer decommitment: %w", err)
	}

	computed := make(map[int]field.QM31, len(pairs.Positions))
	for k, i := range pairs.Positions {
		a, b := proof.FirstLayer.EvalWitness[2*k], proof.FirstLayer.EvalWitness[2*k+1]
		y := h.At(num.BitReverseIndex(i, h.Log)).Y
		f0 := a.Add(b).MulM31(halfM31)
		f1 := a.Sub(b).MulM31(halfM31).MulM31(y.Inverse())
		computed[i] = f0.Add(firstAlpha.Mul(f1))
	}

	positions := pairs
	coset := h
	for k := range proof.Inner {
		layerPairs := positions.Fold(1)
		leafPositions := make([]int, 0, 2*len(layerPairs.Positions))
		leafValues := make([]field.QM31, 0, 2*len(layerPairs.Positions))
		wi := 0
		for _, j := range layerPairs.Positions {
			for _, leaf := range [2]int{2 * j, 2*j + 1} {
				leafPositions = append(leafPositions, leaf)
				if val, ok := computed[leaf]; ok {
					leafValues = append(leafValues, val)
					continue
				}
				if wi >= len(proof.Inner[k].EvalWitness) {
					return ErrEvalWitnessInvalid
				}
				leafValues = append(leafValues, proof.Inner[k].EvalWitness[wi])
				wi++
			}
		}
		if wi != len(proof.Inner[k].EvalWitness) {
			return ErrEvalWitnessInvalid
		}
		if err := vcs.Verify(proof.Inner[k].Commitment, logSize-1-k, leafPositions, leafValues, proof.Inner[k].HashWitness); err != nil {
			return fmt.Errorf("fri: layer %d decommitment: %w", k, err)
		}

		next := make(map[int]field.QM31, len(layerPairs.Positions))
		for idx, j := range layerPairs.Positions {
			a, b := leafValues[2*idx], leafValues[2*idx+1]
			x := coset.At(num.BitReverseIndex(j, coset.Log-1)).X
			f0 := a.Add(b).MulM31(halfM31)
			f1 := a.Sub(b).MulM31(halfM31).MulM31(x.Inverse())
			next[j] = f0.Add(alphas[k].Mul(f1))
		}
		computed = next
		positions = layerPairs
		coset = coset.Double()
	}

	for _, pos := range positions.Positions {
		x := coset.At(num.BitReverseIndex(pos, coset.Log)).X
		want := proof.LastLayerPoly.EvalAtPoint(field.QM31FromM31(x))
		if !computed[pos].Equal(want) {
			return ErrLastLayerEvaluationsInvalid
		}
	}
	return nil
}
