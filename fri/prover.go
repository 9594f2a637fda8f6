package fri

import (
	"encoding/hex"

	"github.com/bits-and-blooms/bitset"
	"github.com/rs/zerolog"

	"github.com/teddyjfpender/circlestark/channel"
	"github.com/teddyjfpender/circlestark/field"
	"github.com/teddyjfpender/circlestark/logger"
	"github.com/teddyjfpender/circlestark/poly"
	"github.com/teddyjfpender/circlestark/vcs"
)

// LayerProof carries one layer of a FRI proof: the layer commitment, the
// queried values the verifier cannot recompute from earlier layers, and
// the Merkle hash witness of the queried leaves.
type LayerProof struct {
	Commitment  vcs.Digest
	EvalWitness []field.QM31
	HashWitness []vcs.Digest
}

// Proof is a self-contained FRI low-degree proof: the decomposition
// correction, the commitment to the decomposed first layer, the chained
// inner line layers, and the explicitly revealed last layer polynomial.
type Proof struct {
	Lambda        field.QM31
	FirstLayer    LayerProof
	Inner         []LayerProof
	LastLayerPoly poly.LinePoly
}

// Prover runs the commit and decommit phases of the protocol.
type Prover struct {
	params Parameters
	log    zerolog.Logger
}

// NewProver returns a prover for the given compiled parameters.
func NewProver(params Parameters) *Prover {
	log := logger.Logger().With().Str("component", "fri-prover").Logger()
	return &Prover{params: params, log: log}
}

// Prove commits to the low-degreeness of ev, a bit-reversed secure
// evaluation over a canonic circle domain, and decommits at the query
// positions sampled from the channel. The degree bound proven is the
// domain size over the blowup factor; an evaluation exceeding it panics.
func (p *Prover) Prove(ch channel.Channel, ev poly.SecureEvaluation) Proof {
	if ev.Order != poly.BitReversed {
		panic("fri: evaluation must be in bit-reversed order")
	}
	if !ev.Domain.IsCanonic() {
		panic("fri: evaluation domain must be canonic")
	}
	logSize := ev.Domain.LogSize()
	if logSize <= p.params.logLastLayerDomainSize() {
		panic("fri: evaluation too small to fold")
	}

	g, lambda := Decompose(ev)
	ch.MixFelts([]field.QM31{lambda})
	firstTree := vcs.Commit(g.Values)
	root := firstTree.Root()
	ch.MixDigest([32]byte(root))
	p.log.Debug().Int("log_size", logSize).Str("root", hex.EncodeToString(root[:])).Msg("committed first layer")

	alpha := ch.DrawFelt()
	line := FoldCircleIntoLine(g, alpha)

	var trees []*vcs.Tree
	var layers []poly.LineEvaluation
	for line.Domain.LogSize() > p.params.logLastLayerDomainSize() {
		tree := vcs.Commit(line.Values)
		root := tree.Root()
		ch.MixDigest([32]byte(root))
		p.log.Debug().Int("log_size", line.Domain.LogSize()).Str("root", hex.EncodeToString(root[:])).Msg("committed layer")
		alpha := ch.DrawFelt()
		trees = append(trees, tree)
		layers = append(layers, line)
		line = FoldLine(line, alpha)
	}

	lastPoly := poly.InterpolateLine(line)
	bound := 1 << p.params.logLastLayerDegreeBound
	for _, c := range lastPoly.Coeffs[bound:] {
		if !c.IsZero() {
			panic("fri: last layer degree exceeds the bound")
		}
	}
	lastPoly = poly.LinePoly{Coeffs: lastPoly.Coeffs[:bound]}
	ch.MixFelts(lastPoly.Coeffs)

	queries := SampleQueries(ch, logSize, p.params.nQueries)
	p.log.Debug().Ints("positions", queries.Positions).Msg("sampled queries")

	proof := Proof{Lambda: lambda, LastLayerPoly: lastPoly}

	pairs := queries.Fold(1)
	firstPositions := make([]int, 0, 2*len(pairs.Positions))
	firstValues := make([]field.QM31, 0, 2*len(pairs.Positions))
	for _, i := range pairs.Positions {
		firstPositions = append(firstPositions, 2*i, 2*i+1)
		firstValues = append(firstValues, g.Values[2*i], g.Values[2*i+1])
	}
	proof.FirstLayer = LayerProof{
		Commitment:  firstTree.Root(),
		EvalWitness: firstValues,
		HashWitness: firstTree.Decommit(firstPositions),
	}

	positions := pairs
	proof.Inner = make([]LayerProof, 0, len(trees))
	for k, tree := range trees {
		known := bitset.New(uint(len(layers[k].Values)))
		for _, pos := range positions.Positions {
			known.Set(uint(pos))
		}

		layerPairs := positions.Fold(1)
		leafPositions := make([]int, 0, 2*len(layerPairs.Positions))
		evalWitness := []field.QM31{}
		for _, j := range layerPairs.Positions {
			for _, leaf := range [2]int{2 * j, 2*j + 1} {
				leafPositions = append(leafPositions, leaf)
				if !known.Test(uint(leaf)) {
					evalWitness = append(evalWitness, layers[k].Values[leaf])
				}
			}
		}
		proof.Inner = append(proof.Inner, LayerProof{
			Commitment:  tree.Root(),
			EvalWitness: evalWitness,
			HashWitness: tree.Decommit(leafPositions),
		})
		positions = layerPairs
	}
	return proof
}
