// Package fri implements the low-degree-test protocol over circle
// domains: per-layer folding, layer commitments chained through a
// Fiat-Shamir channel, and query-phase verification.
package fri

// Bounds enforced by Compile.
const (
	// MaxLogBlowupFactor bounds the Reed-Solomon rate.
	MaxLogBlowupFactor = 16
	// MaxLogLastLayerDegreeBound bounds the explicitly revealed last
	// layer polynomial.
	MaxLogLastLayerDegreeBound = 10
)

// ParametersLiteral is a plain literal struct specifying a FRI instance.
// Compile validates it into usable Parameters.
type ParametersLiteral struct {
	// LogBlowupFactor is the base-2 logarithm of the ratio between the
	// evaluation domain size and the claimed degree bound.
	LogBlowupFactor int
	// LogLastLayerDegreeBound is the base-2 logarithm of the degree
	// bound of the last layer polynomial.
	LogLastLayerDegreeBound int
	// NQueries is the number of query positions sampled after the
	// commit phase.
	NQueries int
}

// Compile validates the literal and freezes it.
// Panics on an invalid combination.
func (p ParametersLiteral) Compile() Parameters {
	switch {
	case p.LogBlowupFactor < 1 || p.LogBlowupFactor > MaxLogBlowupFactor:
		panic("fri: LogBlowupFactor out of range")
	case p.LogLastLayerDegreeBound < 0 || p.LogLastLayerDegreeBound > MaxLogLastLayerDegreeBound:
		panic("fri: LogLastLayerDegreeBound out of range")
	case p.NQueries <= 0:
		panic("fri: NQueries must be positive")
	}

	return Parameters{
		logBlowupFactor:         p.LogBlowupFactor,
		logLastLayerDegreeBound: p.LogLastLayerDegreeBound,
		nQueries:                p.NQueries,
	}
}

// Parameters is a compiled, read-only FRI parameter set.
type Parameters struct {
	logBlowupFactor         int
	logLastLayerDegreeBound int
	nQueries                int
}

// LogBlowupFactor returns the base-2 logarithm of the blowup factor.
func (p Parameters) LogBlowupFactor() int {
	return p.logBlowupFactor
}

// LogLastLayerDegreeBound returns the base-2 logarithm of the last layer
// degree bound.
func (p Parameters) LogLastLayerDegreeBound() int {
	return p.logLastLayerDegreeBound
}

// NQueries returns the number of sampled query positions.
func (p Parameters) NQueries() int {
	return p.nQueries
}

// logLastLayerDomainSize is the log size of the line domain folding
// stops at.
func (p Parameters) logLastLayerDomainSize() int {
	return p.logLastLayerDegreeBound + p.logBlowupFactor
}

var (
	// ParamsSecure targets conjectured ~96 bit soundness with a
	// sixteen-fold blowup.
	ParamsSecure = ParametersLiteral{
		LogBlowupFactor:         4,
		LogLastLayerDegreeBound: 0,
		NQueries:                24,
	}

	// ParamsFast trades soundness for prover speed, useful in tests
	// and benchmarks.
	ParamsFast = ParametersLiteral{
		LogBlowupFactor:         1,
		LogLastLayerDegreeBound: 2,
		NQueries:                16,
	}
)
