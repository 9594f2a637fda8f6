// Package channel implements the Fiat-Shamir transcript shared by the
// prover and verifier. Both sides replay the exact same sequence of mix
// and draw operations; the call order is part of the protocol's
// soundness contract.
package channel

import (
	"github.com/teddyjfpender/circlestark/field"
)

// Channel is the randomness transcript consumed by the commitment and
// folding protocol.
type Channel interface {
	// MixFelts absorbs secure field elements into the transcript.
	MixFelts(felts []field.QM31)
	// MixUint64 absorbs an integer into the transcript.
	MixUint64(v uint64)
	// MixDigest absorbs a commitment digest into the transcript.
	MixDigest(d [32]byte)
	// DrawFelt derives a uniform secure field element.
	DrawFelt() field.QM31
	// DrawFelts derives n uniform secure field elements.
	DrawFelts(n int) []field.QM31
	// DrawBytes derives a block of uniform bytes.
	DrawBytes() [32]byte
	// Time returns the current transcript position.
	Time() ChannelTime
}

// ChannelTime tracks the transcript position. NChallenges counts the mix
// operations so far; NSent counts the draws since the last mix.
type ChannelTime struct {
	NChallenges int
	NSent       int
}

func (t *ChannelTime) incChallenges() {
	t.NChallenges++
	t.NSent = 0
}

func (t *ChannelTime) incSent() {
	t.NSent++
}
