// Package vcs implements the vector commitment backing each FRI layer:
// a BLAKE2b Merkle tree over secure field values with batched
// multi-query decommitments. Commitments are opaque 32-byte digests.
package vcs

import (
	"errors"

	"github.com/bits-and-blooms/bitset"
	"golang.org/x/crypto/blake2b"

	"github.com/teddyjfpender/circlestark/field"
	"github.com/teddyjfpender/circlestark/num"
)

// Digest is an opaque commitment handle.
type Digest [32]byte

// Domain separation prefixes for leaf and interior node hashes.
const (
	leafPrefix = 0x00
	nodePrefix = 0x01
)

// Typed verification failures. Verify never panics on adversarial input.
var (
	ErrRootMismatch         = errors.New("vcs: root mismatch")
	ErrWitnessTooShort      = errors.New("vcs: hash witness too short")
	ErrWitnessTooLong       = errors.New("vcs: hash witness too long")
	ErrTooFewQueriedValues  = errors.New("vcs: too few queried values")
	ErrTooManyQueriedValues = errors.New("vcs: too many queried values")
)

func hashLeaf(v field.QM31) Digest {
	var buf [17]byte
	buf[0] = leafPrefix
	b := v.Bytes()
	copy(buf[1:], b[:])
	return blake2b.Sum256(buf[:])
}

func hashNode(l, r Digest) Digest {
	var buf [65]byte
	buf[0] = nodePrefix
	copy(buf[1:33], l[:])
	copy(buf[33:], r[:])
	return blake2b.Sum256(buf[:])
}

// Tree is a committed Merkle tree. It is immutable after Commit and safe
// for concurrent readers.
type Tree struct {
	logSize int
	levels  [][]Digest
}

// Commit builds the Merkle tree over values.
// Panics if the length is not a positive power of two.
func Commit(values []field.QM31) *Tree {
	if !num.IsPowerOfTwo(len(values)) {
		panic("vcs: committed length must be a power of two")
	}
	logSize := num.Log2(len(values))

	levels := make([][]Digest, logSize+1)
	leaves := make([]Digest, len(values))
	for i, v := range values {
		leaves[i] = hashLeaf(v)
	}
	levels[0] = leaves
	for l := 1; l <= logSize; l++ {
		prev := levels[l-1]
		cur := make([]Digest, len(prev)/2)
		for i := range cur {
			cur[i] = hashNode(prev[2*i], prev[2*i+1])
		}
		levels[l] = cur
	}
	return &Tree{logSize: logSize, levels: levels}
}

// Root returns the tree's commitment digest.
func (t *Tree) Root() Digest {
	return t.levels[t.logSize][0]
}

// LogSize returns the base-2 logarithm of the committed length.
func (t *Tree) LogSize() int {
	return t.logSize
}

// Decommit returns the hash witness for a batch of leaf positions: the
// sibling digests the verifier cannot recompute, bottom level first,
// pairs in ascending order. Positions must be sorted, unique and in
// range.
func (t *Tree) Decommit(positions []int) []Digest {
	known := bitset.New(uint(1) << t.logSize)
	for k, pos := range positions {
		if pos < 0 || pos >= 1<<t.logSize {
			panic("vcs: query position out of range")
		}
		if k > 0 && pos <= positions[k-1] {
			panic("vcs: query positions must be sorted and unique")
		}
		known.Set(uint(pos))
	}

	witness := []Digest{}
	for level := 0; level < t.logSize; level++ {
		next := bitset.New(known.Len() >> 1)
		for i, ok := known.NextSet(0); ok; i, ok = known.NextSet(i + 1) {
			j := i >> 1
			if next.Test(j) {
				continue
			}
			if !known.Test(2 * j) {
				witness = append(witness, t.levels[level][2*j])
			} else if !known.Test(2*j + 1) {
				witness = append(witness, t.levels[level][2*j+1])
			}
			next.Set(j)
		}
		known = next
	}
	return witness
}

// Verify recomputes the root from the queried values and the hash
// witness and checks it against the commitment. Positions must be
// sorted, unique and in range; values are matched to positions by index.
func Verify(root Digest, logSize int, positions []int, values []field.QM31, witness []Digest) error {
	if len(values) < len(positions) {
		return ErrTooFewQueriedValues
	}
	if len(values) > len(positions) {
		return ErrTooManyQueriedValues
	}

	known := bitset.New(uint(1) << logSize)
	digests := make(map[uint]Digest, len(positions))
	for k, pos := range positions {
		if pos < 0 || pos >= 1<<logSize {
			panic("vcs: query position out of range")
		}
		if k > 0 && pos <= positions[k-1] {
			panic("vcs: query positions must be sorted and unique")
		}
		known.Set(uint(pos))
		digests[uint(pos)] = hashLeaf(values[k])
	}

	wi := 0
	take := func(idx uint) (Digest, bool) {
		if known.Test(idx) {
			return digests[idx], true
		}
		if wi >= len(witness) {
			return Digest{}, false
		}
		d := witness[wi]
		wi++
		return d, true
	}

	for level := 0; level < logSize; level++ {
		next := bitset.New(known.Len() >> 1)
		nextDigests := make(map[uint]Digest, len(digests))
		for i, ok := known.NextSet(0); ok; i, ok = known.NextSet(i + 1) {
			j := i >> 1
			if next.Test(j) {
				continue
			}
			l, ok := take(2 * j)
			if !ok {
				return ErrWitnessTooShort
			}
			r, ok := take(2*j + 1)
			if !ok {
				return ErrWitnessTooShort
			}
			nextDigests[j] = hashNode(l, r)
			next.Set(j)
		}
		known, digests = next, nextDigests
	}

	if wi != len(witness) {
		return ErrWitnessTooLong
	}
	if digests[0] != root {
		return ErrRootMismatch
	}
	return nil
}
