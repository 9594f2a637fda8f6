package channel

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"

	"github.com/teddyjfpender/circlestark/field"
)

// Blake2bChannel is a digest-chained BLAKE2b transcript. Mixing folds
// data into the running digest; drawing hashes the digest with a counter
// so repeated draws between mixes stay distinct.
type Blake2bChannel struct {
	digest [32]byte
	time   ChannelTime
}

var _ Channel = (*Blake2bChannel)(nil)

// NewBlake2bChannel returns an empty transcript.
func NewBlake2bChannel() *Blake2bChannel {
	return &Blake2bChannel{}
}

// Digest returns the current transcript digest.
func (c *Blake2bChannel) Digest() [32]byte {
	return c.digest
}

func (c *Blake2bChannel) Time() ChannelTime {
	return c.time
}

func (c *Blake2bChannel) MixFelts(felts []field.QM31) {
	buf := make([]byte, 0, 32+16*len(felts))
	buf = append(buf, c.digest[:]...)
	for _, f := range felts {
		b := f.Bytes()
		buf = append(buf, b[:]...)
	}
	c.digest = blake2b.Sum256(buf)
	c.time.incChallenges()
}

func (c *Blake2bChannel) MixUint64(v uint64) {
	var buf [40]byte
	copy(buf[:32], c.digest[:])
	binary.LittleEndian.PutUint64(buf[32:], v)
	c.digest = blake2b.Sum256(buf[:])
	c.time.incChallenges()
}

func (c *Blake2bChannel) MixDigest(d [32]byte) {
	var buf [64]byte
	copy(buf[:32], c.digest[:])
	copy(buf[32:], d[:])
	c.digest = blake2b.Sum256(buf[:])
	c.time.incChallenges()
}

func (c *Blake2bChannel) DrawBytes() [32]byte {
	var buf [40]byte
	copy(buf[:32], c.digest[:])
	binary.LittleEndian.PutUint64(buf[32:], uint64(c.time.NSent))
	c.time.incSent()
	return blake2b.Sum256(buf[:])
}

// DrawFelt draws four uniform base field limbs by rejection over 32-bit
// words: a word w is kept when w < 2*Modulus, then reduced. Only two of
// the 2^32 words are ever rejected.
func (c *Blake2bChannel) DrawFelt() field.QM31 {
	var limbs [4]field.M31
	n := 0
	for n < 4 {
		block := c.DrawBytes()
		for off := 0; off+4 <= len(block) && n < 4; off += 4 {
			w := binary.LittleEndian.Uint32(block[off:])
			if w >= 2*field.Modulus {
				continue
			}
			limbs[n] = field.NewM31(w)
			n++
		}
	}
	return field.QM31{
		A: field.CM31{A: limbs[0], B: limbs[1]},
		B: field.CM31{A: limbs[2], B: limbs[3]},
	}
}

func (c *Blake2bChannel) DrawFelts(n int) []field.QM31 {
	felts := make([]field.QM31, n)
	for i := range felts {
		felts[i] = c.DrawFelt()
	}
	return felts
}
