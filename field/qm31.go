package field

import (
	"encoding/binary"
	"fmt"
)

// rQM31 is the defining constant of the extension: u^2 = 2 + i.
var rQM31 = CM31{A: 2, B: 1}

// QM31 is an element a + b*u of the degree four extension CM31[u],
// u^2 = 2 + i. This is the secure field all FRI randomness lives in.
type QM31 struct {
	A, B CM31
}

// NewQM31 returns ((a + b*i) + (c + d*i)*u) with all limbs reduced.
func NewQM31(a, b, c, d uint32) QM31 {
	return QM31{A: NewCM31(a, b), B: NewCM31(c, d)}
}

// QM31FromM31 embeds a base field element into the extension.
func QM31FromM31(x M31) QM31 {
	return QM31{A: CM31{A: x}}
}

func (x QM31) Add(y QM31) QM31 {
	return QM31{A: x.A.Add(y.A), B: x.B.Add(y.B)}
}

func (x QM31) Sub(y QM31) QM31 {
	return QM31{A: x.A.Sub(y.A), B: x.B.Sub(y.B)}
}

func (x QM31) Mul(y QM31) QM31 {
	return QM31{
		A: x.A.Mul(y.A).Add(rQM31.Mul(x.B.Mul(y.B))),
		B: x.A.Mul(y.B).Add(x.B.Mul(y.A)),
	}
}

func (x QM31) MulM31(y M31) QM31 {
	return QM31{A: x.A.MulM31(y), B: x.B.MulM31(y)}
}

func (x QM31) Double() QM31 {
	return x.Add(x)
}

func (x QM31) Neg() QM31 {
	return QM31{A: x.A.Neg(), B: x.B.Neg()}
}

func (x QM31) Square() QM31 {
	return x.Mul(x)
}

// Inverse returns x^-1 as (a - b*u) / (a^2 - (2+i) b^2). Panics if x is zero.
func (x QM31) Inverse() QM31 {
	d := x.A.Square().Sub(rQM31.Mul(x.B.Square()))
	dInv := d.Inverse()
	return QM31{A: x.A.Mul(dInv), B: x.B.Neg().Mul(dInv)}
}

func (x QM31) IsZero() bool {
	return x.A.IsZero() && x.B.IsZero()
}

func (x QM31) Equal(y QM31) bool {
	return x == y
}

func (x QM31) Zero() QM31 {
	return QM31{}
}

func (x QM31) One() QM31 {
	return QM31{A: CM31{A: 1}}
}

// Uint32s returns the four reduced limbs of x.
func (x QM31) Uint32s() [4]uint32 {
	return [4]uint32{uint32(x.A.A), uint32(x.A.B), uint32(x.B.A), uint32(x.B.B)}
}

// Bytes returns the little-endian encoding of the four limbs,
// used when mixing elements into a transcript.
func (x QM31) Bytes() [16]byte {
	var buf [16]byte
	binary.LittleEndian.PutUint32(buf[0:], uint32(x.A.A))
	binary.LittleEndian.PutUint32(buf[4:], uint32(x.A.B))
	binary.LittleEndian.PutUint32(buf[8:], uint32(x.B.A))
	binary.LittleEndian.PutUint32(buf[12:], uint32(x.B.B))
	return buf
}

func (x QM31) String() string {
	return fmt.Sprintf("(%d+%di)+(%d+%di)u", x.A.A, x.A.B, x.B.A, x.B.B)
}
