package field

// Modulus is the Mersenne prime 2^31 - 1.
const Modulus = (1 << 31) - 1

// M31 is an element of the prime field of order 2^31 - 1,
// always kept reduced in [0, Modulus).
type M31 uint32

// NewM31 returns v mod Modulus as a field element.
func NewM31(v uint32) M31 {
	return reduceM31(uint64(v))
}

// Uint32 returns the reduced representative of x.
func (x M31) Uint32() uint32 {
	return uint32(x)
}

// reduceM31 reduces x < 2^62 modulo 2^31 - 1.
func reduceM31(x uint64) M31 {
	x = (x >> 31) + (x & Modulus)
	x = (x >> 31) + (x & Modulus)
	if x >= Modulus {
		x -= Modulus
	}
	return M31(x)
}

func (x M31) Add(y M31) M31 {
	s := uint32(x) + uint32(y)
	if s >= Modulus {
		s -= Modulus
	}
	return M31(s)
}

func (x M31) Sub(y M31) M31 {
	if x >= y {
		return x - y
	}
	return x + Modulus - y
}

func (x M31) Mul(y M31) M31 {
	return reduceM31(uint64(x) * uint64(y))
}

func (x M31) MulM31(y M31) M31 {
	return x.Mul(y)
}

func (x M31) Double() M31 {
	return x.Add(x)
}

func (x M31) Neg() M31 {
	if x == 0 {
		return 0
	}
	return Modulus - x
}

func (x M31) Square() M31 {
	return x.Mul(x)
}

// Inverse returns x^-1. Panics if x is zero.
func (x M31) Inverse() M31 {
	if x == 0 {
		panic("field: inverse of zero")
	}
	return x.pow(Modulus - 2)
}

func (x M31) pow(e uint64) M31 {
	r := M31(1)
	for e > 0 {
		if e&1 == 1 {
			r = r.Mul(x)
		}
		x = x.Square()
		e >>= 1
	}
	return r
}

func (x M31) IsZero() bool {
	return x == 0
}

func (x M31) Equal(y M31) bool {
	return x == y
}

func (x M31) Zero() M31 {
	return 0
}

func (x M31) One() M31 {
	return 1
}
