package field

// CM31 is an element a + b*i of the complex extension M31[i], i^2 = -1.
type CM31 struct {
	A, B M31
}

// NewCM31 returns a + b*i with both parts reduced.
func NewCM31(a, b uint32) CM31 {
	return CM31{A: NewM31(a), B: NewM31(b)}
}

func (x CM31) Add(y CM31) CM31 {
	return CM31{A: x.A.Add(y.A), B: x.B.Add(y.B)}
}

func (x CM31) Sub(y CM31) CM31 {
	return CM31{A: x.A.Sub(y.A), B: x.B.Sub(y.B)}
}

func (x CM31) Mul(y CM31) CM31 {
	return CM31{
		A: x.A.Mul(y.A).Sub(x.B.Mul(y.B)),
		B: x.A.Mul(y.B).Add(x.B.Mul(y.A)),
	}
}

func (x CM31) MulM31(y M31) CM31 {
	return CM31{A: x.A.Mul(y), B: x.B.Mul(y)}
}

func (x CM31) Double() CM31 {
	return x.Add(x)
}

func (x CM31) Neg() CM31 {
	return CM31{A: x.A.Neg(), B: x.B.Neg()}
}

// Conjugate returns a - b*i.
func (x CM31) Conjugate() CM31 {
	return CM31{A: x.A, B: x.B.Neg()}
}

func (x CM31) Square() CM31 {
	return x.Mul(x)
}

// Inverse returns x^-1 as conj(x) / (a^2 + b^2). Panics if x is zero.
func (x CM31) Inverse() CM31 {
	n := x.A.Square().Add(x.B.Square())
	return x.Conjugate().MulM31(n.Inverse())
}

func (x CM31) IsZero() bool {
	return x.A == 0 && x.B == 0
}

func (x CM31) Equal(y CM31) bool {
	return x == y
}

func (x CM31) Zero() CM31 {
	return CM31{}
}

func (x CM31) One() CM31 {
	return CM31{A: 1}
}
