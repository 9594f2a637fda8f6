package circle

import (
	"errors"
	"math/big"

	"github.com/teddyjfpender/circlestark/field"
)

// Gen is the generator (2, 1268011823) of the circle group over the base
// field, of order 2^31.
var Gen = Point[field.M31]{X: field.M31(2), Y: field.M31(1268011823)}

// SecureGen generates the circle group over the secure field, of order
// SecureOrder.
var SecureGen = Point[field.QM31]{
	X: field.NewQM31(317078124, 1066535503, 1361994662, 871964837),
	Y: field.NewQM31(1080948145, 317078121, 1275518811, 1361994662),
}

// SecureOrder returns the order (2^31 - 1)^4 - 1 of the secure field
// circle group.
func SecureOrder() *big.Int {
	n, _ := new(big.Int).SetString("21267647892944572736998860269687930880", 10)
	return n
}

// SecureOrderFactors are the prime factors of the secure field circle
// group order.
var SecureOrderFactors = []uint64{2, 3, 5, 7, 11, 31, 151, 331, 733, 1709, 368140581013}

// ErrIndexOutOfRange reports an index at or above the group order.
var ErrIndexOutOfRange = errors.New("circle: point index out of range")

// PointIndex is an integer i modulo 2^31 standing for the point i*Gen,
// the compact handle used to avoid repeated point arithmetic.
type PointIndex uint32

const indexMask = 1<<LogOrder - 1

// NewPointIndex reduces v modulo 2^31.
func NewPointIndex(v uint32) PointIndex {
	return PointIndex(v & indexMask)
}

// SubgroupGen returns the index of a generator of the subgroup of size
// 2^logSize. Panics if logSize exceeds LogOrder.
func SubgroupGen(logSize int) PointIndex {
	if logSize < 0 || logSize > LogOrder {
		panic("circle: subgroup size exceeds group order")
	}
	if logSize == 0 {
		return 0
	}
	return PointIndex(1 << (LogOrder - logSize))
}

func (i PointIndex) Add(j PointIndex) PointIndex {
	return (i + j) & indexMask
}

func (i PointIndex) Sub(j PointIndex) PointIndex {
	return (i - j) & indexMask
}

func (i PointIndex) Neg() PointIndex {
	return (-i) & indexMask
}

// Scale returns k*i modulo 2^31.
func (i PointIndex) Scale(k uint64) PointIndex {
	return PointIndex(uint64(i) * k & indexMask)
}

// Half returns i/2. Panics if i is odd.
func (i PointIndex) Half() PointIndex {
	if i&1 == 1 {
		panic("circle: halving an odd point index")
	}
	return i >> 1
}

// ToPoint returns i*Gen.
func (i PointIndex) ToPoint() Point[field.M31] {
	return Gen.MulUint64(uint64(i))
}

// GetPoint returns index*Gen, failing if index is not below the group
// order 2^31.
func GetPoint(index uint64) (Point[field.M31], error) {
	if index >= 1<<LogOrder {
		return Point[field.M31]{}, ErrIndexOutOfRange
	}
	return Gen.MulUint64(index), nil
}

// GetSecurePoint returns index*SecureGen, failing if index is not below
// the secure group order.
func GetSecurePoint(index *big.Int) (Point[field.QM31], error) {
	if index.Sign() < 0 || index.Cmp(SecureOrder()) >= 0 {
		return Point[field.QM31]{}, ErrIndexOutOfRange
	}
	return SecureGen.Mul(index), nil
}
