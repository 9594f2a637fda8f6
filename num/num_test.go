package num_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/teddyjfpender/circlestark/num"
)

func TestIsPowerOfTwo(t *testing.T) {
	assert.True(t, num.IsPowerOfTwo(1))
	assert.True(t, num.IsPowerOfTwo(2))
	assert.True(t, num.IsPowerOfTwo(1<<20))

	assert.False(t, num.IsPowerOfTwo(0))
	assert.False(t, num.IsPowerOfTwo(-4))
	assert.False(t, num.IsPowerOfTwo(3))
	assert.False(t, num.IsPowerOfTwo(1<<20+1))
}

func TestLog2(t *testing.T) {
	for i := 0; i < 31; i++ {
		assert.Equal(t, i, num.Log2(1<<i))
	}
	assert.Panics(t, func() { num.Log2(3) })
	assert.Panics(t, func() { num.Log2(0) })
}

func TestBitReverseIndex(t *testing.T) {
	assert.Equal(t, 0, num.BitReverseIndex(0, 3))
	assert.Equal(t, 4, num.BitReverseIndex(1, 3))
	assert.Equal(t, 3, num.BitReverseIndex(6, 3))
	assert.Equal(t, 0b1011, num.BitReverseIndex(0b1101, 4))
}

func TestBitReverse(t *testing.T) {
	v := []int{0, 1, 2, 3, 4, 5, 6, 7}

	t.Run("Example", func(t *testing.T) {
		assert.Equal(t, []int{0, 4, 2, 6, 1, 5, 3, 7}, num.BitReverse(v))
	})

	t.Run("MatchesIndexForm", func(t *testing.T) {
		r := num.BitReverse(v)
		for i := range v {
			assert.Equal(t, v[num.BitReverseIndex(i, 3)], r[i])
		}
	})

	t.Run("Involution", func(t *testing.T) {
		properties := gopter.NewProperties(nil)
		properties.Property("double reversal is the identity", prop.ForAll(
			func(logSize int, seed int64) bool {
				v := make([]int64, 1<<logSize)
				for i := range v {
					v[i] = seed + int64(i)
				}
				r := num.BitReverse(num.BitReverse(v))
				for i := range v {
					if r[i] != v[i] {
						return false
					}
				}
				return true
			},
			gen.IntRange(0, 10),
			gen.Int64(),
		))
		properties.TestingRun(t)
	})
}
