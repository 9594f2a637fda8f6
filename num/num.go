// Package num implements various utility functions regarding numeric types.
package num

// IsPowerOfTwo returns whether x is a power of two.
// Returns false for x <= 0.
func IsPowerOfTwo(x int) bool {
	return x > 0 && x&(x-1) == 0
}

// Log2 returns the base-2 logarithm of x.
// Panics if x is not a power of two.
func Log2(x int) int {
	if !IsPowerOfTwo(x) {
		panic("num: not a power of two")
	}

	r := 0
	for x > 1 {
		x >>= 1
		r++
	}
	return r
}

// BitReverseIndex reverses the lowest bits bits of x.
func BitReverseIndex(x, bits int) int {
	r := 0
	for i := 0; i < bits; i++ {
		r = (r << 1) | (x & 1)
		x >>= 1
	}
	return r
}

// BitReverseInPlace reorders v into bit-reversal order in-place.
func BitReverseInPlace[T any](v []T) {
	var bit, j int
	for i := 1; i < len(v); i++ {
		bit = len(v) >> 1
		for j >= bit {
			j -= bit
			bit >>= 1
		}
		j += bit
		if i < j {
			v[i], v[j] = v[j], v[i]
		}
	}
}

// BitReverse returns a bit-reversal ordered copy of v.
func BitReverse[T any](v []T) []T {
	vOut := make([]T, len(v))
	copy(vOut, v)
	BitReverseInPlace(vOut)
	return vOut
}
