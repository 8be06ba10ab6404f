package target

import "math/big"

// oneLsh256 is 2^256, used to express the bitwise complement of a 256-bit
// value and the GetBlockProof "~target / (target+1) + 1" identity without
// ever representing 2^256 itself as a target.
var oneLsh256 = new(big.Int).Lsh(big.NewInt(1), 256)

// mask64 isolates the low 64 bits of an arbitrarily large unsigned value.
var mask64 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 64), big.NewInt(1))

// Complement256 returns the bitwise NOT of a value within the 256-bit
// domain: (2^256 - 1) - value, equivalent to arith_uint256's operator~.
func Complement256(value *big.Int) *big.Int {
	max := new(big.Int).Sub(oneLsh256, big.NewInt(1))
	return new(big.Int).Xor(max, value)
}

// Low64 returns the low 64 bits of value as a uint64, truncating any higher
// bits — the Go equivalent of arith_uint256::GetLow64.
func Low64(value *big.Int) uint64 {
	return new(big.Int).And(value, mask64).Uint64()
}

// BitLen returns the number of bits required to represent value, i.e. the
// position of its highest set bit plus one (0 for a zero value).
func BitLen(value *big.Int) int {
	return value.BitLen()
}

// Clamp returns v clamped to [lo, hi] (inclusive), used by every
// retargeter's actualTimespan bound.
func Clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
