package retarget

import (
	"math"
	"math/big"

	"driftcoin/internal/target"
)

// CheckProofOfWork reports whether hash, read as a big-endian unsigned
// 256-bit integer, satisfies the difficulty target encoded by bits. It
// rejects bits that decode to a negative, zero, overflowed, or
// above-pow_limit target before ever comparing the hash.
func CheckProofOfWork(hash [32]byte, bits uint32, params *target.Params) bool {
	value, negative, overflow := target.Decode(bits)
	if !target.Valid(value, negative, overflow, params.PowLimit) {
		return false
	}

	hashInt := new(big.Int).SetBytes(hash[:])
	return hashInt.Cmp(value) <= 0
}

// GetBlockProof returns the work contribution of a block with the given
// bits: 2^256 / (target+1), computed as ~target/(target+1) + 1 to avoid
// representing 2^256 directly. Returns zero for an invalid (negative,
// overflowed, or zero) target.
func GetBlockProof(bits uint32) *big.Int {
	value, negative, overflow := target.Decode(bits)
	if negative || overflow || value.Sign() == 0 {
		return big.NewInt(0)
	}

	denominator := new(big.Int).Add(value, big.NewInt(1))
	proof := new(big.Int).Quo(target.Complement256(value), denominator)
	return proof.Add(proof, big.NewInt(1))
}

// GetBlockProofEquivalentTime estimates, in seconds, how long it would take
// to redo the work difference between "to" and "from" at the hashrate
// implied by tip's difficulty. The sign indicates direction: positive when
// "to" has more accumulated work than "from".
func GetBlockProofEquivalentTime(to, from, tip *target.BlockIndex, params *target.Params) int64 {
	sign := int64(1)
	var delta *big.Int
	if to.ChainWork.Cmp(from.ChainWork) > 0 {
		delta = new(big.Int).Sub(to.ChainWork, from.ChainWork)
	} else {
		delta = new(big.Int).Sub(from.ChainWork, to.ChainWork)
		sign = -1
	}

	r := new(big.Int).Mul(delta, big.NewInt(params.PowTargetSpacing))
	r.Quo(r, GetBlockProof(tip.Bits))

	if target.BitLen(r) > 63 {
		return sign * math.MaxInt64
	}
	return sign * int64(target.Low64(r))
}
