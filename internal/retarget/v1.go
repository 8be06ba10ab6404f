package retarget

import (
	"math/big"

	"driftcoin/internal/target"
)

// historyFactor is the V1 "look at 4x the retarget interval" extension
// activated once pindexLast.Height exceeds Params.Constants.CoinFix1Block.
const historyFactor = 4

// v1NextWork is the Bitcoin-style fixed-interval retarget with Litecoin's
// "history factor" extension (activated past COINFIX1_BLOCK to damp 51%
// attacks that would otherwise swing difficulty every retarget window).
func v1NextWork(pindexLast *target.BlockIndex, candidateTime int64, network target.Network, params *target.Params) uint32 {
	powLimitBits := target.Encode(params.PowLimit)

	if pindexLast == nil {
		return powLimitBits
	}

	interval := params.DifficultyAdjustmentInterval()
	height := pindexLast.Height + 1

	if height%interval != 0 {
		if network == target.Testnet && params.AllowMinDifficultyBlocks {
			if candidateTime > pindexLast.Time+params.PowTargetSpacing*2 {
				return powLimitBits
			}
			pindex := pindexLast
			for pindex.Prev != nil && pindex.Height%interval != 0 && pindex.Bits == powLimitBits {
				pindex = pindex.Prev
			}
			return pindex.Bits
		}
		return pindexLast.Bits
	}

	blocksBack := interval - 1
	if height != interval {
		blocksBack = interval
	}
	if pindexLast.Height > params.Constants.CoinFix1Block {
		blocksBack = historyFactor * interval
	}

	pindexFirst := pindexLast.Ancestor(blocksBack)
	if pindexFirst == nil {
		panic("retarget: v1 backward walk exhausted before reaching blocksBack")
	}

	var actualTimespan int64
	if pindexLast.Height > params.Constants.CoinFix1Block {
		actualTimespan = (pindexLast.Time - pindexFirst.Time) / historyFactor
	} else {
		actualTimespan = pindexLast.Time - pindexFirst.Time
	}

	targetTimespan := params.PowTargetTimespan
	actualTimespan = target.Clamp(actualTimespan, targetTimespan/4, targetTimespan*4)

	newTarget, _, _ := target.Decode(pindexLast.Bits)
	newTarget.Mul(newTarget, big.NewInt(actualTimespan))
	newTarget.Quo(newTarget, big.NewInt(targetTimespan))

	if newTarget.Cmp(params.PowLimit) > 0 {
		newTarget = params.PowLimit
	}
	return target.Encode(newTarget)
}
