package retarget

import (
	"math/big"

	"driftcoin/internal/target"
)

const dgwPastBlocks = 24

// darkGravityWave implements Dark Gravity Wave v3: a fixed 24-block window,
// weighted running average of decoded bits, and a symmetric 3x clamp on the
// accumulated actual timespan (which, unlike every other retargeter here, is
// allowed to go negative mid-walk on out-of-order block times — only the sum
// is clamped, not each contribution).
func darkGravityWave(pindexLast *target.BlockIndex, candidateTime int64, params *target.Params) uint32 {
	powLimitBits := target.Encode(params.PowLimit)

	if pindexLast == nil || pindexLast.Height == 0 || pindexLast.Height < dgwPastBlocks {
		return powLimitBits
	}

	targetSpacing := params.PowTargetSpacing
	if candidateTime > params.Constants.DGWTimePivot {
		targetSpacing = 120
	}

	blockReading := pindexLast
	var lastBlockTime int64
	var countBlocks int64
	var actualTimespan int64
	var avg, avgPrev *big.Int

	for i := int64(1); blockReading != nil && blockReading.Height > 0; i++ {
		if i > dgwPastBlocks {
			break
		}
		countBlocks++

		if countBlocks <= dgwPastBlocks {
			readingTarget, _, _ := target.Decode(blockReading.Bits)
			if countBlocks == 1 {
				avg = readingTarget
			} else {
				weighted := new(big.Int).Mul(avgPrev, big.NewInt(countBlocks))
				weighted.Add(weighted, readingTarget)
				weighted.Quo(weighted, big.NewInt(countBlocks+1))
				avg = weighted
			}
			avgPrev = avg
		}

		if lastBlockTime > 0 {
			actualTimespan += lastBlockTime - blockReading.Time
		}
		lastBlockTime = blockReading.Time

		if blockReading.Prev == nil {
			break
		}
		blockReading = blockReading.Prev
	}

	expected := countBlocks * targetSpacing
	actualTimespan = target.Clamp(actualTimespan, expected/3, expected*3)

	newTarget := new(big.Int).Mul(avg, big.NewInt(actualTimespan))
	newTarget.Quo(newTarget, big.NewInt(expected))

	if newTarget.Cmp(params.PowLimit) > 0 {
		newTarget = params.PowLimit
	}
	return target.Encode(newTarget)
}
