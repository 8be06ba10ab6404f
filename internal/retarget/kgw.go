package retarget

import (
	"math"
	"math/big"

	"driftcoin/internal/target"
)

const (
	kgwTimeDaySeconds   = 60 * 60 * 24
	kgwPastSecondsMinPct = 0.0185
	kgwPastSecondsMaxPct = 0.23125
	// kgwEventHorizonBase is the fixed divisor in the EventHorizonDeviation
	// curve; it is not derived from PastBlocksMin, it is a tuned constant
	// from the reference implementation.
	kgwEventHorizonBase = 39.96
	kgwEventHorizonExp   = -1.228
	kgwEventHorizonScale = 0.7084
)

// kimotoGravityWell implements the Kimoto Gravity Well: a variable-window
// ratio-of-rates retargeter that widens or narrows its averaging window
// based on how far the observed block rate has drifted from target, damped
// by an "event horizon deviation" envelope.
func kimotoGravityWell(pindexLast *target.BlockIndex, params *target.Params) uint32 {
	targetSpacing := params.PowTargetSpacing

	daySeconds := float64(kgwTimeDaySeconds)
	pastSecondsMin := int64(daySeconds * kgwPastSecondsMinPct)
	pastSecondsMax := int64(daySeconds * kgwPastSecondsMaxPct)
	pastBlocksMin := pastSecondsMin / targetSpacing
	pastBlocksMax := pastSecondsMax / targetSpacing

	powLimitBits := target.Encode(params.PowLimit)

	if pindexLast == nil || pindexLast.Height == 0 || pindexLast.Height < pastBlocksMin {
		return powLimitBits
	}

	blockLastSolved := pindexLast
	blockReading := pindexLast

	var mass int64
	var actualSeconds, targetSeconds int64
	var avg, avgPrev *big.Int

	for i := int64(1); blockReading != nil && blockReading.Height > 0; i++ {
		if pastBlocksMax > 0 && i > pastBlocksMax {
			break
		}

		mass++

		readingTarget, _, _ := target.Decode(blockReading.Bits)
		if i == 1 {
			avg = readingTarget
		} else {
			diff := new(big.Int).Sub(readingTarget, avgPrev)
			diff.Quo(diff, big.NewInt(i))
			avg = new(big.Int).Add(diff, avgPrev)
		}
		avgPrev = avg

		actualSeconds = blockLastSolved.Time - blockReading.Time
		if actualSeconds < 0 {
			actualSeconds = 0
		}
		targetSeconds = targetSpacing * mass

		ratio := 1.0
		if actualSeconds != 0 && targetSeconds != 0 {
			ratio = float64(targetSeconds) / float64(actualSeconds)
		}

		ehd := 1 + kgwEventHorizonScale*math.Pow(float64(mass)/kgwEventHorizonBase, kgwEventHorizonExp)
		ehdFast := ehd
		ehdSlow := 1 / ehd

		if mass >= pastBlocksMin && (ratio <= ehdSlow || ratio >= ehdFast) {
			break
		}
		if blockReading.Prev == nil {
			break
		}
		blockReading = blockReading.Prev
	}

	newTarget := avg
	if actualSeconds != 0 && targetSeconds != 0 {
		newTarget = new(big.Int).Mul(newTarget, big.NewInt(actualSeconds))
		newTarget.Quo(newTarget, big.NewInt(targetSeconds))
	}

	if newTarget.Cmp(params.PowLimit) > 0 {
		newTarget = params.PowLimit
	}
	return target.Encode(newTarget)
}
