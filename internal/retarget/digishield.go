package retarget

import (
	"math/big"

	"driftcoin/internal/target"
)

// digiShieldNextWork implements the per-block asymmetric-clamp retarget,
// with a time-of-block-activated target spacing: 30-second blocks between
// ForkBlock2 and the X11 switchover, 120-second blocks before and after.
// retargetInterval always evaluates to 1 (retargetTimespan and
// retargetSpacing are both set from the same targetSpacing), so the "only
// change once per interval" branch below is never taken; it is kept so the
// branch structure matches the reference implementation.
func digiShieldNextWork(pindexLast *target.BlockIndex, candidateTime int64, network target.Network, params *target.Params) uint32 {
	powLimitBits := target.Encode(params.PowLimit)

	if pindexLast == nil {
		return powLimitBits
	}

	isTestnet := network == target.Testnet
	c := params.Constants

	targetSpacing := int64(120)
	switch {
	case (!isTestnet && candidateTime >= c.X11Start) || (isTestnet && candidateTime >= c.DigiShieldTestnetPivot):
		targetSpacing = 120
	case !isTestnet && pindexLast.Height+1 >= c.ForkBlock2 && candidateTime < c.X11Start:
		targetSpacing = 30
	}

	retargetTimespan := targetSpacing
	retargetSpacing := targetSpacing
	retargetInterval := retargetTimespan / retargetSpacing

	height := pindexLast.Height + 1
	if height%retargetInterval != 0 {
		if isTestnet {
			if candidateTime > pindexLast.Time+retargetSpacing*2 {
				return powLimitBits
			}
		} else {
			pindex := pindexLast
			for pindex.Prev != nil && pindex.Height%retargetInterval != 0 && pindex.Bits == powLimitBits {
				pindex = pindex.Prev
			}
			return pindex.Bits
		}
		return pindexLast.Bits
	}

	blocksBack := retargetInterval - 1
	if height != retargetInterval {
		blocksBack = retargetInterval
	}

	pindexFirst := pindexLast.Ancestor(blocksBack)
	if pindexFirst == nil {
		panic("retarget: digishield backward walk exhausted before reaching blocksBack")
	}

	actualTimespan := pindexLast.Time - pindexFirst.Time

	low := retargetTimespan - retargetTimespan/4
	high := retargetTimespan + retargetTimespan/2
	actualTimespan = target.Clamp(actualTimespan, low, high)

	newTarget, _, _ := target.Decode(pindexLast.Bits)
	newTarget.Mul(newTarget, big.NewInt(actualTimespan))
	newTarget.Quo(newTarget, big.NewInt(retargetTimespan))

	if newTarget.Cmp(params.PowLimit) > 0 {
		newTarget = params.PowLimit
	}
	return target.Encode(newTarget)
}
