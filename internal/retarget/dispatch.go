// Package retarget selects and runs the proof-of-work retargeting algorithm
// active at a given chain height, and exposes the work/equivalent-time
// helpers used by chain-selection logic.
package retarget

import (
	"log"

	"driftcoin/internal/target"
)

type mode int

const (
	modeV1 mode = iota
	modeKGW
	modeDigiShield
	modeDGW
)

func (m mode) String() string {
	switch m {
	case modeKGW:
		return "kgw"
	case modeDigiShield:
		return "digishield"
	case modeDGW:
		return "dgw"
	default:
		return "v1"
	}
}

// NextWorkRequired selects one of the four retargeting algorithms based on
// the network and the candidate block's height (pindexLast.Height + 1),
// then runs it. candidateTime is the candidate block's timestamp; it only
// matters to DigiShield (dynamic spacing) and DGWv3 (spacing pivot) and to
// the V1/DigiShield testnet minimum-difficulty slack.
//
// Height selection mirrors the reference implementation's mode variable,
// which starts at V1 and is only overwritten by one of three mutually
// exclusive mainnet range checks. This reproduces the historical gap at
// height == ForkBlock2 (caught by neither the KGW nor the DigiShield
// predicate, so V1 remains selected) by construction rather than as a
// special case.
func NextWorkRequired(pindexLast *target.BlockIndex, candidateTime int64, network target.Network, params *target.Params) uint32 {
	m := selectMode(pindexLast, network, params)

	if params.Debug {
		height := int64(0)
		if pindexLast != nil {
			height = pindexLast.Height + 1
		}
		log.Printf("[POW] height=%d network=%s mode=%s", height, network, m)
	}

	switch m {
	case modeKGW:
		return kimotoGravityWell(pindexLast, params)
	case modeDigiShield:
		return digiShieldNextWork(pindexLast, candidateTime, network, params)
	case modeDGW:
		return darkGravityWave(pindexLast, candidateTime, params)
	default:
		return v1NextWork(pindexLast, candidateTime, network, params)
	}
}

// selectMode implements the mode-selection logic described above.
func selectMode(pindexLast *target.BlockIndex, network target.Network, params *target.Params) mode {
	if network == target.Testnet {
		return modeDGW
	}
	if pindexLast == nil {
		return modeV1
	}

	height := pindexLast.Height + 1
	c := params.Constants
	switch {
	case height >= c.ForkBlock1 && height < c.ForkBlock2:
		return modeKGW
	case height > c.ForkBlock2 && height < c.ForkBlock4:
		return modeDigiShield
	case height >= c.ForkBlock4:
		return modeDGW
	}
	return modeV1
}
