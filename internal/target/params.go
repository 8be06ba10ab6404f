// Package target implements the 256-bit proof-of-work target representation
// shared by every retargeting algorithm: the compact ("nBits") codec, the
// immutable consensus parameters that parameterize a retarget, and the
// chain-view node the retargeters walk backward over.
package target

import "math/big"

// Network discriminates which dispatch table a candidate height is checked
// against. Carried as a small tagged value instead of the reference
// implementation's string comparison against "test".
type Network uint8

const (
	Mainnet Network = iota
	Testnet
)

func (n Network) String() string {
	if n == Testnet {
		return "testnet"
	}
	return "mainnet"
}

// ConsensusConstants holds the height/time thresholds that select a
// retargeting algorithm and its variants. These were process-wide #define
// constants in the reference implementation; here they are a field of
// Params so a network manifest can override them.
type ConsensusConstants struct {
	// ForkBlock1 is the height at which KGW activates on mainnet.
	ForkBlock1 int64
	// ForkBlock2 is the height at which DigiShield activates on mainnet
	// (strictly after this height — see the dispatcher's verbatim gap).
	ForkBlock2 int64
	// ForkBlock3 is informational only; no retargeter branches on it.
	ForkBlock3 int64
	// ForkBlock4 is the height at which DGWv3 activates on mainnet.
	ForkBlock4 int64
	// CoinFix1Block activates the V1 "history factor" path once
	// pindexLast.Height exceeds it.
	CoinFix1Block int64
	// X11Start is the mainnet timestamp after which DigiShield switches to a
	// 120-second target spacing (DGWv3 uses DGWTimePivot instead).
	X11Start int64
	// DigiShieldTestnetPivot is the testnet timestamp equivalent of
	// X11Start for DigiShield's dynamic spacing.
	DigiShieldTestnetPivot int64
	// DGWTimePivot is the timestamp after which DGWv3 uses a 120-second
	// target spacing regardless of network.
	DGWTimePivot int64
}

// DefaultConsensusConstants reproduces the reference mainnet deployment's
// fork schedule (forkBlock1=35000, forkBlock2=200000, forkBlock3=300000,
// forkBlock4=385000, COINFIX1_BLOCK=15000, X11_START=1406160000).
var DefaultConsensusConstants = ConsensusConstants{
	ForkBlock1:             35000,
	ForkBlock2:             200000,
	ForkBlock3:             300000,
	ForkBlock4:             385000,
	CoinFix1Block:          15000,
	X11Start:               1406160000,
	DigiShieldTestnetPivot: 1405296000,
	DGWTimePivot:           1406160000,
}

// Params is the immutable per-network consensus record. It is constructed
// once (typically from a JSON manifest via internal/config) and lives for
// the process.
type Params struct {
	GenesisHash string

	// SubsidyHalvingInterval and the majority thresholds below are part of
	// the consensus record but unused by this core; they are carried
	// because Params is the record the surrounding chain manager would
	// actually use in full.
	SubsidyHalvingInterval      int64
	MajorityEnforceBlockUpgrade int64
	MajorityRejectBlockOutdated int64
	MajorityWindow              int64

	// PowLimit is the maximum (easiest) target permitted by consensus.
	PowLimit *big.Int

	// AllowMinDifficultyBlocks enables testnet retarget slack.
	AllowMinDifficultyBlocks bool

	// PowTargetSpacing is the nominal seconds-per-block.
	PowTargetSpacing int64
	// PowTargetTimespan is the seconds covered by one V1 retarget window.
	PowTargetTimespan int64

	Constants ConsensusConstants

	// Debug gates the dispatcher's diagnostic logging. It never changes the
	// bits a retarget call returns.
	Debug bool
}

// DifficultyAdjustmentInterval is the number of blocks between V1 retargets.
func (p *Params) DifficultyAdjustmentInterval() int64 {
	return p.PowTargetTimespan / p.PowTargetSpacing
}

// BlockIndex is a read-only chain-view node: height, block time, the compact
// target chosen for this block, and the cumulative work through and
// including it. Prev is nil at genesis. This is a concrete struct rather
// than an interface so that "no predecessor" is a plain nil-pointer check,
// not the classic Go typed-nil-interface trap.
type BlockIndex struct {
	Height    int64
	Time      int64
	Bits      uint32
	ChainWork *big.Int
	Prev      *BlockIndex
}

// Ancestor walks back n predecessors from b, stopping early (returning nil)
// if the chain runs out. n == 0 returns b itself.
func (b *BlockIndex) Ancestor(n int64) *BlockIndex {
	cur := b
	for i := int64(0); i < n; i++ {
		if cur == nil {
			return nil
		}
		cur = cur.Prev
	}
	return cur
}
