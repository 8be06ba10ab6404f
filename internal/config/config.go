// Package config loads the JSON network manifest that parameterizes the
// retargeting core, the same manifest-on-disk shape the teacher's
// blockchain node uses for its own network parameters.
package config

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"driftcoin/internal/target"
)

// Manifest is the on-disk JSON shape of a network's consensus parameters.
// PowLimitHex is hex-encoded (no "0x" prefix) since it rarely fits a JSON
// number cleanly at 256 bits.
type Manifest struct {
	Name    string `json:"name"`
	Ticker  string `json:"ticker"`
	Network string `json:"network"` // "mainnet" or "testnet"

	GenesisHash                 string `json:"genesis_hash"`
	SubsidyHalvingInterval      int64  `json:"subsidy_halving_interval"`
	MajorityEnforceBlockUpgrade int64  `json:"majority_enforce_block_upgrade"`
	MajorityRejectBlockOutdated int64  `json:"majority_reject_block_outdated"`
	MajorityWindow              int64  `json:"majority_window"`

	PowLimitHex              string `json:"pow_limit"`
	AllowMinDifficultyBlocks bool   `json:"allow_min_difficulty_blocks"`
	PowTargetSpacing         int64  `json:"pow_target_spacing"`
	PowTargetTimespan        int64  `json:"pow_target_timespan"`

	// Consensus fields below are optional; zero values fall back to
	// target.DefaultConsensusConstants.
	ForkBlock1             int64 `json:"fork_block_1"`
	ForkBlock2             int64 `json:"fork_block_2"`
	ForkBlock3             int64 `json:"fork_block_3"`
	ForkBlock4             int64 `json:"fork_block_4"`
	CoinFix1Block          int64 `json:"coinfix1_block"`
	X11Start               int64 `json:"x11_start"`
	DigiShieldTestnetPivot int64 `json:"digishield_testnet_pivot"`
	DGWTimePivot           int64 `json:"dgw_time_pivot"`
}

// Load reads and validates a network manifest from path, returning the
// derived target.Params and the network tag to pass to retarget.NextWorkRequired.
func Load(path string) (*target.Params, target.Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, target.Mainnet, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, target.Mainnet, fmt.Errorf("parse manifest: %w", err)
	}

	if m.PowLimitHex == "" {
		return nil, target.Mainnet, fmt.Errorf("manifest %s: pow_limit is required", path)
	}
	powLimit, ok := new(big.Int).SetString(m.PowLimitHex, 16)
	if !ok {
		return nil, target.Mainnet, fmt.Errorf("manifest %s: pow_limit %q is not valid hex", path, m.PowLimitHex)
	}
	if m.PowTargetSpacing <= 0 {
		return nil, target.Mainnet, fmt.Errorf("manifest %s: pow_target_spacing must be > 0", path)
	}
	if m.PowTargetTimespan <= 0 {
		return nil, target.Mainnet, fmt.Errorf("manifest %s: pow_target_timespan must be > 0", path)
	}

	network := target.Mainnet
	if m.Network == "testnet" {
		network = target.Testnet
	}

	constants := target.DefaultConsensusConstants
	applyOverride(&constants.ForkBlock1, m.ForkBlock1)
	applyOverride(&constants.ForkBlock2, m.ForkBlock2)
	applyOverride(&constants.ForkBlock3, m.ForkBlock3)
	applyOverride(&constants.ForkBlock4, m.ForkBlock4)
	applyOverride(&constants.CoinFix1Block, m.CoinFix1Block)
	applyOverride(&constants.X11Start, m.X11Start)
	applyOverride(&constants.DigiShieldTestnetPivot, m.DigiShieldTestnetPivot)
	applyOverride(&constants.DGWTimePivot, m.DGWTimePivot)

	params := &target.Params{
		GenesisHash:                 m.GenesisHash,
		SubsidyHalvingInterval:      m.SubsidyHalvingInterval,
		MajorityEnforceBlockUpgrade: m.MajorityEnforceBlockUpgrade,
		MajorityRejectBlockOutdated: m.MajorityRejectBlockOutdated,
		MajorityWindow:              m.MajorityWindow,
		PowLimit:                    powLimit,
		AllowMinDifficultyBlocks:    m.AllowMinDifficultyBlocks,
		PowTargetSpacing:            m.PowTargetSpacing,
		PowTargetTimespan:           m.PowTargetTimespan,
		Constants:                   constants,
	}

	return params, network, nil
}

func applyOverride(dst *int64, v int64) {
	if v != 0 {
		*dst = v
	}
}
