package target

import "testing"

func chainOf(n int64) *BlockIndex {
	var prev *BlockIndex
	for h := int64(0); h <= n; h++ {
		prev = &BlockIndex{Height: h, Time: h * 150, Bits: 0x1d00ffff, Prev: prev}
	}
	return prev
}

func TestAncestor(t *testing.T) {
	tip := chainOf(10)

	if got := tip.Ancestor(0); got != tip {
		t.Fatalf("Ancestor(0) should return the node itself")
	}

	a := tip.Ancestor(3)
	if a == nil || a.Height != 7 {
		t.Fatalf("Ancestor(3) from height 10 = %v, want height 7", a)
	}

	if got := tip.Ancestor(11); got != nil {
		t.Fatalf("Ancestor(11) from a 10-deep chain should be nil, got %v", got)
	}
}

func TestDifficultyAdjustmentInterval(t *testing.T) {
	p := &Params{PowTargetTimespan: 3600, PowTargetSpacing: 150}
	if got := p.DifficultyAdjustmentInterval(); got != 24 {
		t.Fatalf("DifficultyAdjustmentInterval = %d, want 24", got)
	}
}

func TestNetworkString(t *testing.T) {
	if Mainnet.String() != "mainnet" {
		t.Fatalf("Mainnet.String() = %q", Mainnet.String())
	}
	if Testnet.String() != "testnet" {
		t.Fatalf("Testnet.String() = %q", Testnet.String())
	}
}
