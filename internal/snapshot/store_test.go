package snapshot

import (
	"math/big"
	"testing"

	"driftcoin/internal/target"
)

func buildChain(n int64) *target.BlockIndex {
	var prev *target.BlockIndex
	for h := int64(0); h <= n; h++ {
		prev = &target.BlockIndex{
			Height:    h,
			Time:      1000 + h*150,
			Bits:      0x1d00ffff,
			ChainWork: big.NewInt(h + 1),
			Prev:      prev,
		}
	}
	return prev
}

func TestPutAndLoadRoundTrip(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	tip := buildChain(5)
	if err := store.Put(tip); err != nil {
		t.Fatalf("Put: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded == nil {
		t.Fatalf("Load returned nil after Put")
	}
	if loaded.Height != tip.Height || loaded.Time != tip.Time || loaded.Bits != tip.Bits {
		t.Fatalf("loaded tip %+v does not match original %+v", loaded, tip)
	}

	count := int64(0)
	for node := loaded; node != nil; node = node.Prev {
		count++
	}
	if count != 6 {
		t.Fatalf("expected 6 linked nodes (heights 0..5), got %d", count)
	}
}

func TestLoadEmptyStoreReturnsNil(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	tip, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tip != nil {
		t.Fatalf("expected nil tip from an empty store, got %+v", tip)
	}
}

func TestReopenPreservesData(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	tip := buildChain(3)
	if err := store.Put(tip); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	loaded, err := reopened.Load()
	if err != nil {
		t.Fatalf("Load after reopen: %v", err)
	}
	if loaded == nil || loaded.Height != 3 {
		t.Fatalf("expected reloaded tip at height 3, got %+v", loaded)
	}
}
