// Command driftpow is a standalone harness for the retargeting core: it
// loads a network manifest, optionally replays a stored chain-view
// snapshot, computes the next difficulty target, and optionally checks a
// candidate hash against it.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"

	"driftcoin/internal/config"
	"driftcoin/internal/retarget"
	"driftcoin/internal/snapshot"
	"driftcoin/internal/target"
)

func main() {
	configPath := flag.String("config", "", "Path to network manifest JSON")
	snapshotDir := flag.String("snapshot", "", "Directory holding a chain-view snapshot (chain.db)")
	candidateTime := flag.Int64("time", 0, "Candidate block timestamp (unix seconds); defaults to tip time + target spacing")
	checkHash := flag.String("checkhash", "", "Hex-encoded 32-byte hash to check against the computed target")
	debug := flag.Bool("debug", false, "Enable [POW] dispatcher diagnostics")
	flag.Parse()

	if *configPath == "" {
		log.Fatalf("driftpow: -config is required")
	}

	params, network, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("driftpow: %v", err)
	}

	params.Debug = *debug

	log.Printf("=== driftpow ===")
	log.Printf("network: %s", network)
	log.Printf("pow limit: %x", params.PowLimit)

	var tip *target.BlockIndex
	if *snapshotDir != "" {
		store, err := snapshot.Open(*snapshotDir)
		if err != nil {
			log.Fatalf("driftpow: open snapshot: %v", err)
		}
		defer store.Close()

		tip, err = store.Load()
		if err != nil {
			log.Fatalf("driftpow: load snapshot: %v", err)
		}
	}

	if tip == nil {
		log.Printf("no chain-view loaded; computing genesis-relative target")
	} else {
		log.Printf("loaded chain-view tip: height=%d time=%d bits=%08x", tip.Height, tip.Time, tip.Bits)
	}

	candTime := *candidateTime
	if candTime == 0 {
		if tip != nil {
			candTime = tip.Time + params.PowTargetSpacing
		}
	}

	bits := retarget.NextWorkRequired(tip, candTime, network, params)
	value, negative, overflow := target.Decode(bits)
	log.Printf("next bits: %08x", bits)
	log.Printf("next target: %x (negative=%v overflow=%v)", value, negative, overflow)

	if *checkHash != "" {
		raw, err := hex.DecodeString(*checkHash)
		if err != nil || len(raw) != 32 {
			log.Fatalf("driftpow: -checkhash must be 32 bytes of hex")
		}
		var hash [32]byte
		copy(hash[:], raw)

		ok := retarget.CheckProofOfWork(hash, bits, params)
		fmt.Fprintf(os.Stdout, "checkhash %s against bits %08x: %v\n", *checkHash, bits, ok)
	}
}
