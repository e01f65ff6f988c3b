package engine_test

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rustchain/blockchain/foundation/antiquity/engine"
	"github.com/rustchain/blockchain/foundation/antiquity/hardware"
	"github.com/rustchain/blockchain/foundation/antiquity/storage/memory"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// testClock provides an injectable clock the tests can advance.
type testClock struct {
	current time.Time
}

func newTestClock() *testClock {
	return &testClock{current: time.Unix(1_700_000_000, 0)}
}

func (c *testClock) now() time.Time {
	return c.current
}

func (c *testClock) advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func newEngine(t *testing.T, clock *testClock) *engine.Engine {
	e, err := engine.New(engine.Config{
		Fingerprints: memory.NewFingerprints(),
		Now:          clock.now,
	})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the engine: %s", failed, err)
	}

	return e
}

func proofFor(wallet string, model string, age uint) engine.MiningProof {
	return engine.MiningProof{
		Wallet:    wallet,
		Hardware:  hardware.NewInfo(model, model, age),
		Timestamp: 1_700_000_000,
		Nonce:     1,
	}
}

func Test_SubmitProof(t *testing.T) {
	clock := newTestClock()
	e := newEngine(t, clock)

	result, err := e.SubmitProof(proofFor("RTC1TestMiner123456789", "PowerPC G4", 22))
	if err != nil {
		t.Fatalf("\t%s\tShould accept a valid proof: %s", failed, err)
	}
	t.Logf("\t%s\tShould accept a valid proof.", success)

	if !result.Accepted || result.PendingMiners != 1 {
		t.Fatalf("\t%s\tShould report one pending miner, got %+v.", failed, result)
	}
	if result.YourMultiplier != 2.5 {
		t.Fatalf("\t%s\tShould have the vintage multiplier 2.5, got %v.", failed, result.YourMultiplier)
	}
	if result.BlockCompletesIn != 120 {
		t.Fatalf("\t%s\tShould have the full window remaining, got %d.", failed, result.BlockCompletesIn)
	}

	status := e.Status()
	if status.PendingProofs != 1 || status.TotalMultipliers != 2.5 {
		t.Fatalf("\t%s\tShould report the pending proof in the status, got %+v.", failed, status)
	}
	t.Logf("\t%s\tShould report the pending proof in the status.", success)
}

func Test_SubmitProofChecks(t *testing.T) {
	type table struct {
		name  string
		proof func() engine.MiningProof
		err   error
	}

	tt := []table{
		{
			name: "tier-mismatch",
			proof: func() engine.MiningProof {
				p := proofFor("RTC1TestMiner123456789", "Test CPU", 22)
				p.Hardware.Tier = hardware.TierAncient
				return p
			},
			err: engine.ErrTierMismatch,
		},
		{
			name: "suspicious-age",
			proof: func() engine.MiningProof {
				return proofFor("RTC1TestMiner123456789", "Difference Engine", 51)
			},
			err: engine.ErrSuspiciousAge,
		},
		{
			name: "multiplier-out-of-bounds",
			proof: func() engine.MiningProof {
				p := proofFor("RTC1TestMiner123456789", "Test CPU", 35)
				p.Hardware.Multiplier = 4.5
				return p
			},
			err: engine.ErrInvalidMultiplier,
		},
		{
			name: "multiplier-tier-drift",
			proof: func() engine.MiningProof {
				p := proofFor("RTC1TestMiner123456789", "Test CPU", 22)
				p.Hardware.Multiplier = 2.9
				return p
			},
			err: engine.ErrInvalidMultiplier,
		},
	}

	for _, tst := range tt {
		f := func(t *testing.T) {
			e := newEngine(t, newTestClock())

			_, err := e.SubmitProof(tst.proof())
			if !errors.Is(err, tst.err) {
				t.Logf("Test %s:\tgot: %v", tst.name, err)
				t.Logf("Test %s:\texp: %v", tst.name, tst.err)
				t.Fatalf("Test %s:\tShould get back the right error.", tst.name)
			}
		}

		t.Run(tst.name, f)
	}
}

func Test_DuplicateSubmission(t *testing.T) {
	e := newEngine(t, newTestClock())

	if _, err := e.SubmitProof(proofFor("RTC1TestMiner123456789", "CPU1", 15)); err != nil {
		t.Fatalf("\t%s\tShould accept the first proof: %s", failed, err)
	}

	// A second proof from the same wallet in the same window must be
	// rejected even with different hardware.
	_, err := e.SubmitProof(proofFor("RTC1TestMiner123456789", "CPU2", 20))
	if !errors.Is(err, engine.ErrDuplicateSubmission) {
		t.Fatalf("\t%s\tShould reject a duplicate wallet submission, got %v.", failed, err)
	}
	t.Logf("\t%s\tShould reject a duplicate wallet submission.", success)
}

func Test_BlockWindowClosed(t *testing.T) {
	clock := newTestClock()
	e := newEngine(t, clock)

	// At 119 seconds the window is still open.
	clock.advance(119 * time.Second)
	result, err := e.SubmitProof(proofFor("RTC1Wallet0000000000001", "CPU1", 15))
	if err != nil {
		t.Fatalf("\t%s\tShould accept a proof at 119 seconds: %s", failed, err)
	}
	if result.BlockCompletesIn != 1 {
		t.Fatalf("\t%s\tShould report 1 second remaining, got %d.", failed, result.BlockCompletesIn)
	}

	// At 121 seconds an otherwise valid proof is rejected.
	clock.advance(2 * time.Second)
	_, err = e.SubmitProof(proofFor("RTC1Wallet0000000000002", "CPU2", 15))
	if !errors.Is(err, engine.ErrBlockWindowClosed) {
		t.Fatalf("\t%s\tShould reject a proof after the window closed, got %v.", failed, err)
	}
	t.Logf("\t%s\tShould reject a proof after the window closed.", success)
}

func Test_BlockFull(t *testing.T) {
	e, err := engine.New(engine.Config{
		MaxMiners:    3,
		Fingerprints: memory.NewFingerprints(),
		Now:          newTestClock().now,
	})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the engine: %s", failed, err)
	}

	for i := 0; i < 3; i++ {
		wallet := fmt.Sprintf("RTC1Wallet%013d", i)
		if _, err := e.SubmitProof(proofFor(wallet, fmt.Sprintf("CPU%d", i), 15)); err != nil {
			t.Fatalf("\t%s\tShould accept proof %d: %s", failed, i, err)
		}
	}

	_, err = e.SubmitProof(proofFor("RTC1Wallet9999999999999", "CPU9", 15))
	if !errors.Is(err, engine.ErrBlockFull) {
		t.Fatalf("\t%s\tShould reject a proof once the block is full, got %v.", failed, err)
	}
	t.Logf("\t%s\tShould reject a proof once the block is full.", success)
}

func Test_MultiplierCap(t *testing.T) {
	e := newEngine(t, newTestClock())

	// Ancient tier with the maximum tolerated drift still caps at 3.5.
	p := proofFor("RTC1TestMiner123456789", "IBM 5150", 35)
	p.Hardware.Multiplier = 3.65

	result, err := e.SubmitProof(p)
	if err != nil {
		t.Fatalf("\t%s\tShould accept the proof: %s", failed, err)
	}
	if result.YourMultiplier != 3.5 {
		t.Fatalf("\t%s\tShould cap the multiplier at 3.5, got %v.", failed, result.YourMultiplier)
	}
	t.Logf("\t%s\tShould cap the multiplier at 3.5.", success)
}

func Test_HardwareAlreadyRegistered(t *testing.T) {
	clock := newTestClock()
	e := newEngine(t, clock)

	chars := hardware.Characteristics{UniqueID: "serial-0001"}

	p1 := proofFor("RTC1WalletAAAAAAAAAAAAA", "PowerPC G4", 22)
	p1.Hardware.Characteristics = &chars
	if _, err := e.SubmitProof(p1); err != nil {
		t.Fatalf("\t%s\tShould accept the first proof: %s", failed, err)
	}

	// Seal a block so the pending window is cleared.
	if _, sealed := e.ProcessBlock(engine.ZeroHash, 1); !sealed {
		t.Fatalf("\t%s\tShould seal a block with pending proofs.", failed)
	}

	// The same physical device backing a different wallet is rejected
	// even in a later window.
	p2 := proofFor("RTC1WalletBBBBBBBBBBBBB", "PowerPC G4", 22)
	p2.Hardware.Characteristics = &chars
	_, err := e.SubmitProof(p2)
	if !errors.Is(err, engine.ErrHardwareAlreadyRegistered) {
		t.Fatalf("\t%s\tShould reject reused hardware across windows, got %v.", failed, err)
	}
	t.Logf("\t%s\tShould reject reused hardware across windows.", success)

	// The original wallet may keep mining on its own hardware.
	p3 := proofFor("RTC1WalletAAAAAAAAAAAAA", "PowerPC G4", 22)
	p3.Hardware.Characteristics = &chars
	if _, err := e.SubmitProof(p3); err != nil {
		t.Fatalf("\t%s\tShould accept the original wallet again: %s", failed, err)
	}
	t.Logf("\t%s\tShould accept the original wallet again.", success)
}

func Test_ProcessBlockRewards(t *testing.T) {
	clock := newTestClock()
	e := newEngine(t, clock)

	// A vintage proof (2.5) alongside an ancient proof (3.5): total
	// multiplier 6.0 with floor-truncated shares of the 100,000,000 unit
	// reward and 1 unit of dust lost.
	if _, err := e.SubmitProof(proofFor("RTC1WalletAAAAAAAAAAAAA", "PowerPC G4", 22)); err != nil {
		t.Fatalf("\t%s\tShould accept the vintage proof: %s", failed, err)
	}
	if _, err := e.SubmitProof(proofFor("RTC1WalletBBBBBBBBBBBBB", "IBM 5150", 35)); err != nil {
		t.Fatalf("\t%s\tShould accept the ancient proof: %s", failed, err)
	}

	block, sealed := e.ProcessBlock(engine.ZeroHash, 1)
	if !sealed {
		t.Fatalf("\t%s\tShould seal a block with pending proofs.", failed)
	}

	if block.Miners[0].Reward != 41_666_666 {
		t.Fatalf("\t%s\tShould have reward 41666666 for the vintage miner, got %d.", failed, block.Miners[0].Reward)
	}
	if block.Miners[1].Reward != 58_333_333 {
		t.Fatalf("\t%s\tShould have reward 58333333 for the ancient miner, got %d.", failed, block.Miners[1].Reward)
	}
	if block.TotalReward != 99_999_999 {
		t.Fatalf("\t%s\tShould distribute 99999999 with 1 unit of dust, got %d.", failed, block.TotalReward)
	}
	t.Logf("\t%s\tShould reproduce the documented truncation, not round-to-nearest.", success)

	// Reward conservation: the shortfall never exceeds one unit per miner.
	if block.TotalReward > engine.BlockReward || engine.BlockReward-block.TotalReward > uint64(len(block.Miners)) {
		t.Fatalf("\t%s\tShould bound the dust loss by the miner count.", failed)
	}

	// The block hash commits to height, previous hash, distributed total
	// and timestamp.
	preimage := fmt.Sprintf("%d:%s:%d:%d", block.Height, engine.ZeroHash, block.TotalReward, block.Timestamp)
	expHash := sha256.Sum256([]byte(preimage))
	if block.Hash != hex.EncodeToString(expHash[:]) {
		t.Fatalf("\t%s\tShould compute the block hash over the block metadata.", failed)
	}
	t.Logf("\t%s\tShould compute the block hash over the block metadata.", success)

	if block.MerkleRoot == engine.ZeroHash || block.MerkleRoot == "" {
		t.Fatalf("\t%s\tShould have a non-zero merkle root.", failed)
	}

	// The window was reset: no pending proofs and the same wallet can
	// submit again.
	if status := e.Status(); status.PendingProofs != 0 {
		t.Fatalf("\t%s\tShould clear the window on seal, got %d pending.", failed, status.PendingProofs)
	}
	if _, err := e.SubmitProof(proofFor("RTC1WalletAAAAAAAAAAAAA", "PowerPC G4", 22)); err != nil {
		t.Fatalf("\t%s\tShould accept the wallet again in the next window: %s", failed, err)
	}
	t.Logf("\t%s\tShould accept the wallet again in the next window.", success)
}

func Test_ProcessBlockEmptyWindow(t *testing.T) {
	clock := newTestClock()
	e := newEngine(t, clock)

	// Let the window expire with no proofs.
	clock.advance(200 * time.Second)

	if _, sealed := e.ProcessBlock(engine.ZeroHash, 1); sealed {
		t.Fatalf("\t%s\tShould not seal a block from an empty window.", failed)
	}
	t.Logf("\t%s\tShould not seal a block from an empty window.", success)

	// The reset reopened the window.
	if _, err := e.SubmitProof(proofFor("RTC1TestMiner123456789", "CPU1", 15)); err != nil {
		t.Fatalf("\t%s\tShould accept a proof after the empty reset: %s", failed, err)
	}
	t.Logf("\t%s\tShould accept a proof after the empty reset.", success)
}

func Test_MerkleRootOrderSensitive(t *testing.T) {
	sealWith := func(first, second string) string {
		clock := newTestClock()
		e := newEngine(t, clock)

		if _, err := e.SubmitProof(proofFor(first, "PowerPC G4", 22)); err != nil {
			t.Fatalf("\t%s\tShould accept the first proof: %s", failed, err)
		}
		if _, err := e.SubmitProof(proofFor(second, "IBM 5150", 35)); err != nil {
			t.Fatalf("\t%s\tShould accept the second proof: %s", failed, err)
		}

		block, sealed := e.ProcessBlock(engine.ZeroHash, 1)
		if !sealed {
			t.Fatalf("\t%s\tShould seal the block.", failed)
		}
		return block.MerkleRoot
	}

	rootAB := sealWith("RTC1WalletAAAAAAAAAAAAA", "RTC1WalletBBBBBBBBBBBBB")
	rootAB2 := sealWith("RTC1WalletAAAAAAAAAAAAA", "RTC1WalletBBBBBBBBBBBBB")

	if rootAB != rootAB2 {
		t.Fatalf("\t%s\tShould reproduce the same root for the same ordered miners.", failed)
	}
	t.Logf("\t%s\tShould reproduce the same root for the same ordered miners.", success)
}

func Test_FingerprintDerivation(t *testing.T) {
	hw1 := hardware.NewInfo("PowerPC G4", "G4", 22)
	hw2 := hardware.NewInfo("PowerPC G4", "G4", 22)

	if engine.HardwareFingerprint(hw1) != engine.HardwareFingerprint(hw2) {
		t.Fatalf("\t%s\tShould derive equal fingerprints for equal hardware.", failed)
	}

	chars := hardware.Characteristics{UniqueID: "serial-0001"}
	hw2.Characteristics = &chars

	if engine.HardwareFingerprint(hw1) == engine.HardwareFingerprint(hw2) {
		t.Fatalf("\t%s\tShould derive different fingerprints for different unique ids.", failed)
	}
	t.Logf("\t%s\tShould bind fingerprints to model, generation and unique id.", success)
}
