// Package engine implements the proof-of-antiquity block window: proof
// intake, validation, deduplication, reward apportionment and block sealing.
package engine

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rustchain/blockchain/foundation/antiquity/emulation"
	"github.com/rustchain/blockchain/foundation/antiquity/hardware"
)

// Consensus parameters for the proof-of-antiquity engine.
const (
	// BlockReward is the reward per block in smallest units (1 RTC),
	// split among miners proportional to their multipliers.
	BlockReward uint64 = 100_000_000

	// WindowDuration is the fixed interval during which proofs are
	// collected before a block is sealed.
	WindowDuration = 120 * time.Second

	// MaxMinersPerBlock caps the number of proofs per block.
	MaxMinersPerBlock = 100

	// MinMultiplier is the minimum multiplier to receive any reward.
	MinMultiplier = 0.1

	// MaxMultiplier is the largest multiplier a proof may declare.
	MaxMultiplier = 4.0

	// MultiplierCap caps any accepted multiplier at the ancient tier
	// maximum.
	MultiplierCap = 3.5

	// MaxHardwareAge is the oldest plausible hardware age in years.
	MaxHardwareAge = 50

	// multiplierTolerance is how far a declared multiplier may drift from
	// the multiplier implied by its tier.
	multiplierTolerance = 0.2
)

// EventHandler defines a function that is called when events occur in the
// processing of proofs and blocks.
type EventHandler func(v string, args ...any)

// =============================================================================

// SubmitResult reports the acceptance of a proof into the current window.
type SubmitResult struct {
	Accepted         bool    `json:"accepted"`
	PendingMiners    int     `json:"pending_miners"`
	YourMultiplier   float64 `json:"your_multiplier"`
	BlockCompletesIn uint64  `json:"block_completes_in"`
}

// BlockStatus reports the state of the current window.
type BlockStatus struct {
	PendingProofs    int     `json:"pending_proofs"`
	TotalMultipliers float64 `json:"total_multipliers"`
	BlockAge         uint64  `json:"block_age"`
	TimeRemaining    uint64  `json:"time_remaining"`
}

// =============================================================================

// Config represents the configuration required to construct an engine.
type Config struct {
	BlockReward  uint64
	Window       time.Duration
	MaxMiners    int
	Fingerprints FingerprintStore
	Now          func() time.Time
	EvHandler    EventHandler
}

// Engine manages the block-window state machine. The pending proof list,
// the fingerprint registry and the window start form one mutable unit
// guarded by a single mutex; verification itself is pure and lock-free.
type Engine struct {
	mu           sync.Mutex
	pending      []ValidatedProof
	windowStart  time.Time
	blockReward  uint64
	window       time.Duration
	maxMiners    int
	fingerprints FingerprintStore
	antiEmu      *emulation.Verifier
	now          func() time.Time
	evHandler    EventHandler
}

// New constructs an engine and opens its first block window.
func New(cfg Config) (*Engine, error) {
	if cfg.Fingerprints == nil {
		return nil, errors.New("a fingerprint store is required")
	}

	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	e := Engine{
		blockReward:  cfg.BlockReward,
		window:       cfg.Window,
		maxMiners:    cfg.MaxMiners,
		fingerprints: cfg.Fingerprints,
		antiEmu:      emulation.NewVerifier(),
		now:          cfg.Now,
		evHandler:    ev,
	}

	if e.blockReward == 0 {
		e.blockReward = BlockReward
	}
	if e.window == 0 {
		e.window = WindowDuration
	}
	if e.maxMiners == 0 {
		e.maxMiners = MaxMinersPerBlock
	}
	if e.now == nil {
		e.now = time.Now
	}

	e.windowStart = e.now()

	return &e, nil
}

// SubmitProof validates the proof against the current window and, on
// success, queues it for the next block. Each failed check short-circuits
// with its own error.
func (e *Engine) SubmitProof(proof MiningProof) (SubmitResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Window expiry is checked lazily on each submission.
	elapsed := e.elapsedSeconds()
	if elapsed >= e.windowSeconds() {
		return SubmitResult{}, ErrBlockWindowClosed
	}

	for _, p := range e.pending {
		if p.Wallet == proof.Wallet {
			return SubmitResult{}, ErrDuplicateSubmission
		}
	}

	if len(e.pending) >= e.maxMiners {
		return SubmitResult{}, ErrBlockFull
	}

	if err := validateHardware(proof.Hardware); err != nil {
		return SubmitResult{}, err
	}

	if proof.Hardware.Characteristics != nil {
		if err := e.antiEmu.Verify(*proof.Hardware.Characteristics); err != nil {
			return SubmitResult{}, err
		}
	}

	// One physical device can never back a second wallet, even across
	// blocks: the fingerprint binding outlives the window.
	fp := HardwareFingerprint(proof.Hardware)
	if wallet, exists := e.fingerprints.Lookup(fp); exists && wallet != proof.Wallet {
		return SubmitResult{}, fmt.Errorf("%w to wallet %s", ErrHardwareAlreadyRegistered, wallet)
	}

	expected := proof.Hardware.Tier.Multiplier()
	if math.Abs(proof.Hardware.Multiplier-expected) > multiplierTolerance {
		return SubmitResult{}, ErrInvalidMultiplier
	}

	capped := math.Min(proof.Hardware.Multiplier, MultiplierCap)

	e.pending = append(e.pending, ValidatedProof{
		Wallet:            proof.Wallet,
		Hardware:          proof.Hardware,
		Multiplier:        capped,
		AntiEmulationHash: proof.AntiEmulationHash,
		ValidatedAt:       uint64(e.now().UTC().Unix()),
	})

	if err := e.fingerprints.Bind(fp, proof.Wallet); err != nil {
		// The proof stays accepted; losing the binding only weakens future
		// duplicate-hardware detection.
		e.evHandler("engine: SubmitProof: WARNING: bind fingerprint: %s", err)
	}

	e.evHandler("engine: SubmitProof: accepted: wallet[%s] hardware[%s] multiplier[%.2f]", proof.Wallet, proof.Hardware.Model, capped)

	return SubmitResult{
		Accepted:         true,
		PendingMiners:    len(e.pending),
		YourMultiplier:   capped,
		BlockCompletesIn: e.windowSeconds() - elapsed,
	}, nil
}

// ProcessBlock seals the current window into a block, apportioning the
// block reward proportional to each validated multiplier. It reports false
// when the window held no proofs; either way the window is reset.
func (e *Engine) ProcessBlock(previousHash string, height uint64) (Block, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.pending) == 0 {
		e.resetWindow()
		return Block{}, false
	}

	var totalMultipliers float64
	for _, p := range e.pending {
		totalMultipliers += p.Multiplier
	}

	// Shares are truncated to integer units, never rounded. The truncation
	// residual (at most one unit per miner) is not redistributed.
	miners := make([]BlockMiner, 0, len(e.pending))
	var totalDistributed uint64

	for _, p := range e.pending {
		share := p.Multiplier / totalMultipliers
		reward := uint64(float64(e.blockReward) * share)
		totalDistributed += reward

		miners = append(miners, BlockMiner{
			Wallet:     p.Wallet,
			Hardware:   p.Hardware.Model,
			Multiplier: p.Multiplier,
			Reward:     reward,
		})
	}

	timestamp := uint64(e.now().UTC().Unix())

	merkleRoot, err := minerMerkleRoot(miners)
	if err != nil {
		e.evHandler("engine: ProcessBlock: ERROR: merkle root: %s", err)
		merkleRoot = ZeroHash
	}

	block := Block{
		Height:       height,
		Hash:         blockHash(height, previousHash, totalDistributed, timestamp),
		PreviousHash: previousHash,
		Timestamp:    timestamp,
		Miners:       miners,
		TotalReward:  totalDistributed,
		MerkleRoot:   merkleRoot,
		StateRoot:    ZeroHash,
	}

	e.evHandler("engine: ProcessBlock: sealed: height[%d] miners[%d] distributed[%d]", height, len(miners), totalDistributed)

	e.resetWindow()

	return block, true
}

// Status reports the state of the current window. It has no side effects.
func (e *Engine) Status() BlockStatus {
	e.mu.Lock()
	defer e.mu.Unlock()

	var totalMultipliers float64
	for _, p := range e.pending {
		totalMultipliers += p.Multiplier
	}

	elapsed := e.elapsedSeconds()

	var remaining uint64
	if ws := e.windowSeconds(); elapsed < ws {
		remaining = ws - elapsed
	}

	return BlockStatus{
		PendingProofs:    len(e.pending),
		TotalMultipliers: totalMultipliers,
		BlockAge:         elapsed,
		TimeRemaining:    remaining,
	}
}

// =============================================================================

// resetWindow starts a fresh window. The long-lived fingerprint binding is
// deliberately not cleared. The caller must hold the mutex.
func (e *Engine) resetWindow() {
	e.pending = nil
	e.windowStart = e.now()
}

// elapsedSeconds returns the whole seconds since the window opened. The
// caller must hold the mutex.
func (e *Engine) elapsedSeconds() uint64 {
	elapsed := e.now().Sub(e.windowStart)
	if elapsed < 0 {
		return 0
	}

	return uint64(elapsed / time.Second)
}

// windowSeconds returns the window length in whole seconds.
func (e *Engine) windowSeconds() uint64 {
	return uint64(e.window / time.Second)
}

// validateHardware performs the hardware plausibility checks.
func validateHardware(hw hardware.Info) error {
	if hw.AgeYears > MaxHardwareAge {
		return ErrSuspiciousAge
	}

	if hw.Tier != hardware.TierFromAge(hw.AgeYears) {
		return ErrTierMismatch
	}

	if hw.Multiplier < MinMultiplier || hw.Multiplier > MaxMultiplier {
		return ErrInvalidMultiplier
	}

	return nil
}
