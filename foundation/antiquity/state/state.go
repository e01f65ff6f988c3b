// Package state is the core API for the proof-of-antiquity node and
// implements all the business rules and processing.
package state

import (
	"sync"
	"time"

	"github.com/rustchain/blockchain/foundation/antiquity/engine"
	"github.com/rustchain/blockchain/foundation/antiquity/entropy"
	"github.com/rustchain/blockchain/foundation/antiquity/genesis"
	"github.com/rustchain/blockchain/foundation/antiquity/profile"
	"github.com/rustchain/blockchain/foundation/antiquity/storage"
)

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of proofs and blocks.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for sealing blocks on the window interval.
type Worker interface {
	Shutdown()
	SignalSealBlock()
}

// =============================================================================

// Config represents the configuration required to start
// the blockchain node.
type Config struct {
	Genesis       genesis.Genesis
	Storage       storage.Blocks
	Fingerprints  storage.Fingerprints
	ChallengeSeed [32]byte
	Now           func() time.Time
	EvHandler     EventHandler
}

// State manages the proof-of-antiquity node.
type State struct {
	mu          sync.Mutex
	latestBlock engine.Block
	balances    map[string]uint64

	genesis    genesis.Genesis
	engine     *engine.Engine
	verifier   *entropy.Verifier
	challenger *entropy.Challenger
	storage    storage.Blocks
	evHandler  EventHandler

	Worker Worker
}

// New constructs a new node state for data management.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	// The consensus engine enforces the window and validates proofs. The
	// fingerprint store is shared so device bindings survive restarts.
	eng, err := engine.New(engine.Config{
		BlockReward:  cfg.Genesis.BlockReward,
		Window:       time.Duration(cfg.Genesis.WindowSeconds) * time.Second,
		MaxMiners:    int(cfg.Genesis.MinersPerBlock),
		Fingerprints: cfg.Fingerprints,
		Now:          cfg.Now,
		EvHandler:    engine.EventHandler(ev),
	})
	if err != nil {
		return nil, err
	}

	// Starting balances come from the genesis file.
	balances := make(map[string]uint64, len(cfg.Genesis.Balances))
	for wallet, balance := range cfg.Genesis.Balances {
		balances[wallet] = balance
	}

	state := State{
		balances:   balances,
		genesis:    cfg.Genesis,
		engine:     eng,
		verifier:   entropy.NewVerifier(profile.NewRegistry()),
		challenger: entropy.NewChallenger(cfg.ChallengeSeed, cfg.Now),
		storage:    cfg.Storage,
		evHandler:  ev,
	}

	// Load all existing blocks from storage into memory so the latest block
	// and the miner balances reflect the chain on disk.
	iter := cfg.Storage.ForEach()
	for !iter.Done() {
		block, err := iter.Next()
		if err != nil {
			return nil, err
		}

		state.latestBlock = block
		for _, miner := range block.Miners {
			state.balances[miner.Wallet] += miner.Reward
		}
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running for the node.

	return &state, nil
}

// Shutdown cleanly brings the node down.
func (s *State) Shutdown() error {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	// Make sure the database file is properly closed.
	defer func() {
		s.storage.Close()
	}()

	// Stop all blockchain writing activity.
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}
