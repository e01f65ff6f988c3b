// Package storage declares the persistence behavior the node requires for
// sealed blocks and the lifetime hardware fingerprint binding. The concrete
// implementations live in the disk and memory packages.
package storage

import (
	"github.com/rustchain/blockchain/foundation/antiquity/engine"
)

// Iterator represents the behavior required to iterate sealed blocks in
// height order.
type Iterator interface {
	Next() (engine.Block, error)
	Done() bool
}

// Blocks represents the behavior required for sealed block persistence.
// Blocks are written exactly once and never mutated.
type Blocks interface {
	Write(block engine.Block) error
	GetBlock(height uint64) (engine.Block, error)
	ForEach() Iterator
	Close() error
}

// Fingerprints is the injected lifetime fingerprint store the engine
// requires. It must survive process restarts when backed by disk.
type Fingerprints = engine.FingerprintStore
