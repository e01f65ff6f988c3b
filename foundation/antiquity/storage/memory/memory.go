// Package memory implements in-memory block and fingerprint stores, used by
// tests and by nodes that don't need persistence.
package memory

import (
	"fmt"
	"sync"

	"github.com/rustchain/blockchain/foundation/antiquity/engine"
	"github.com/rustchain/blockchain/foundation/antiquity/storage"
)

// Blocks keeps sealed blocks in memory in height order.
type Blocks struct {
	mu     sync.RWMutex
	blocks []engine.Block
}

// NewBlocks constructs an in-memory block store.
func NewBlocks() *Blocks {
	return &Blocks{}
}

// Write appends the sealed block.
func (b *Blocks) Write(block engine.Block) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.blocks = append(b.blocks, block)

	return nil
}

// GetBlock returns the block sealed at the specified height.
func (b *Blocks) GetBlock(height uint64) (engine.Block, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, blk := range b.blocks {
		if blk.Height == height {
			return blk, nil
		}
	}

	return engine.Block{}, fmt.Errorf("block at height %d not found", height)
}

// ForEach returns an iterator over the stored blocks.
func (b *Blocks) ForEach() storage.Iterator {
	return &Iterator{store: b}
}

// Close in this implementation has nothing to do.
func (b *Blocks) Close() error {
	return nil
}

// Iterator walks the in-memory blocks in insertion order.
type Iterator struct {
	store   *Blocks
	current int
}

// Next returns the next stored block.
func (it *Iterator) Next() (engine.Block, error) {
	it.store.mu.RLock()
	defer it.store.mu.RUnlock()

	if it.current >= len(it.store.blocks) {
		return engine.Block{}, fmt.Errorf("no block at position %d", it.current)
	}

	block := it.store.blocks[it.current]
	it.current++

	return block, nil
}

// Done reports whether iteration is complete.
func (it *Iterator) Done() bool {
	it.store.mu.RLock()
	defer it.store.mu.RUnlock()

	return it.current >= len(it.store.blocks)
}

// =============================================================================

// Fingerprints keeps the hardware fingerprint to wallet binding in memory.
type Fingerprints struct {
	mu       sync.RWMutex
	bindings map[engine.Fingerprint]string
}

// NewFingerprints constructs an in-memory fingerprint store.
func NewFingerprints() *Fingerprints {
	return &Fingerprints{
		bindings: make(map[engine.Fingerprint]string),
	}
}

// Lookup returns the wallet bound to the fingerprint.
func (f *Fingerprints) Lookup(fp engine.Fingerprint) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	wallet, exists := f.bindings[fp]

	return wallet, exists
}

// Bind records the fingerprint to wallet binding.
func (f *Fingerprints) Bind(fp engine.Fingerprint, wallet string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.bindings[fp] = wallet

	return nil
}
