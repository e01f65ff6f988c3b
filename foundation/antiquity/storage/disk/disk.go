// Package disk implements block and fingerprint stores backed by JSON files
// on disk, one file per sealed block.
package disk

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strconv"
	"sync"

	"github.com/rustchain/blockchain/foundation/antiquity/engine"
	"github.com/rustchain/blockchain/foundation/antiquity/storage"
)

// Blocks represents the serialization implementation for reading and
// storing sealed blocks in their own separate files on disk.
type Blocks struct {
	dbPath string
}

// NewBlocks constructs a disk-backed block store rooted at dbPath.
func NewBlocks(dbPath string) (*Blocks, error) {
	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, err
	}

	return &Blocks{dbPath: dbPath}, nil
}

// Close in this implementation has nothing to do since a new file is
// written to disk for each new block and then immediately closed.
func (b *Blocks) Close() error {
	return nil
}

// Write stores the sealed block on disk in a file labeled with the block
// height.
func (b *Blocks) Write(block engine.Block) error {

	// Marshal the block for writing to disk in a more human readable format.
	data, err := json.MarshalIndent(block, "", "  ")
	if err != nil {
		return err
	}

	f, err := os.OpenFile(b.getPath(block.Height), os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return err
	}

	return nil
}

// GetBlock searches the chain on disk to locate and return the contents of
// the block sealed at the specified height.
func (b *Blocks) GetBlock(height uint64) (engine.Block, error) {
	f, err := os.OpenFile(b.getPath(height), os.O_RDONLY, 0600)
	if err != nil {
		return engine.Block{}, err
	}
	defer f.Close()

	var block engine.Block
	if err := json.NewDecoder(f).Decode(&block); err != nil {
		return engine.Block{}, err
	}

	return block, nil
}

// ForEach returns an iterator to walk through all the blocks starting with
// block height 1.
func (b *Blocks) ForEach() storage.Iterator {
	return &Iterator{store: b, current: 1}
}

// getPath forms the path to the block file for the specified height.
func (b *Blocks) getPath(height uint64) string {
	name := strconv.FormatUint(height, 10)
	return path.Join(b.dbPath, fmt.Sprintf("%s.json", name))
}

// Iterator represents the iteration implementation for walking through and
// reading blocks on disk.
type Iterator struct {
	store   *Blocks
	current uint64
	eoc     bool
}

// Next retrieves the next block from disk.
func (it *Iterator) Next() (engine.Block, error) {
	if it.eoc {
		return engine.Block{}, fmt.Errorf("end of chain at height %d", it.current)
	}

	block, err := it.store.GetBlock(it.current)
	if err != nil {
		it.eoc = true
		return engine.Block{}, err
	}

	it.current++

	return block, nil
}

// Done reports whether iteration is complete.
func (it *Iterator) Done() bool {
	if it.eoc {
		return true
	}

	if _, err := os.Stat(it.store.getPath(it.current)); err != nil {
		it.eoc = true
	}

	return it.eoc
}

// =============================================================================

// Fingerprints keeps the lifetime hardware fingerprint to wallet binding in
// a single JSON file, rewritten on every new binding. The binding must
// survive process restarts so devices can't migrate between wallets.
type Fingerprints struct {
	mu       sync.Mutex
	path     string
	bindings map[string]string
}

// NewFingerprints constructs a disk-backed fingerprint store, loading any
// existing bindings.
func NewFingerprints(dbPath string) (*Fingerprints, error) {
	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, err
	}

	f := Fingerprints{
		path:     path.Join(dbPath, "fingerprints.json"),
		bindings: make(map[string]string),
	}

	data, err := os.ReadFile(f.path)
	switch {
	case os.IsNotExist(err):
		return &f, nil
	case err != nil:
		return nil, err
	}

	if err := json.Unmarshal(data, &f.bindings); err != nil {
		return nil, fmt.Errorf("corrupt fingerprint store: %w", err)
	}

	return &f, nil
}

// Lookup returns the wallet bound to the fingerprint.
func (f *Fingerprints) Lookup(fp engine.Fingerprint) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	wallet, exists := f.bindings[fp.String()]

	return wallet, exists
}

// Bind records the fingerprint to wallet binding and flushes the store.
func (f *Fingerprints) Bind(fp engine.Fingerprint, wallet string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.bindings[fp.String()] = wallet

	data, err := json.MarshalIndent(f.bindings, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(f.path, data, 0600)
}
