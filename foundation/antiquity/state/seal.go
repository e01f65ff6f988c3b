package state

import (
	"fmt"

	"github.com/rustchain/blockchain/foundation/antiquity/engine"
)

// SealBlock closes the current block window, writes the sealed block to
// storage and credits each miner's balance. It reports false when the
// window held no proofs.
func (s *State) SealBlock() (engine.Block, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	previousHash := engine.ZeroHash
	if s.latestBlock.Height > 0 {
		previousHash = s.latestBlock.Hash
	}

	block, sealed := s.engine.ProcessBlock(previousHash, s.latestBlock.Height+1)
	if !sealed {
		return engine.Block{}, false, nil
	}

	if err := s.storage.Write(block); err != nil {
		return engine.Block{}, false, fmt.Errorf("writing block to storage: %w", err)
	}

	s.latestBlock = block
	for _, miner := range block.Miners {
		s.balances[miner.Wallet] += miner.Reward
	}

	s.evHandler("state: SealBlock: sealed: height[%d] hash[%s] miners[%d]", block.Height, block.Hash, len(block.Miners))

	return block, true, nil
}
