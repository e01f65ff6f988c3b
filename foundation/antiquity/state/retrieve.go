package state

import (
	"github.com/rustchain/blockchain/foundation/antiquity/engine"
	"github.com/rustchain/blockchain/foundation/antiquity/genesis"
)

// RetrieveGenesis returns a copy of the genesis information.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}

// RetrieveLatestBlock returns a copy of the current latest block.
func (s *State) RetrieveLatestBlock() engine.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.latestBlock
}

// RetrieveStatus returns the state of the current block window.
func (s *State) RetrieveStatus() engine.BlockStatus {
	return s.engine.Status()
}

// RetrieveBalances returns a copy of the wallet balances. If a wallet is
// specified, only that wallet's balance is returned.
func (s *State) RetrieveBalances(wallet string) map[string]uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	balances := make(map[string]uint64)
	for w, balance := range s.balances {
		if wallet == "" || wallet == w {
			balances[w] = balance
		}
	}

	return balances
}

// QueryBlocksByHeight returns the blocks in the specified range inclusive.
func (s *State) QueryBlocksByHeight(from uint64, to uint64) ([]engine.Block, error) {
	var blocks []engine.Block

	for height := from; height <= to; height++ {
		block, err := s.storage.GetBlock(height)
		if err != nil {
			break
		}
		blocks = append(blocks, block)
	}

	return blocks, nil
}
