// Package genesis maintains access to the genesis file.
package genesis

import (
	"encoding/json"
	"os"
	"time"
)

// Genesis represents the genesis file.
type Genesis struct {
	Date           time.Time         `json:"date"`
	ChainID        uint16            `json:"chain_id"`         // The chain id represents an unique id for this running instance.
	TotalSupply    uint64            `json:"total_supply"`     // Total RustChain coins that will ever exist, in whole RTC.
	BlockReward    uint64            `json:"block_reward"`     // Reward distributed per block, in smallest units.
	WindowSeconds  uint64            `json:"window_seconds"`   // Length of the proof collection window per block.
	MinersPerBlock uint16            `json:"miners_per_block"` // The maximum number of miners that can be in a block.
	Balances       map[string]uint64 `json:"balances"`
}

// =============================================================================

// Load opens and consumes the genesis file.
func Load() (Genesis, error) {
	path := "zblock/genesis.json"
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	err = json.Unmarshal(content, &genesis)
	if err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}
