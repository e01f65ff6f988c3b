package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/rustchain/blockchain/foundation/antiquity/merkle"
)

// ZeroHash represents a hash of zeros, used as the previous hash of the
// first block and the merkle root of an empty miner list.
const ZeroHash = "0000000000000000000000000000000000000000000000000000000000000000"

// BlockMiner represents one miner's entry in a sealed block.
type BlockMiner struct {
	Wallet     string  `json:"wallet"`
	Hardware   string  `json:"hardware"`
	Multiplier float64 `json:"multiplier"`
	Reward     uint64  `json:"reward"`
}

// Hash implements the merkle Hashable interface, hashing the entry's
// wallet, multiplier and reward as the leaf preimage.
func (bm BlockMiner) Hash() ([]byte, error) {
	data := fmt.Sprintf("%s:%s:%d", bm.Wallet, formatMultiplier(bm.Multiplier), bm.Reward)
	hash := sha256.Sum256([]byte(data))

	return hash[:], nil
}

// Equals implements the merkle Hashable interface.
func (bm BlockMiner) Equals(other BlockMiner) bool {
	return bm == other
}

// formatMultiplier renders a multiplier with the shortest representation
// that round-trips, keeping leaf preimages stable across nodes.
func formatMultiplier(m float64) string {
	return strconv.FormatFloat(m, 'g', -1, 64)
}

// =============================================================================

// Block represents a sealed block. A block is immutable once sealed.
type Block struct {
	Height       uint64       `json:"height"`
	Hash         string       `json:"hash"`
	PreviousHash string       `json:"previous_hash"`
	Timestamp    uint64       `json:"timestamp"`
	Miners       []BlockMiner `json:"miners"`
	TotalReward  uint64       `json:"total_reward"`
	MerkleRoot   string       `json:"merkle_root"`
	StateRoot    string       `json:"state_root"`
}

// blockHash computes the block hash over the block metadata.
func blockHash(height uint64, previousHash string, totalReward uint64, timestamp uint64) string {
	data := fmt.Sprintf("%d:%s:%d:%d", height, previousHash, totalReward, timestamp)
	hash := sha256.Sum256([]byte(data))

	return hex.EncodeToString(hash[:])
}

// minerMerkleRoot computes the merkle root over the ordered miner entries.
// An empty miner list yields the zero root.
func minerMerkleRoot(miners []BlockMiner) (string, error) {
	if len(miners) == 0 {
		return ZeroHash, nil
	}

	tree, err := merkle.NewTree(miners)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(tree.MerkleRoot), nil
}
