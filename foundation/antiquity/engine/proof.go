package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/rustchain/blockchain/foundation/antiquity/hardware"
)

// MiningProof represents a proof of antiquity submitted by a miner for the
// current block window. A proof is consumed exactly once.
type MiningProof struct {
	Wallet            string        `json:"wallet"`
	Hardware          hardware.Info `json:"hardware"`
	AntiEmulationHash [32]byte      `json:"anti_emulation_hash"`
	Timestamp         uint64        `json:"timestamp"`
	Nonce             uint64        `json:"nonce"`
}

// ValidatedProof represents an accepted proof retained for the current
// block window only. It is destroyed when the window is sealed or reset.
type ValidatedProof struct {
	Wallet            string        `json:"wallet"`
	Hardware          hardware.Info `json:"hardware"`
	Multiplier        float64       `json:"multiplier"`
	AntiEmulationHash [32]byte      `json:"anti_emulation_hash"`
	ValidatedAt       uint64        `json:"validated_at"`
}

// =============================================================================

// Fingerprint identifies a physical device so one machine can't back
// multiple wallets.
type Fingerprint [32]byte

// String implements the fmt.Stringer interface.
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// HardwareFingerprint derives the fingerprint for the specified hardware
// from its model, generation and unique identifier.
func HardwareFingerprint(hw hardware.Info) Fingerprint {
	var uniqueID string
	if hw.Characteristics != nil {
		uniqueID = hw.Characteristics.UniqueID
	}

	data := fmt.Sprintf("%s:%s:%s", hw.Model, hw.Generation, uniqueID)

	return sha256.Sum256([]byte(data))
}

// FingerprintStore represents the lifetime hardware fingerprint to wallet
// binding. The binding outlives block windows so devices can't migrate
// between wallets; an injected implementation can also outlive the process.
type FingerprintStore interface {
	Lookup(fp Fingerprint) (wallet string, exists bool)
	Bind(fp Fingerprint, wallet string) error
}
