package public

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/rustchain/blockchain/business/sys/validate"
	"github.com/rustchain/blockchain/foundation/antiquity/engine"
	"github.com/rustchain/blockchain/foundation/antiquity/hardware"
	"github.com/rustchain/blockchain/foundation/antiquity/state"
)

// appHardware represents the hardware description in a proof submission.
type appHardware struct {
	Model           string                    `json:"model" validate:"required"`
	Generation      string                    `json:"generation" validate:"required"`
	AgeYears        uint                      `json:"age_years" validate:"lte=50"`
	Tier            int                       `json:"tier" validate:"gte=0,lte=6"`
	Multiplier      float64                   `json:"multiplier" validate:"gte=0.1,lte=4.0"`
	Characteristics *hardware.Characteristics `json:"characteristics,omitempty"`
}

// appProof represents a signed proof submission from a miner.
type appProof struct {
	Wallet            string      `json:"wallet" validate:"required"`
	Hardware          appHardware `json:"hardware" validate:"required"`
	AntiEmulationHash string      `json:"anti_emulation_hash"`
	Timestamp         uint64      `json:"timestamp" validate:"required"`
	Nonce             uint64      `json:"nonce"`
	V                 *big.Int    `json:"v" validate:"required"`
	R                 *big.Int    `json:"r" validate:"required"`
	S                 *big.Int    `json:"s" validate:"required"`
}

// Validate checks the proof submission against its declared tags.
func (ap appProof) Validate() error {
	return validate.Check(ap)
}

// toSignedProof converts the app layer proof to a signed proof the state
// layer can authenticate and submit.
func toSignedProof(ap appProof) (state.SignedProof, error) {
	var antiEmu [32]byte
	if ap.AntiEmulationHash != "" {
		data, err := hex.DecodeString(ap.AntiEmulationHash)
		if err != nil || len(data) != len(antiEmu) {
			return state.SignedProof{}, fmt.Errorf("invalid anti emulation hash")
		}
		copy(antiEmu[:], data)
	}

	sp := state.SignedProof{
		MiningProof: engine.MiningProof{
			Wallet: ap.Wallet,
			Hardware: hardware.Info{
				Model:           ap.Hardware.Model,
				Generation:      ap.Hardware.Generation,
				AgeYears:        ap.Hardware.AgeYears,
				Tier:            hardware.Tier(ap.Hardware.Tier),
				Multiplier:      ap.Hardware.Multiplier,
				Characteristics: ap.Hardware.Characteristics,
			},
			AntiEmulationHash: antiEmu,
			Timestamp:         ap.Timestamp,
			Nonce:             ap.Nonce,
		},
		V: ap.V,
		R: ap.R,
		S: ap.S,
	}

	return sp, nil
}

// balance represents one wallet's balance in the API response.
type balance struct {
	Wallet  string `json:"wallet"`
	Name    string `json:"name"`
	Balance uint64 `json:"balance"`
}

// balances is the API response for the balance listing.
type balances struct {
	LatestBlock string    `json:"latest_block"`
	Balances    []balance `json:"balances"`
}
