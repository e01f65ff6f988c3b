package state

import (
	"fmt"
	"math/big"

	"github.com/rustchain/blockchain/foundation/antiquity/engine"
	"github.com/rustchain/blockchain/foundation/antiquity/signature"
)

// SignedProof is a mining proof signed by the wallet that submitted it.
type SignedProof struct {
	engine.MiningProof
	V *big.Int `json:"v"`
	R *big.Int `json:"r"`
	S *big.Int `json:"s"`
}

// SignatureString returns the signature as a string.
func (sp SignedProof) SignatureString() string {
	return signature.SignatureString(sp.V, sp.R, sp.S)
}

// Validate verifies the proof is signed by the wallet that claims the
// reward.
func (sp SignedProof) Validate() error {
	if !signature.IsValidAddress(sp.Wallet) {
		return fmt.Errorf("%w: invalid wallet address", engine.ErrInvalidSignature)
	}

	if err := signature.VerifySignature(sp.V, sp.R, sp.S); err != nil {
		return fmt.Errorf("%w: %s", engine.ErrInvalidSignature, err)
	}

	address, err := signature.FromAddress(sp.MiningProof, sp.V, sp.R, sp.S)
	if err != nil {
		return fmt.Errorf("%w: %s", engine.ErrInvalidSignature, err)
	}

	if address != sp.Wallet {
		return fmt.Errorf("%w: signature does not match wallet", engine.ErrInvalidSignature)
	}

	return nil
}

// SubmitSignedProof verifies the proof signature and submits the proof to
// the consensus engine for the current block window.
func (s *State) SubmitSignedProof(sp SignedProof) (engine.SubmitResult, error) {
	s.evHandler("state: SubmitSignedProof: started: wallet[%s]", sp.Wallet)
	defer s.evHandler("state: SubmitSignedProof: completed: wallet[%s]", sp.Wallet)

	if err := sp.Validate(); err != nil {
		return engine.SubmitResult{}, err
	}

	return s.engine.SubmitProof(sp.MiningProof)
}
