package state

import (
	"github.com/rustchain/blockchain/foundation/antiquity/entropy"
)

// GenerateChallenge produces a fresh timing challenge a miner must execute
// on its hardware to build a deep entropy proof.
func (s *State) GenerateChallenge() entropy.Challenge {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.challenger.Generate()
}

// VerifyEntropy runs the deep entropy verification of a hardware proof
// against the reference profile for the claimed hardware.
func (s *State) VerifyEntropy(proof entropy.Proof, claimedHardwareID string) entropy.Result {
	result := s.verifier.Verify(proof, claimedHardwareID)

	s.evHandler("state: VerifyEntropy: hardware[%s] valid[%t] score[%.3f] emulation[%.3f]",
		claimedHardwareID, result.Valid, result.TotalScore, result.EmulationProbability)

	return result
}
