package state_test

import (
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rustchain/blockchain/foundation/antiquity/engine"
	"github.com/rustchain/blockchain/foundation/antiquity/genesis"
	"github.com/rustchain/blockchain/foundation/antiquity/hardware"
	"github.com/rustchain/blockchain/foundation/antiquity/signature"
	"github.com/rustchain/blockchain/foundation/antiquity/state"
	"github.com/rustchain/blockchain/foundation/antiquity/storage/memory"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func testGenesis() genesis.Genesis {
	return genesis.Genesis{
		ChainID:        2718,
		TotalSupply:    8_388_608,
		BlockReward:    100_000_000,
		WindowSeconds:  120,
		MinersPerBlock: 100,
		Balances: map[string]uint64{
			"RTC1Founder00000000000000000000000000000001": 100_000_000,
		},
	}
}

func signedProof(t *testing.T, age uint) state.SignedProof {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("\t%s\tShould be able to generate a private key: %s", failed, err)
	}

	proof := engine.MiningProof{
		Wallet:    signature.AddressFromPublicKey(&privateKey.PublicKey),
		Hardware:  hardware.NewInfo("PowerPC G4", "G4", age),
		Timestamp: 1_700_000_000,
		Nonce:     1,
	}

	v, r, s, err := signature.Sign(proof, privateKey)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to sign the proof: %s", failed, err)
	}

	return state.SignedProof{MiningProof: proof, V: v, R: r, S: s}
}

func Test_SubmitAndSeal(t *testing.T) {
	blocks := memory.NewBlocks()
	fingerprints := memory.NewFingerprints()

	st, err := state.New(state.Config{
		Genesis:      testGenesis(),
		Storage:      blocks,
		Fingerprints: fingerprints,
		Now:          func() time.Time { return time.Unix(1_700_000_000, 0) },
	})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the state: %s", failed, err)
	}

	sp := signedProof(t, 22)

	result, err := st.SubmitSignedProof(sp)
	if err != nil {
		t.Fatalf("\t%s\tShould accept a properly signed proof: %s", failed, err)
	}
	if !result.Accepted {
		t.Fatalf("\t%s\tShould report the proof accepted.", failed)
	}
	t.Logf("\t%s\tShould accept a properly signed proof.", success)

	block, sealed, err := st.SealBlock()
	if err != nil {
		t.Fatalf("\t%s\tShould be able to seal a block: %s", failed, err)
	}
	if !sealed {
		t.Fatalf("\t%s\tShould seal a block with a pending proof.", failed)
	}

	if block.Height != 1 || block.PreviousHash != engine.ZeroHash {
		t.Fatalf("\t%s\tShould seal the first block on the zero hash, got height %d prev %s.", failed, block.Height, block.PreviousHash)
	}
	t.Logf("\t%s\tShould seal the first block on the zero hash.", success)

	// A lone miner takes the whole reward.
	if block.Miners[0].Reward != 100_000_000 {
		t.Fatalf("\t%s\tShould award the whole reward to a lone miner, got %d.", failed, block.Miners[0].Reward)
	}

	balances := st.RetrieveBalances(sp.Wallet)
	if balances[sp.Wallet] != 100_000_000 {
		t.Fatalf("\t%s\tShould credit the miner balance, got %d.", failed, balances[sp.Wallet])
	}
	t.Logf("\t%s\tShould credit the miner balance.", success)

	stored, err := blocks.GetBlock(1)
	if err != nil {
		t.Fatalf("\t%s\tShould find the sealed block in storage: %s", failed, err)
	}
	if stored.Hash != block.Hash {
		t.Fatalf("\t%s\tShould store the sealed block unchanged.", failed)
	}
	t.Logf("\t%s\tShould store the sealed block unchanged.", success)

	if st.RetrieveLatestBlock().Hash != block.Hash {
		t.Fatalf("\t%s\tShould update the latest block.", failed)
	}
}

func Test_RejectBadSignature(t *testing.T) {
	st, err := state.New(state.Config{
		Genesis:      testGenesis(),
		Storage:      memory.NewBlocks(),
		Fingerprints: memory.NewFingerprints(),
		Now:          func() time.Time { return time.Unix(1_700_000_000, 0) },
	})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the state: %s", failed, err)
	}

	// Sign the proof correctly, then claim a different wallet.
	sp := signedProof(t, 22)
	sp.Wallet = "RTC1SomeoneElse0000000000000000000000000001"

	_, err = st.SubmitSignedProof(sp)
	if !errors.Is(err, engine.ErrInvalidSignature) {
		t.Fatalf("\t%s\tShould reject a proof signed by a different wallet, got %v.", failed, err)
	}
	t.Logf("\t%s\tShould reject a proof signed by a different wallet.", success)
}

func Test_RestartFromStorage(t *testing.T) {
	blocks := memory.NewBlocks()
	fingerprints := memory.NewFingerprints()

	cfg := state.Config{
		Genesis:      testGenesis(),
		Storage:      blocks,
		Fingerprints: fingerprints,
		Now:          func() time.Time { return time.Unix(1_700_000_000, 0) },
	}

	st, err := state.New(cfg)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the state: %s", failed, err)
	}

	sp := signedProof(t, 35)
	if _, err := st.SubmitSignedProof(sp); err != nil {
		t.Fatalf("\t%s\tShould accept the proof: %s", failed, err)
	}
	block, _, err := st.SealBlock()
	if err != nil {
		t.Fatalf("\t%s\tShould be able to seal a block: %s", failed, err)
	}

	// A fresh state over the same storage must pick up the chain and the
	// fingerprint bindings.
	st2, err := state.New(cfg)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct a second state: %s", failed, err)
	}

	if st2.RetrieveLatestBlock().Hash != block.Hash {
		t.Fatalf("\t%s\tShould recover the latest block from storage.", failed)
	}
	t.Logf("\t%s\tShould recover the latest block from storage.", success)

	if st2.RetrieveBalances(sp.Wallet)[sp.Wallet] != block.Miners[0].Reward {
		t.Fatalf("\t%s\tShould rebuild balances from stored blocks.", failed)
	}
	t.Logf("\t%s\tShould rebuild balances from stored blocks.", success)

	// The device binding survived, so the same hardware on a new wallet
	// is still rejected.
	other := signedProof(t, 35)
	_, err = st2.SubmitSignedProof(other)
	if !errors.Is(err, engine.ErrHardwareAlreadyRegistered) {
		t.Fatalf("\t%s\tShould reject the registered hardware on a new wallet, got %v.", failed, err)
	}
	t.Logf("\t%s\tShould reject the registered hardware on a new wallet.", success)
}
