package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rustchain/blockchain/foundation/antiquity/engine"
	"github.com/rustchain/blockchain/foundation/antiquity/hardware"
	"github.com/rustchain/blockchain/foundation/antiquity/signature"
	"github.com/spf13/cobra"
)

var (
	hwModel      string
	hwGeneration string
	hwAge        uint
	nonce        uint64
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Sign and submit a mining proof for the current block.",
	Run:   submitRun,
}

func init() {
	rootCmd.AddCommand(submitCmd)
	submitCmd.Flags().StringVarP(&hwModel, "model", "m", "", "Hardware model.")
	submitCmd.Flags().StringVarP(&hwGeneration, "generation", "g", "", "Hardware generation.")
	submitCmd.Flags().UintVarP(&hwAge, "age", "a", 0, "Hardware age in years.")
	submitCmd.Flags().Uint64VarP(&nonce, "nonce", "n", 0, "Proof nonce.")
	submitCmd.MarkFlagRequired("model")
	submitCmd.MarkFlagRequired("age")
}

func submitRun(cmd *cobra.Command, args []string) {
	privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
	if err != nil {
		log.Fatal(err)
	}

	if hwGeneration == "" {
		hwGeneration = hwModel
	}

	proof := engine.MiningProof{
		Wallet:    signature.AddressFromPublicKey(&privateKey.PublicKey),
		Hardware:  hardware.NewInfo(hwModel, hwGeneration, hwAge),
		Timestamp: uint64(time.Now().UTC().Unix()),
		Nonce:     nonce,
	}

	v, r, s, err := signature.Sign(proof, privateKey)
	if err != nil {
		log.Fatal(err)
	}

	payload := struct {
		Wallet    string        `json:"wallet"`
		Hardware  hardware.Info `json:"hardware"`
		Timestamp uint64        `json:"timestamp"`
		Nonce     uint64        `json:"nonce"`
		V         any           `json:"v"`
		R         any           `json:"r"`
		S         any           `json:"s"`
	}{
		Wallet:    proof.Wallet,
		Hardware:  proof.Hardware,
		Timestamp: proof.Timestamp,
		Nonce:     proof.Nonce,
		V:         v,
		R:         r,
		S:         s,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Fatal(err)
	}

	resp, err := http.Post(fmt.Sprintf("%s/v1/proof/submit", url), "application/json", bytes.NewBuffer(data))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	var result struct {
		Accepted         bool    `json:"accepted"`
		PendingMiners    int     `json:"pending_miners"`
		YourMultiplier   float64 `json:"your_multiplier"`
		BlockCompletesIn uint64  `json:"block_completes_in"`
		Error            string  `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Fatal(err)
	}

	if result.Error != "" {
		log.Fatal(result.Error)
	}

	fmt.Println("accepted:          ", result.Accepted)
	fmt.Println("pending miners:    ", result.PendingMiners)
	fmt.Println("your multiplier:   ", result.YourMultiplier)
	fmt.Println("block completes in:", result.BlockCompletesIn)
}
