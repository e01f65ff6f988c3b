package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rustchain/blockchain/foundation/antiquity/signature"
	"github.com/spf13/cobra"
)

type balance struct {
	Wallet  string `json:"wallet"`
	Name    string `json:"name"`
	Balance uint64 `json:"balance"`
}

type balances struct {
	LatestBlock string    `json:"latest_block"`
	Balances    []balance `json:"balances"`
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print your balance.",
	Run:   balanceRun,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func balanceRun(cmd *cobra.Command, args []string) {
	privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
	if err != nil {
		log.Fatal(err)
	}

	address := signature.AddressFromPublicKey(&privateKey.PublicKey)
	fmt.Println("for wallet:", address)

	resp, err := http.Get(fmt.Sprintf("%s/v1/balances/list/%s", url, address))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	var balances balances
	if err := json.NewDecoder(resp.Body).Decode(&balances); err != nil {
		log.Fatal(err)
	}

	if len(balances.Balances) > 0 {
		fmt.Println(balances.Balances[0].Balance)
	}
}
