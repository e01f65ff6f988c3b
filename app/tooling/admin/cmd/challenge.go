package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var challengeCmd = &cobra.Command{
	Use:   "challenge",
	Short: "Request a fresh timing challenge from the node.",
	Run:   challengeRun,
}

func init() {
	rootCmd.AddCommand(challengeCmd)
}

func challengeRun(cmd *cobra.Command, args []string) {
	resp, err := http.Get(fmt.Sprintf("%s/v1/challenge", url))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	var challenge struct {
		Nonce             [32]byte `json:"nonce"`
		ExpectedTimeMinUS uint64   `json:"expected_time_min_us"`
		ExpectedTimeMaxUS uint64   `json:"expected_time_max_us"`
		Operations        []struct {
			Kind     int     `json:"kind"`
			IntArg   uint64  `json:"int_arg"`
			FloatArg float64 `json:"float_arg"`
			Flag     bool    `json:"flag"`
		} `json:"operations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&challenge); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("nonce:      %x\n", challenge.Nonce)
	fmt.Println("operations:", len(challenge.Operations))
	fmt.Printf("expected:   %d-%d us\n", challenge.ExpectedTimeMinUS, challenge.ExpectedTimeMaxUS)
}
