package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the state of the current block window.",
	Run:   statusRun,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func statusRun(cmd *cobra.Command, args []string) {
	resp, err := http.Get(fmt.Sprintf("%s/v1/status", url))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	var status struct {
		PendingProofs    int     `json:"pending_proofs"`
		TotalMultipliers float64 `json:"total_multipliers"`
		BlockAge         uint64  `json:"block_age"`
		TimeRemaining    uint64  `json:"time_remaining"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		log.Fatal(err)
	}

	fmt.Println("pending proofs:   ", status.PendingProofs)
	fmt.Println("total multipliers:", status.TotalMultipliers)
	fmt.Println("block age:        ", status.BlockAge)
	fmt.Println("time remaining:   ", status.TimeRemaining)
}
