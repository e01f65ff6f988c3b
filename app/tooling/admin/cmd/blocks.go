package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var (
	fromHeight uint64
	toHeight   uint64
)

var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Print the sealed blocks in a height range.",
	Run:   blocksRun,
}

func init() {
	rootCmd.AddCommand(blocksCmd)
	blocksCmd.Flags().Uint64VarP(&fromHeight, "from", "f", 1, "First block height.")
	blocksCmd.Flags().Uint64VarP(&toHeight, "to", "t", 10, "Last block height.")
}

func blocksRun(cmd *cobra.Command, args []string) {
	resp, err := http.Get(fmt.Sprintf("%s/v1/blocks/list/%d/%d", url, fromHeight, toHeight))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		fmt.Println("no blocks in range")
		return
	}

	var blocks []struct {
		Height      uint64 `json:"height"`
		Hash        string `json:"hash"`
		Timestamp   uint64 `json:"timestamp"`
		TotalReward uint64 `json:"total_reward"`
		Miners      []struct {
			Wallet     string  `json:"wallet"`
			Hardware   string  `json:"hardware"`
			Multiplier float64 `json:"multiplier"`
			Reward     uint64  `json:"reward"`
		} `json:"miners"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&blocks); err != nil {
		log.Fatal(err)
	}

	for _, block := range blocks {
		fmt.Printf("block %d %s distributed[%d]\n", block.Height, block.Hash, block.TotalReward)
		for _, miner := range block.Miners {
			fmt.Printf("  %s %s x%.2f reward[%d]\n", miner.Wallet, miner.Hardware, miner.Multiplier, miner.Reward)
		}
	}
}
