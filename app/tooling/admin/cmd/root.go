// Package cmd contains the admin tooling for a running node.
package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var (
	url        string
	walletName string
	walletPath string
)

const (
	keyExtension = ".ecdsa"
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&url, "url", "u", "http://localhost:8080", "Url of the node.")
	rootCmd.PersistentFlags().StringVarP(&walletName, "wallet", "w", "private.ecdsa", "Path to the private key.")
	rootCmd.PersistentFlags().StringVarP(&walletPath, "wallet-path", "p", "zblock/wallets/", "Path to the directory with private keys.")
}

var rootCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administer a proof of antiquity node",
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func getPrivateKeyPath() string {
	if !strings.HasSuffix(walletName, keyExtension) {
		walletName += keyExtension
	}

	return filepath.Join(walletPath, walletName)
}
