// Package nameservice reads the zblock/wallets folder and creates a name
// service lookup for the wallet addresses.
package nameservice

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rustchain/blockchain/foundation/antiquity/signature"
)

// NameService maintains a map of wallet addresses for name lookup.
type NameService struct {
	wallets map[string]string
}

// New constructs a name service with wallets from the specified folder.
func New(root string) (*NameService, error) {
	ns := NameService{
		wallets: make(map[string]string),
	}

	fn := func(fileName string, info fs.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("walkdir failure: %w", err)
		}

		if path.Ext(fileName) != ".ecdsa" {
			return nil
		}

		privateKey, err := crypto.LoadECDSA(fileName)
		if err != nil {
			return err
		}

		address := signature.AddressFromPublicKey(&privateKey.PublicKey)
		ns.wallets[address] = strings.TrimSuffix(path.Base(fileName), ".ecdsa")

		return nil
	}

	if err := filepath.Walk(root, fn); err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}

	return &ns, nil
}

// Lookup returns the name for the specified wallet address.
func (ns *NameService) Lookup(address string) string {
	name, exists := ns.wallets[address]
	if !exists {
		return address
	}
	return name
}

// Copy returns a copy of the map of names and wallet addresses.
func (ns *NameService) Copy() map[string]string {
	cpy := make(map[string]string, len(ns.wallets))
	for address, name := range ns.wallets {
		cpy[address] = name
	}
	return cpy
}
