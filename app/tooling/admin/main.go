// This program performs administrative tasks against a running node.
package main

import (
	"github.com/rustchain/blockchain/app/tooling/admin/cmd"
)

func main() {
	cmd.Execute()
}
