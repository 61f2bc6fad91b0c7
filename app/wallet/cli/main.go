// This program provides a wallet for the node.
package main

import "github.com/ardanlabs/minichain/app/wallet/cli/cmd"

func main() {
	cmd.Execute()
}
