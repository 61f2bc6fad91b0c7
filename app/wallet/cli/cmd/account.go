package cmd

import (
	"fmt"

	"github.com/ardanlabs/minichain/foundation/blockchain/database"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Print the account for the private key",
	RunE:  accountRun,
}

func init() {
	rootCmd.AddCommand(accountCmd)
}

func accountRun(cmd *cobra.Command, args []string) error {
	account, err := loadAccount()
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), account)
	return nil
}

// loadAccount returns the account of the configured private key.
func loadAccount() (database.Account, error) {
	privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
	if err != nil {
		return "", err
	}

	return database.PublicKeyToAccount(privateKey.PublicKey), nil
}
