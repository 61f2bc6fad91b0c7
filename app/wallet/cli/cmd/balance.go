package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print the balance for the account",
	RunE:  balanceRun,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func balanceRun(cmd *cobra.Command, args []string) error {
	account, err := loadAccount()
	if err != nil {
		return err
	}

	var resp struct {
		Accounts []struct {
			Balance float64 `json:"balance"`
		} `json:"accounts"`
	}
	if err := get("/v1/balances/list/"+string(account), &resp); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "For Account:", account)
	if len(resp.Accounts) > 0 {
		fmt.Fprintln(out, resp.Accounts[0].Balance)
	}

	return nil
}
