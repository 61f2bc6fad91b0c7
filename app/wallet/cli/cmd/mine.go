package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Mine the pending transactions with the reward going to the account",
	RunE:  mineRun,
}

func init() {
	rootCmd.AddCommand(mineCmd)
}

func mineRun(cmd *cobra.Command, args []string) error {
	account, err := loadAccount()
	if err != nil {
		return err
	}

	var blk block
	if err := post("/v1/mining/mine/"+string(account), nil, &blk); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "mined block %d: hash[%s] nonce[%d] trans[%d]\n", blk.Index, blk.Hash, blk.Nonce, len(blk.Trans))
	return nil
}
