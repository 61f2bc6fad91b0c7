package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

type block struct {
	Index     uint64 `json:"index"`
	TimeStamp uint64 `json:"timestamp"`
	PrevHash  string `json:"prev_hash"`
	Nonce     uint64 `json:"nonce"`
	Hash      string `json:"hash"`
	Trans     []struct {
		ID    string  `json:"id"`
		From  string  `json:"from"`
		To    string  `json:"to"`
		Value float64 `json:"value"`
	} `json:"trans"`
}

var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Print the blocks held by the node",
	RunE:  blocksRun,
}

func init() {
	rootCmd.AddCommand(blocksCmd)
}

func blocksRun(cmd *cobra.Command, args []string) error {
	var blocks []block
	if err := get("/v1/blocks/list", &blocks); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, blk := range blocks {
		fmt.Fprintf(out, "blk[%d]: prev[%s] hash[%s] nonce[%d]\n", blk.Index, blk.PrevHash, blk.Hash, blk.Nonce)
		for _, tx := range blk.Trans {
			from := tx.From
			if from == "" {
				from = "reward"
			}
			fmt.Fprintf(out, "\t%s: %s -> %s: %v\n", tx.ID, from, tx.To, tx.Value)
		}
	}

	return nil
}
