package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	to    string
	value float64
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Submit a transaction to the pending pool",
	RunE:  sendRun,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&to, "to", "t", "", "Account or name to send to.")
	sendCmd.Flags().Float64VarP(&value, "value", "v", 0, "Value to send.")
	sendCmd.MarkFlagRequired("to")
}

func sendRun(cmd *cobra.Command, args []string) error {
	from, err := loadAccount()
	if err != nil {
		return err
	}

	tx := struct {
		From  string  `json:"from"`
		To    string  `json:"to"`
		Value float64 `json:"value"`
	}{
		From:  string(from),
		To:    to,
		Value: value,
	}

	var resp struct {
		Status string `json:"status"`
		ID     string `json:"id"`
	}
	if err := post("/v1/tx/submit", tx, &resp); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), resp.Status, resp.ID)
	return nil
}
