package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the chain held by the node",
	RunE:  validateRun,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateRun(cmd *cobra.Command, args []string) error {
	var resp struct {
		Valid      bool `json:"valid"`
		Violations []struct {
			Position int    `json:"position"`
			Kind     string `json:"kind"`
			Detail   string `json:"detail"`
		} `json:"violations"`
	}
	if err := get("/v1/chain/validate", &resp); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "valid:", resp.Valid)
	for _, v := range resp.Violations {
		fmt.Fprintf(out, "blk[%d]: %s: %s\n", v.Position, v.Kind, v.Detail)
	}

	return nil
}
