package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [folder]",
	Short: "Check that a language folder holds the required root files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder, err := abs(args[0])
		if err != nil {
			return err
		}
		if vr := application.ValidateFolder(folder); !vr.Valid {
			return fmt.Errorf("%s: %s", folder, vr.Message())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
