package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Regenerate language_manifest.json in the localization root",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRoot(); err != nil {
			return err
		}
		if !application.RegenerateManifest() {
			return errors.New("manifest not written")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(manifestCmd)
}
