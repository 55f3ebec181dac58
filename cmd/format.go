package cmd

import (
	"github.com/go-git/go-billy/v5/util"
	"github.com/spf13/cobra"
)

var formatCmd = &cobra.Command{
	Use:   "format [file.yaml]...",
	Short: "Validate and re-indent YAML files in place",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, arg := range args {
			name, err := abs(arg)
			if err != nil {
				return err
			}
			data, err := util.ReadFile(application.FS, name)
			if err != nil {
				return err
			}
			if err := application.SaveDocument(name, string(data)); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(formatCmd)
}
