package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List language folders under the localization root",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRoot(); err != nil {
			return err
		}
		valid := application.Aggregate()
		out := cmd.OutOrStdout()
		for _, lang := range application.Languages() {
			status := "invalid"
			if _, ok := valid[lang.Code]; ok {
				status = "ok"
			}
			line := fmt.Sprintf("%s\t%s\t%s", lang.Code, status, lang.Path)
			if lang.FlagPath != "" {
				line += "\tflag"
			}
			fmt.Fprintln(out, line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
