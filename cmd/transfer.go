package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [folder] [output.xlsx]",
	Short: "Export every YAML file of a language folder to an Excel workbook",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder, err := abs(args[0])
		if err != nil {
			return err
		}
		dest, err := abs(args[1])
		if err != nil {
			return err
		}
		if !application.ExportWorkbook(folder, dest) {
			return errors.New("export failed")
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import [input.xlsx] [folder]",
	Short: "Import an Excel workbook into a language folder",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := abs(args[0])
		if err != nil {
			return err
		}
		folder, err := abs(args[1])
		if err != nil {
			return err
		}
		if !application.ImportWorkbook(source, folder) {
			return errors.New("import failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
