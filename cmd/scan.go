package cmd

import (
	"fmt"
	"path"
	"strings"

	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan [folder]",
	Short: "Scan a language folder and print its YAML structure",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder, err := abs(args[0])
		if err != nil {
			return err
		}
		res, vr := application.OpenFolder(folder)

		out := cmd.OutOrStdout()
		root := res.Structure.RootPath
		for _, dir := range res.Structure.Dirs() {
			rel := strings.TrimPrefix(strings.TrimPrefix(dir, root), "/")
			if rel == "" {
				rel = "."
			}
			fmt.Fprintf(out, "%s/\n", rel)
			for _, f := range res.Structure.Entries[dir] {
				fmt.Fprintf(out, "  %s\n", path.Join(rel, f))
			}
		}
		for _, s := range res.Skipped {
			fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s\n", s)
		}
		if !vr.Valid {
			return fmt.Errorf("%s: %s", folder, vr.Message())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
