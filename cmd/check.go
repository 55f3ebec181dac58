package cmd

import (
	"fmt"

	"github.com/agentic-research/locedit/internal/writeback"
	"github.com/go-git/go-billy/v5/util"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [file-or-folder]",
	Short: "Report YAML syntax errors and duplicate keys",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := abs(args[0])
		if err != nil {
			return err
		}
		fi, err := application.FS.Stat(target)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if !fi.IsDir() {
			data, err := util.ReadFile(application.FS, target)
			if err != nil {
				return err
			}
			errs := writeback.Errors(data, target)
			for _, e := range errs {
				fmt.Fprintln(out, e.Error())
			}
			if len(errs) > 0 {
				return fmt.Errorf("%d problem(s) in %s", len(errs), target)
			}
			return nil
		}

		checked, problems := application.CheckFolder(target)
		for _, fp := range problems {
			for _, e := range fp.Problems {
				e.FilePath = fp.File
				fmt.Fprintln(out, e.Error())
			}
		}
		if len(problems) > 0 {
			return fmt.Errorf("%d of %d file(s) have problems", len(problems), checked)
		}
		fmt.Fprintf(out, "%d file(s) checked\n", checked)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
