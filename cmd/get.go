package cmd

import (
	"fmt"

	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get [file.yaml] [path]",
	Short: "Print the value at a dotted leaf path (e.g. hero.name, lines[0].text)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := abs(args[0])
		if err != nil {
			return err
		}
		values, err := application.Get(name, args[1])
		if err != nil {
			return err
		}
		if len(values) == 0 {
			return fmt.Errorf("%s: no value at %s", args[0], args[1])
		}
		out := cmd.OutOrStdout()
		for _, v := range values {
			if s, ok := v.(string); ok {
				fmt.Fprintln(out, s)
				continue
			}
			fmt.Fprintln(out, oj.JSON(v, &oj.Options{Sort: true}))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
