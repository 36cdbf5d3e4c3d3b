package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"xrobots/lib/robotstag"
	"xrobots/lib/serviceutil"
)

func init() {
	rootCmd.AddCommand(explainCmd)
}

var explainCmd = &cobra.Command{
	Use:   "explain <directive>",
	Short: "Explains what a single directive means.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		meaning, err := robotstag.Meaning(args[0])
		if err != nil {
			serviceutil.Fatal("lookup failed", err)
		}
		directive, _ := robotstag.Lookup(args[0])
		fmt.Printf("%s (%s): %s\n", directive, directive.Kind(), meaning)
	},
}
