package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"xrobots/lib/robotstag"
	"xrobots/lib/serviceutil"
)

func init() {
	rootCmd.AddCommand(directivesCmd)
}

var directivesCmd = &cobra.Command{
	Use:   "directives",
	Short: "Lists every directive this tool understands.",
	Run: func(cmd *cobra.Command, args []string) {
		t := newTable()
		t.AppendHeader(table.Row{"directive", "kind", "meaning"})
		for _, directive := range robotstag.Directives() {
			meaning, err := robotstag.Meaning(string(directive))
			if err != nil {
				serviceutil.Fatal("directive table inconsistent", err)
			}
			t.AppendRow(table.Row{string(directive), directive.Kind().String(), meaning})
		}
		t.Render()
	},
}
