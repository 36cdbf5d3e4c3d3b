package commands

import (
	"github.com/spf13/cobra"

	"xrobots/lib/inspect"
	"xrobots/lib/restyutil"
	"xrobots/lib/serviceutil"
)

var checkAgent *string
var checkRaw *bool
var checkJson *bool
var checkNoMeta *bool
var checkBypass *bool
var checkDebugHttp *bool

func init() {
	checkAgent = checkCmd.Flags().String("agent", "", "The user agent to evaluate rules for (and to present to the server).")
	checkRaw = checkCmd.Flags().Bool("raw", false, "Show matched rules before umbrella directives are expanded.")
	checkJson = checkCmd.Flags().Bool("json", false, "Emit the full report as JSON.")
	checkNoMeta = checkCmd.Flags().Bool("no-meta", false, "Skip scanning the page body for robots meta tags.")
	checkBypass = checkCmd.Flags().Bool("bypass-bot-protection", false, "Spoof browser headers to get past cloudflare-style bot checks.")
	checkDebugHttp = checkCmd.Flags().Bool("debug-http", false, "Dump http transcripts to .dev/resty/inspect.")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check <url>",
	Short: "Fetches a page and reports the robots rules that apply to it.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, err := inspect.NewClient(inspect.ClientOptions{
			UserAgent:           *checkAgent,
			SkipMetaTags:        *checkNoMeta,
			BypassBotProtection: *checkBypass,
		})
		if err != nil {
			serviceutil.Fatal("failed to initialize http client", err)
		}
		if *checkDebugHttp {
			client.SetDebugOutput(restyutil.NewFilesystemOutput(".dev/resty/inspect"))
		}

		report, err := client.Inspect(cmd.Context(), args[0], *checkAgent)
		if err != nil {
			serviceutil.Fatal("inspect failed", err)
		}
		emitReport(report, *checkRaw, *checkJson)
	},
}
