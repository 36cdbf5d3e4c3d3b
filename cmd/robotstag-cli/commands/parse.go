package commands

import (
	"bufio"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"xrobots/lib/inspect"
	"xrobots/lib/serviceutil"
)

var parseHeaders *[]string
var parseUrl *string
var parseAgent *string
var parseRaw *bool
var parseJson *bool

func init() {
	parseHeaders = parseCmd.Flags().StringArray("header", nil, "A header line to parse, may be repeated. Reads stdin when absent.")
	parseUrl = parseCmd.Flags().String("url", "", "The url the headers came from, recorded in the report.")
	parseAgent = parseCmd.Flags().String("agent", "", "The user agent to evaluate rules for.")
	parseRaw = parseCmd.Flags().Bool("raw", false, "Show matched rules before umbrella directives are expanded.")
	parseJson = parseCmd.Flags().Bool("json", false, "Emit the full report as JSON.")
	rootCmd.AddCommand(parseCmd)
}

// bare values like "noindex, nofollow" are accepted and wrapped in a
// header name so they tokenize the same as a real response header
func asHeaderLine(line string) string {
	name, _, found := strings.Cut(line, ":")
	if found && strings.EqualFold(strings.TrimSpace(name), "X-Robots-Tag") {
		return line
	}
	return "X-Robots-Tag: " + line
}

func readStdinHeaders() []string {
	var out []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		serviceutil.Fatal("failed to read stdin", err)
	}
	return out
}

var parseCmd = &cobra.Command{
	Use:   "parse [--header <line>]...",
	Short: "Resolves robots rules from header lines without fetching anything.",
	Run: func(cmd *cobra.Command, args []string) {
		lines := *parseHeaders
		if len(lines) == 0 {
			lines = readStdinHeaders()
		}
		headers := make([]string, len(lines))
		for i, line := range lines {
			headers[i] = asHeaderLine(line)
		}

		report := inspect.ParseHeaders(cmd.Context(), inspect.ParseRequest{
			URL:       *parseUrl,
			Headers:   headers,
			UserAgent: *parseAgent,
		})
		emitReport(report, *parseRaw, *parseJson)
	},
}
