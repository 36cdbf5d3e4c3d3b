package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"xrobots/lib/inspect"
	"xrobots/lib/robotstag"
	"xrobots/lib/serviceutil"
)

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

func emitReport(report *inspect.Report, raw, asJson bool) {
	if asJson {
		encoded, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			serviceutil.Fatal("failed to encode report", err)
		}
		fmt.Println(string(encoded))
		return
	}

	for _, warning := range report.Warnings {
		slog.Warn(warning)
	}

	if report.RequestedURL != "" {
		fmt.Printf("url: %s\n", report.RequestedURL)
	}
	if report.FinalURL != "" && report.FinalURL != report.RequestedURL {
		fmt.Printf("final url: %s\n", report.FinalURL)
	}
	if report.StatusCode != 0 {
		fmt.Printf("status: %d\n", report.StatusCode)
	}
	if report.Title != "" {
		fmt.Printf("title: %s\n", report.Title)
	}
	if report.MatchedScope != "" {
		fmt.Printf("matched scope: %s\n", report.MatchedScope)
	} else {
		fmt.Println("matched scope: (default)")
	}

	rules := report.Rules
	if raw {
		rules = report.RawRules
	}
	renderRules(rules)
}

func renderRules(rules robotstag.RuleSet) {
	if len(rules) == 0 {
		fmt.Println("no restrictions apply")
		return
	}

	t := newTable()
	t.AppendHeader(table.Row{"directive", "value", "meaning"})
	for _, directive := range robotstag.Directives() {
		rule, ok := rules[directive]
		if !ok {
			continue
		}
		meaning, err := robotstag.Meaning(string(directive))
		if err != nil {
			serviceutil.Fatal("directive table inconsistent", err)
		}
		t.AppendRow(table.Row{string(directive), formatRuleValue(rule), meaning})
	}
	t.Render()
}

func formatRuleValue(rule robotstag.Rule) string {
	if rule.Directive.Kind() == robotstag.KindDated {
		if !rule.Time.IsZero() {
			return rule.Time.Format(time.RFC3339)
		}
		if rule.Raw != "" {
			return rule.Raw + " (unparsed)"
		}
		return "(no date)"
	}
	return "true"
}
