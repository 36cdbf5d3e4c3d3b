// Package timeutil parses the date formats encountered in robots
// directives in the wild. Documentation and real pages disagree on the
// format: Google's examples use RFC 850 style dates, other sites emit RFC
// 1123, RFC 3339 or bare dates, so parsing tries a list of layouts in
// order.
package timeutil

import (
	"fmt"
	"time"

	"xrobots/lib/textutil"
)

var dateLayouts = []string{
	time.RFC1123,                       // Mon, 02 Jan 2006 15:04:05 MST
	time.RFC1123Z,                      // Mon, 02 Jan 2006 15:04:05 -0700
	"Monday, 02 Jan 2006 15:04:05 MST", // Friday, 25 Jun 2010 15:00:00 PST
	"Monday, 2 Jan 2006 15:04:05 MST",
	"Monday, 02 Jan 2006 15:04:05 -0700",
	time.RFC850, // Monday, 02-Jan-06 15:04:05 MST
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04:05 -0700",
	time.ANSIC,
	time.UnixDate,
	"02 Jan 2006 15:04:05 MST",
	"2 Jan 2006 15:04:05 MST",
	"02 Jan 2006 15:04:05 -0700",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// offsets for the obsolete zone abbreviations of RFC 2822 §4.3. time.Parse
// keeps the name but assumes offset zero for abbreviations it cannot
// resolve, which silently shifts a "PST" timestamp by 8 hours.
var zoneOffsets = map[string]int{
	"UT":  0,
	"GMT": 0,
	"EST": -5 * 3600,
	"EDT": -4 * 3600,
	"CST": -6 * 3600,
	"CDT": -5 * 3600,
	"MST": -7 * 3600,
	"MDT": -6 * 3600,
	"PST": -8 * 3600,
	"PDT": -7 * 3600,
}

// ParseDate parses a date value from a robots directive. Inner whitespace
// is collapsed first since header folding and meta tag authors introduce
// stray runs of it.
func ParseDate(value string) (time.Time, error) {
	value = textutil.CollapseSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date value")
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		return applyZoneOffset(t), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", value)
}

func applyZoneOffset(t time.Time) time.Time {
	name, offset := t.Zone()
	if offset != 0 || name == "" || name == "UTC" {
		return t
	}
	known, ok := zoneOffsets[name]
	if !ok || known == 0 {
		return t
	}
	return time.Date(
		t.Year(), t.Month(), t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(),
		time.FixedZone(name, known),
	)
}
