package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	for _, tc := range []struct {
		name   string
		input  string
		expect time.Time
	}{
		{
			name:   "rfc1123",
			input:  "Fri, 25 Jun 2010 15:00:00 GMT",
			expect: time.Date(2010, 6, 25, 15, 0, 0, 0, time.UTC),
		},
		{
			name:   "rfc1123z",
			input:  "Fri, 25 Jun 2010 15:00:00 -0700",
			expect: time.Date(2010, 6, 25, 22, 0, 0, 0, time.UTC),
		},
		{
			name:   "full weekday with zone abbreviation",
			input:  "Friday, 25 Jun 2010 15:00:00 PST",
			expect: time.Date(2010, 6, 25, 23, 0, 0, 0, time.UTC),
		},
		{
			name:   "rfc850",
			input:  "Friday, 25-Jun-10 15:00:00 GMT",
			expect: time.Date(2010, 6, 25, 15, 0, 0, 0, time.UTC),
		},
		{
			name:   "rfc3339",
			input:  "2010-06-25T15:00:00Z",
			expect: time.Date(2010, 6, 25, 15, 0, 0, 0, time.UTC),
		},
		{
			name:   "bare date",
			input:  "2010-06-25",
			expect: time.Date(2010, 6, 25, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "no weekday",
			input:  "25 Jun 2010 15:00:00 GMT",
			expect: time.Date(2010, 6, 25, 15, 0, 0, 0, time.UTC),
		},
		{
			name:   "folded whitespace",
			input:  "Fri,  25 Jun 2010   15:00:00 GMT",
			expect: time.Date(2010, 6, 25, 15, 0, 0, 0, time.UTC),
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDate(tc.input)
			require.NoError(t, err)
			require.True(
				t, got.Equal(tc.expect),
				"got %s, expected %s", got.UTC(), tc.expect,
			)
		})
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "   ", "tomorrow", "25th of June", "1277478000"} {
		_, err := ParseDate(input)
		require.Error(t, err, "input: %q", input)
	}
}

func TestZoneAbbreviationOffsets(t *testing.T) {
	// EDT is four hours behind UTC, so 12:00 EDT is 16:00 UTC.
	got, err := ParseDate("Fri, 25 Jun 2010 12:00:00 EDT")
	require.NoError(t, err)
	require.Equal(t, time.Date(2010, 6, 25, 16, 0, 0, 0, time.UTC), got.UTC())
}
