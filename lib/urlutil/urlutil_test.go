package urlutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	for _, tc := range []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "bare hostname",
			input:  "example.com",
			expect: "https://example.com",
		},
		{
			name:   "uppercase host",
			input:  "http://EXAMPLE.COM/Path?q=1",
			expect: "http://example.com/Path?q=1",
		},
		{
			name:   "trailing dot",
			input:  "https://example.com./page",
			expect: "https://example.com/page",
		},
		{
			name:   "idn host",
			input:  "https://bücher.example/katalog",
			expect: "https://xn--bcher-kva.example/katalog",
		},
		{
			name:   "host with port",
			input:  "example.com:8080/robots",
			expect: "https://example.com:8080/robots",
		},
		{
			name:   "whitespace",
			input:  "  example.com/a  ",
			expect: "https://example.com/a",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Normalize(tc.input)
			require.NoError(t, err)
			require.Equal(t, tc.expect, got)
		})
	}
}

func TestNormalizeRejects(t *testing.T) {
	for _, input := range []string{
		"",
		"   ",
		"ftp://example.com/file",
		"https://",
	} {
		_, err := Normalize(input)
		require.Error(t, err, "input: %q", input)
	}
}

func TestHostToASCII(t *testing.T) {
	got, err := HostToASCII("Bücher.Example.")
	require.NoError(t, err)
	require.Equal(t, "xn--bcher-kva.example", got)

	got, err = HostToASCII("192.0.2.10")
	require.NoError(t, err)
	require.Equal(t, "192.0.2.10", got)
}
