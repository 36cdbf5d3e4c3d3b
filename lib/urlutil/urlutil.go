// Package urlutil canonicalizes the target URLs handed to the inspection
// client. Users paste bare hostnames, internationalized domains and
// trailing-dot FQDNs; fetching and reporting both want one canonical form.
package urlutil

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

var lookupProfile = idna.New(idna.MapForLookup(), idna.Transitional(false))

// HostToASCII lowercases a hostname and converts internationalized labels
// to punycode. IP literals pass through unchanged.
func HostToASCII(host string) (string, error) {
	host = strings.TrimSpace(host)
	host = strings.TrimSuffix(host, ".")
	if host == "" {
		return "", fmt.Errorf("empty host")
	}
	if ip := net.ParseIP(strings.Trim(host, "[]")); ip != nil {
		return host, nil
	}

	ascii, err := lookupProfile.ToASCII(strings.ToLower(host))
	if err != nil {
		return "", fmt.Errorf("invalid host %q: %w", host, err)
	}
	return ascii, nil
}

// Normalize resolves a user-entered target into an absolute http(s) URL.
// A missing scheme defaults to https.
func Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty url")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	host, err := HostToASCII(u.Hostname())
	if err != nil {
		return "", err
	}
	if port := u.Port(); port != "" {
		u.Host = net.JoinHostPort(host, port)
	} else if strings.Contains(host, ":") {
		// unbracketed ipv6 literal
		u.Host = "[" + host + "]"
	} else {
		u.Host = host
	}

	return u.String(), nil
}
