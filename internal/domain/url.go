package domain

import (
	"net/url"
	"strings"
)

// ExtractDomain pulls the hostname out of a raw URL, strips a leading "www."
// and lowercases it. The second return value is false when no hostname can be
// extracted.
func ExtractDomain(rawURL string) (string, bool) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", false
	}
	host := parsed.Hostname()
	if host == "" {
		return "", false
	}
	host = strings.ToLower(host)
	host = strings.TrimPrefix(host, "www.")
	if host == "" {
		return "", false
	}
	return host, true
}
