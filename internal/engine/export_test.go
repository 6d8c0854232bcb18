package engine

import "net/url"

// RedactURL exposes redactURL to the external test package.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return redactURL(u)
}
