// Package toolutil provides shared helpers for the REST, MCP and CLI surfaces.
package toolutil

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	videoIDRE    = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
	videoPathRE  = regexp.MustCompile(`^/(?:shorts|embed|live|v)/([a-zA-Z0-9_-]{11})`)
	shortHostsRE = regexp.MustCompile(`^(?:www\.)?youtu\.be$`)
)

// NormVideoID extracts the 11-char video id from a YouTube URL.
// Bare ids and unrecognized input are returned trimmed and unchanged.
func NormVideoID(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || videoIDRE.MatchString(s) {
		return s
	}

	raw := s
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return s
	}
	host := strings.ToLower(u.Host)

	if shortHostsRE.MatchString(host) {
		if id := strings.Trim(u.Path, "/"); videoIDRE.MatchString(id) {
			return id
		}
		return s
	}
	if !strings.HasSuffix(host, "youtube.com") && !strings.HasSuffix(host, "youtube-nocookie.com") {
		return s
	}
	if v := u.Query().Get("v"); videoIDRE.MatchString(v) {
		return v
	}
	if m := videoPathRE.FindStringSubmatch(u.Path); len(m) == 2 {
		return m[1]
	}
	return s
}
