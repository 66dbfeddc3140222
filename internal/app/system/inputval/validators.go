package inputval

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// IsValidHTTPURL reports whether s is an absolute http(s) URL with a host.
func IsValidHTTPURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// IsValidDate reports whether s is a calendar date in YYYY-MM-DD.
func IsValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	return err == nil
}

// IsValidHHMM reports whether s is H:MM or HH:MM (any number of hours,
// minutes 00-59).
func IsValidHHMM(s string) bool {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || h == "" || len(m) != 2 {
		return false
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || strings.ContainsAny(h, "+-") {
		return false
	}
	mins, err := strconv.Atoi(m)
	if err != nil || mins < 0 || mins > 59 || strings.ContainsAny(m, "+-") {
		return false
	}
	return true
}
