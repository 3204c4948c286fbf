// Package validate checks operator-supplied playlist and proxy settings.
// Each check returns "" when valid, else a message naming the field.
package validate

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	MaxWallpaperNameLength = 200
	MaxMediaURLLength      = 2048
	MaxAllowedHostLength   = 253
)

func checkLen(value string, max int, field string) string {
	if len(value) > max {
		return fmt.Sprintf("%s must be %d characters or fewer", field, max)
	}
	return ""
}

func WallpaperName(s string) string {
	return checkLen(s, MaxWallpaperNameLength, "wallpaper name")
}

// MediaURL accepts absolute http(s) URLs and scheme-less object keys.
func MediaURL(s string) string {
	if s == "" {
		return "media URL is required"
	}
	if msg := checkLen(s, MaxMediaURLLength, "media URL"); msg != "" {
		return msg
	}
	u, err := url.Parse(s)
	if err != nil {
		return "media URL is not a valid URL"
	}
	if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Sprintf("media URL scheme %q is not supported", u.Scheme)
	}
	if u.Scheme != "" && u.Host == "" {
		return "media URL must include a host"
	}
	return ""
}

// AllowedHost accepts a bare hostname or a "*.example.com" wildcard.
func AllowedHost(s string) string {
	if msg := checkLen(s, MaxAllowedHostLength, "allowed host"); msg != "" {
		return msg
	}
	if s == "" || strings.ContainsAny(s, "/: ") {
		return fmt.Sprintf("allowed host %q must be a bare hostname", s)
	}
	if strings.Contains(strings.TrimPrefix(s, "*."), "*") {
		return fmt.Sprintf("allowed host %q may only use a leading wildcard", s)
	}
	return ""
}

// FieldLimits returns field names mapped to their max lengths.
func FieldLimits() map[string]int {
	return map[string]int{
		"wallpaperName": MaxWallpaperNameLength,
		"mediaUrl":      MaxMediaURLLength,
		"allowedHost":   MaxAllowedHostLength,
	}
}
