package util

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

var tagPattern = regexp.MustCompile(`<[^>]*?>`)

// SanitizeText 去除首尾空白与 HTML 标签，转义后按字符数截断
func SanitizeText(value string, maxLen int) string {
	s := strings.TrimSpace(value)
	s = tagPattern.ReplaceAllString(s, "")
	s = html.EscapeString(s)
	if maxLen > 0 && utf8.RuneCountInString(s) > maxLen {
		s = string([]rune(s)[:maxLen])
	}
	return s
}

// IsHTTPURL 仅接受 http/https 链接
func IsHTTPURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	return strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://")
}
