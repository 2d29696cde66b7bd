package submission

import (
	"fmt"
	"net/url"
	"strings"
)

// ContentType is the media type of every submission body.
const ContentType = "application/x-www-form-urlencoded"

// Encode serialises entries as an urlencoded body, keeping order and repeated
// keys.
func Encode(entries []Entry) string {
	var b strings.Builder
	for idx, entry := range entries {
		if idx > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(entry.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(entry.Value))
	}
	return b.String()
}

// ParseEntries is the inverse of Encode. Unlike url.ParseQuery it keeps the
// order in which the pairs were posted.
func ParseEntries(body string) ([]Entry, error) {
	if strings.TrimSpace(body) == "" {
		return nil, nil
	}
	parts := strings.Split(body, "&")
	entries := make([]Entry, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		rawName, rawValue, _ := strings.Cut(part, "=")
		name, err := url.QueryUnescape(rawName)
		if err != nil {
			return nil, fmt.Errorf("submission: decode name %q: %w", rawName, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, fmt.Errorf("submission: decode value for %q: %w", name, err)
		}
		entries = append(entries, Entry{Name: name, Value: value})
	}
	return entries, nil
}
