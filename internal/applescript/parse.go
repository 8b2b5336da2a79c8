package applescript

import (
	"strings"
	"time"
)

// ParseList splits AppleScript list output into items. Lists come back as
// comma-separated text where individual items may be double-quoted and may
// themselves contain commas inside the quotes. Empty items are dropped.
func ParseList(output string) []string {
	if output == "" {
		return nil
	}

	var items []string
	var current strings.Builder
	inQuotes := false

	flush := func() {
		item := strings.Trim(strings.TrimSpace(current.String()), `"`)
		if item != "" {
			items = append(items, item)
		}
		current.Reset()
	}

	for _, ch := range output {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			flush()
			continue
		}
		current.WriteRune(ch)
	}
	flush()

	return items
}

// ParseRecord parses AppleScript record output of the form
// {key:value, key:value} into a map. Nested braces and brackets are kept
// verbatim inside their value.
func ParseRecord(output string) map[string]string {
	result := make(map[string]string)
	if output == "" || !strings.HasPrefix(output, "{") {
		return result
	}

	content := strings.TrimPrefix(output, "{")
	content = strings.TrimSuffix(content, "}")

	var parts []string
	var current strings.Builder
	depth := 0

	for _, ch := range content {
		switch {
		case ch == '{' || ch == '[':
			depth++
		case ch == '}' || ch == ']':
			depth--
		case ch == ',' && depth == 0:
			parts = append(parts, strings.TrimSpace(current.String()))
			current.Reset()
			continue
		}
		current.WriteRune(ch)
	}
	if current.Len() > 0 {
		parts = append(parts, strings.TrimSpace(current.String()))
	}

	for _, part := range parts {
		key, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		key = strings.Trim(strings.TrimSpace(key), `"`)
		value = strings.Trim(strings.TrimSpace(value), `"`)
		result[key] = value
	}

	return result
}

// dateLayouts covers the date text osascript produces for common locale
// settings, most specific first.
var dateLayouts = []string{
	"Monday, January 2, 2006 at 3:04:05 PM",
	"Monday, January 2, 2006 at 15:04:05",
	"Monday, 2 January 2006 at 15:04:05",
	"Monday, 2 January 2006 at 3:04:05 PM",
	"January 2, 2006 at 3:04:05 PM",
	"2 January 2006 at 15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ParseTimestamp converts AppleScript date text to unix seconds. Output that
// cannot be parsed yields 0, never an error: freshness checks treat an
// unknown modification time as "never modified".
func ParseTimestamp(output string) float64 {
	s := strings.TrimSpace(output)
	s = strings.TrimPrefix(s, "date ")
	s = strings.Trim(s, `"`)
	if s == "" {
		return 0
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return float64(t.Unix())
		}
	}
	return 0
}
