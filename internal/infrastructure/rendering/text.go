package rendering

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)
	highlightWord = regexp.MustCompile(`(?i)(\d+[%+]|\$[\d,]+|increased|decreased|improved|launched|created|developed)`)
)

// sectionTitle turns keys such as workHistory or side_projects into "Work History" and "Side Projects"
func sectionTitle(key string) string {
	title := camelBoundary.ReplaceAllString(key, "$1 $2")
	title = strings.ReplaceAll(title, "_", " ")
	return titleCase(title)
}

// titleCase upper-cases the first letter of every word and lower-cases the rest
func titleCase(s string) string {
	var sb strings.Builder
	prevLetter := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) && !prevLetter:
			sb.WriteRune(unicode.ToUpper(r))
		case unicode.IsLetter(r):
			sb.WriteRune(unicode.ToLower(r))
		default:
			sb.WriteRune(r)
		}
		prevLetter = unicode.IsLetter(r)
	}
	return sb.String()
}

// highlight marks metrics and achievement verbs in bold
func highlight(text string) []span {
	var spans []span
	last := 0
	for _, loc := range highlightWord.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			spans = append(spans, plain(text[last:loc[0]]))
		}
		spans = append(spans, bold(text[loc[0]:loc[1]]))
		last = loc[1]
	}
	if last < len(text) {
		spans = append(spans, plain(text[last:]))
	}
	return spans
}

// text renders a decoded JSON value for display
func text(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, text(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(val)
	}
}

// truthy reports whether a decoded JSON value is present and non-empty
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case float64:
		return val != 0
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		return true
	}
}

// items returns v as a list, treating a single value as a one element list
func items(v any) []any {
	switch val := v.(type) {
	case nil:
		return nil
	case []any:
		return val
	default:
		return []any{val}
	}
}

func cut(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
