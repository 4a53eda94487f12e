package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/llm"
)

var (
	bareKeyPattern       = regexp.MustCompile(`([{,])\s*(\w+):`)
	trailingCommaPattern = regexp.MustCompile(`,\s*}`)
)

// stripFences trims whitespace and a surrounding ```json or ``` block
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "```json"):
		s = s[len("```json"):]
	case strings.HasPrefix(s, "```"):
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// repairJSON fixes the mistakes models commonly make: single quotes, unquoted keys
// and trailing commas before a closing brace.
func repairJSON(s string) string {
	s = strings.ReplaceAll(s, "'", `"`)
	s = bareKeyPattern.ReplaceAllString(s, `$1"$2":`)
	return trailingCommaPattern.ReplaceAllString(s, "}")
}

// parseObject decodes a JSON object
func parseObject(s string) (map[string]any, error) {
	var out map[string]any
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("%w: null", llm.ErrInvalidResponse)
	}
	return out, nil
}

// strictObject accepts only a fenced or a bare object and decodes it
func strictObject(content string) (map[string]any, error) {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") && !strings.HasPrefix(content, "{") {
		return nil, llm.ErrInvalidResponse
	}

	out, err := parseObject(stripFences(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", llm.ErrInvalidResponse, err)
	}
	return out, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
