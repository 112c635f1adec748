package embedding

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var jsonBlockPattern = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")

// ExtractJSONArray pulls a JSON string array out of LLM output. Models wrap
// the array in markdown fences or surround it with prose, so this first tries
// a fenced block, then scans for a balanced [...] segment.
func ExtractJSONArray(content string) ([]string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("empty model output")
	}

	if m := jsonBlockPattern.FindStringSubmatch(content); len(m) == 2 {
		if items, err := parseStringArray(strings.TrimSpace(m[1])); err == nil {
			return items, nil
		}
	}

	if segment := balancedArray(content); segment != "" {
		return parseStringArray(segment)
	}

	return nil, fmt.Errorf("no JSON array found in model output")
}

// balancedArray 返回文本中首个括号配对完整的[...]片段
func balancedArray(content string) string {
	start := strings.Index(content, "[")
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(content); i++ {
		ch := content[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return content[start : i+1]
			}
		}
	}
	return ""
}

func parseStringArray(segment string) ([]string, error) {
	var items []string
	if err := json.Unmarshal([]byte(segment), &items); err != nil {
		return nil, fmt.Errorf("parsing JSON array: %w", err)
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("JSON array contains no usable strings")
	}
	return out, nil
}
