// Package textparse provides parsing utilities for free-form LLM responses.
//
// LLMs asked for a numbered list often return it wrapped in markdown
// code fences or mixed with commentary. This package extracts the list
// items without requiring the model to produce structured output.
package textparse

import (
	"strings"
)

// NumberedList extracts ordered items from an LLM response.
// It recognizes common list shapes:
//
//	1. item      1) item      - item      * item
//
// Lines that match none of these are ignored. Returns nil when no
// items are found so callers can apply their own fallback.
func NumberedList(response string) []string {
	response = stripCodeFences(response)

	var items []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		item, ok := parseListItem(line)
		if ok && item != "" {
			items = append(items, item)
		}
	}
	return items
}

// parseListItem strips a leading list marker from a single line.
// Returns false when the line does not start with a marker.
func parseListItem(line string) (string, bool) {
	// Bullet markers
	if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
		return strings.TrimSpace(line[2:]), true
	}

	// Numbered markers: digits followed by '.' or ')'
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(line) {
		return "", false
	}
	if line[i] != '.' && line[i] != ')' {
		return "", false
	}

	item := strings.TrimSpace(line[i+1:])
	// Models sometimes echo the placeholder brackets from the prompt.
	item = strings.TrimPrefix(item, "[")
	item = strings.TrimSuffix(item, "]")
	return strings.TrimSpace(item), true
}

// stripCodeFences removes markdown code block markers from a response.
// Handles ```text\n...\n``` and bare ``` fences.
func stripCodeFences(response string) string {
	trimmed := strings.TrimSpace(response)

	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```")
		// Drop an optional language tag on the fence line.
		if idx := strings.Index(trimmed, "\n"); idx != -1 && !strings.ContainsAny(trimmed[:idx], " \t") {
			trimmed = trimmed[idx+1:]
		}
		trimmed = strings.TrimSpace(trimmed)
	}

	if strings.HasSuffix(trimmed, "```") {
		trimmed = strings.TrimSuffix(trimmed, "```")
		trimmed = strings.TrimSpace(trimmed)
	}

	return trimmed
}

// Truncate shortens s to at most n runes, appending "..." when cut.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
