package research

import (
	"context"
	"regexp"
	"strconv"

	"github.com/richinex/minerva/llm"
)

// CitationCheck summarizes the citation markers found in a report.
type CitationCheck struct {
	// Total is the number of citation markers in the text.
	Total int `json:"total"`
	// Markers lists the marker numbers in order of first appearance.
	Markers []int `json:"markers,omitempty"`
	// Sequential is true when the distinct markers count 1..N with no gaps.
	Sequential bool `json:"sequential"`
}

var citationMarker = regexp.MustCompile(`\[(\d+)\]`)

// Annotate rewrites a report with numbered citation markers and a
// bibliography, returning the annotated text and its citation check.
func Annotate(ctx context.Context, client *llm.Client, report string) (string, *CitationCheck, *llm.TokenUsage, error) {
	messages := []llm.ChatMessage{
		llm.SystemMessage(citationSystemPrompt),
		llm.UserMessage(buildCitationPrompt(report)),
	}

	content, usage, err := client.CompleteWithUsage(ctx, messages)
	if err != nil {
		return "", nil, usage, err
	}

	check := ValidateCitations(content)
	return content, &check, usage, nil
}

// ValidateCitations scans text for [n] markers and checks that the
// distinct marker numbers form the unbroken sequence 1..N.
func ValidateCitations(text string) CitationCheck {
	matches := citationMarker.FindAllStringSubmatch(text, -1)

	check := CitationCheck{Total: len(matches)}
	seen := make(map[int]bool)
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if !seen[n] {
			seen[n] = true
			check.Markers = append(check.Markers, n)
		}
	}

	check.Sequential = len(seen) > 0
	for i := 1; i <= len(seen); i++ {
		if !seen[i] {
			check.Sequential = false
			break
		}
	}
	return check
}
