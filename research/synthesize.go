package research

import (
	"context"
	"fmt"

	"github.com/richinex/minerva/llm"
)

// Synthesize merges the completed findings into one report.
//
// Failed findings are excluded from the synthesis prompt. The call
// errors only when every finding failed, since there is nothing to
// synthesize from.
func Synthesize(ctx context.Context, client *llm.Client, query string, findings []Finding) (string, *llm.TokenUsage, error) {
	completed := completedOnly(findings)
	if len(completed) == 0 {
		return "", nil, fmt.Errorf("all %d research subtasks failed, nothing to synthesize", len(findings))
	}

	messages := synthesisMessages(query, completed)
	content, usage, err := client.CompleteWithUsage(ctx, messages)
	if err != nil {
		return "", usage, fmt.Errorf("synthesis failed: %w", err)
	}
	return content, usage, nil
}

// synthesisMessages builds the chat messages for a synthesis call.
func synthesisMessages(query string, completed []Finding) []llm.ChatMessage {
	return []llm.ChatMessage{
		llm.SystemMessage(synthesisSystemPrompt),
		llm.UserMessage(buildSynthesisPrompt(query, completed)),
	}
}

func completedOnly(findings []Finding) []Finding {
	out := make([]Finding, 0, len(findings))
	for _, f := range findings {
		if f.Status == FindingCompleted {
			out = append(out, f)
		}
	}
	return out
}
