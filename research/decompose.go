package research

import (
	"context"
	"strings"

	"github.com/richinex/minerva/internal/textparse"
	"github.com/richinex/minerva/llm"
)

// Decompose splits a query into at most maxSubtasks research subtasks.
//
// Decomposition never fails: if the request errors or the response
// cannot be parsed, the query itself (or the whole response) becomes
// the single subtask and the run degrades to a simpler report.
func Decompose(ctx context.Context, client *llm.Client, query string, maxSubtasks int) ([]string, *llm.TokenUsage) {
	messages := []llm.ChatMessage{
		llm.SystemMessage(decomposeSystemPrompt),
		llm.UserMessage(buildDecomposePrompt(query, maxSubtasks)),
	}

	content, usage, err := client.CompleteWithUsage(ctx, messages)
	if err != nil {
		return []string{query}, usage
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return []string{query}, usage
	}

	subtasks := textparse.NumberedList(content)
	if len(subtasks) == 0 {
		// Not a list we recognize. Treat the response as one subtask
		// rather than discarding the model's work.
		return []string{content}, usage
	}

	if len(subtasks) > maxSubtasks {
		subtasks = subtasks[:maxSubtasks]
	}
	return subtasks, usage
}
