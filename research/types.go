// Package research implements the query research pipeline:
// decompose a query into subtasks, research each subtask with one
// independent LLM call, and synthesize the findings into a report.
package research

import (
	"time"

	"github.com/richinex/minerva/llm"
)

// FindingStatus indicates whether a subtask's research call succeeded.
type FindingStatus string

const (
	// FindingCompleted means the research call returned findings.
	FindingCompleted FindingStatus = "completed"
	// FindingFailed means the research call failed; Content holds a placeholder.
	FindingFailed FindingStatus = "failed"
)

// Finding is the research result for exactly one subtask.
// Produced once, consumed once by synthesis.
type Finding struct {
	// Index is the subtask's position in the decomposition order.
	Index int `json:"index"`
	// Subtask is the research angle this finding answers.
	Subtask string `json:"subtask"`
	// Content is the raw model response, or an error placeholder on failure.
	Content string `json:"content"`
	// Status records success or failure of the research call.
	Status FindingStatus `json:"status"`
}

// Report is the terminal artifact of a research run.
type Report struct {
	// ID uniquely identifies this run.
	ID string `json:"id"`
	// Query is the original research question.
	Query string `json:"query"`
	// Subtasks is the ordered decomposition, immutable after creation.
	Subtasks []string `json:"subtasks"`
	// Findings holds one entry per subtask, in subtask order.
	Findings []Finding `json:"findings"`
	// Text is the synthesized report.
	Text string `json:"text"`
	// Citations is set when the citation pass ran.
	Citations *CitationCheck `json:"citations,omitempty"`
	// Provider and Model identify what produced the report.
	Provider string `json:"provider"`
	Model    string `json:"model"`
	// Stats aggregates token usage across all pipeline calls.
	Stats TokenStats `json:"stats"`
	// Duration is the wall-clock time of the run.
	Duration time.Duration `json:"duration"`
	// CreatedAt is when the run finished.
	CreatedAt time.Time `json:"created_at"`
}

// CompletedFindings returns the findings whose research call succeeded.
func (r Report) CompletedFindings() []Finding {
	return completedOnly(r.Findings)
}

// TokenStats tracks token usage across a research run.
type TokenStats struct {
	PromptTokens     uint32 `json:"prompt_tokens"`
	CompletionTokens uint32 `json:"completion_tokens"`
	TotalTokens      uint32 `json:"total_tokens"`
	LLMCalls         int    `json:"llm_calls"`
}

// AddUsage adds token usage from an LLM call.
func (ts *TokenStats) AddUsage(usage *llm.TokenUsage) {
	ts.LLMCalls++
	if usage == nil {
		return
	}
	ts.PromptTokens += usage.PromptTokens
	ts.CompletionTokens += usage.CompletionTokens
	ts.TotalTokens += usage.TotalTokens
}
