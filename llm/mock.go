// Mock Provider - offline stand-in for real LLM providers.
//
// Fabricates plausible text for the three research prompts (decompose,
// research, synthesize) by inspecting the prompt content. No network
// access, no credentials, deterministic output. Used for offline runs
// and tests.

package llm

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/richinex/minerva/internal/textparse"
)

// MockProvider implements Provider without any external calls.
type MockProvider struct {
	model string
	calls atomic.Int64
}

// NewMockProvider creates a mock provider reporting the given model name.
func NewMockProvider(model string) *MockProvider {
	if model == "" {
		model = ModelMock
	}
	return &MockProvider{model: model}
}

// Name returns the provider name.
func (p *MockProvider) Name() string {
	return "mock"
}

// Model returns the current model.
func (p *MockProvider) Model() string {
	return p.model
}

// Calls returns how many completion requests have been served.
func (p *MockProvider) Calls() int64 {
	return p.calls.Load()
}

// Complete fabricates a response based on the prompt content.
func (p *MockProvider) Complete(ctx context.Context, messages []ChatMessage) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	p.calls.Add(1)

	prompt := lastUserContent(messages)
	content := p.respond(prompt)

	// Fabricated but stable usage numbers keep token accounting exercised.
	usage := &TokenUsage{
		PromptTokens:     uint32(len(prompt) / 4),
		CompletionTokens: uint32(len(content) / 4),
		TotalTokens:      uint32((len(prompt) + len(content)) / 4),
	}

	return Response{Content: content, Usage: usage}, nil
}

// StreamComplete fabricates a response and delivers it line by line.
func (p *MockProvider) StreamComplete(ctx context.Context, messages []ChatMessage, chunks chan<- string) (*TokenUsage, error) {
	response, err := p.Complete(ctx, messages)
	if err != nil {
		return nil, err
	}

	for _, line := range strings.SplitAfter(response.Content, "\n") {
		if line == "" {
			continue
		}
		select {
		case chunks <- line:
		case <-ctx.Done():
			return response.Usage, ctx.Err()
		}
	}

	return response.Usage, nil
}

func (p *MockProvider) respond(prompt string) string {
	switch {
	case strings.Contains(prompt, "Break down this research query"):
		return p.decompositionResponse(prompt)
	case strings.Contains(prompt, "Synthesize these research findings"):
		return p.synthesisResponse(prompt)
	case strings.Contains(prompt, "Research this specific topic"):
		return p.researchResponse(prompt)
	case strings.Contains(prompt, "citation markers"):
		return p.citationResponse(prompt)
	default:
		return "Mock response for: " + textparse.Truncate(prompt, 100)
	}
}

func (p *MockProvider) decompositionResponse(prompt string) string {
	query := extractAfter(prompt, "Query: ")
	return fmt.Sprintf(`1. Current state and key developments in %s
2. Main challenges and limitations related to %s
3. Practical implications and applications of %s
4. Future outlook and open questions around %s`, query, query, query, query)
}

func (p *MockProvider) researchResponse(prompt string) string {
	topic := extractAfter(prompt, "Research this specific topic comprehensively: ")
	return fmt.Sprintf(`Key Findings:
- The topic "%s" shows sustained activity across recent publications.
- Adoption patterns vary significantly by region and sector.

Supporting Evidence:
- Multiple industry reports document steady year-over-year growth.
- Case studies confirm the findings across different scales.

Important Considerations:
- Available data skews toward well-documented markets.

Analysis:
Taken together, the evidence on "%s" indicates a maturing area with
identifiable opportunities and known limitations.`, topic, topic)
}

func (p *MockProvider) synthesisResponse(prompt string) string {
	query := extractQuoted(prompt)
	return fmt.Sprintf(`# Research Report

## Executive Summary
This report addresses the query "%s". The research covered several
focused areas and the combined findings point to consistent themes
across all of them.

## Key Findings
- Each research area produced corroborating evidence on %s.
- No contradictions were found between the individual findings.

## Detailed Analysis
The individual research areas connect into a coherent picture: the
current state, the open challenges, and the practical implications
all reinforce one another.

## Conclusions
The investigation of "%s" is complete within the scope of the
decomposed subtasks. Further depth would require narrowing the query.`, query, query, query)
}

func (p *MockProvider) citationResponse(prompt string) string {
	// The content block spans multiple lines, so slice between the
	// prompt's section markers rather than reading a single line.
	body := prompt
	if idx := strings.Index(body, "Original Content:"); idx != -1 {
		body = body[idx+len("Original Content:"):]
	}
	if idx := strings.Index(body, "Citation Requirements:"); idx != -1 {
		body = body[:idx]
	}
	return strings.TrimSpace(body) + ` [1]

Bibliography:
[1] Mock Research Compendium, offline edition`
}

// lastUserContent returns the content of the last user message.
func lastUserContent(messages []ChatMessage) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return messages[i].Content
		}
	}
	return ""
}

// extractAfter returns the rest of the line following the first
// occurrence of marker, or a generic phrase if absent.
func extractAfter(prompt, marker string) string {
	idx := strings.Index(prompt, marker)
	if idx == -1 {
		return "the requested topic"
	}
	rest := prompt[idx+len(marker):]
	if nl := strings.IndexByte(rest, '\n'); nl != -1 {
		rest = rest[:nl]
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return "the requested topic"
	}
	return rest
}

// extractQuoted returns the first double-quoted span in the prompt.
func extractQuoted(prompt string) string {
	start := strings.IndexByte(prompt, '"')
	if start == -1 {
		return "the research query"
	}
	end := strings.IndexByte(prompt[start+1:], '"')
	if end == -1 {
		return "the research query"
	}
	return prompt[start+1 : start+1+end]
}

// Verify MockProvider implements Provider
var _ Provider = (*MockProvider)(nil)
