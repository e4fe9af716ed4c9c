package research

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/richinex/minerva/llm"
)

// failingProvider errors on every call.
type failingProvider struct{}

func (p *failingProvider) Name() string  { return "failing" }
func (p *failingProvider) Model() string { return "failing-model" }

func (p *failingProvider) Complete(_ context.Context, _ []llm.ChatMessage) (llm.Response, error) {
	return llm.Response{}, errors.New("provider unavailable")
}

func (p *failingProvider) StreamComplete(_ context.Context, _ []llm.ChatMessage, _ chan<- string) (*llm.TokenUsage, error) {
	return nil, errors.New("provider unavailable")
}

// blankProvider answers every prompt with whitespace and no error.
type blankProvider struct{}

func (p *blankProvider) Name() string  { return "blank" }
func (p *blankProvider) Model() string { return "blank-model" }

func (p *blankProvider) Complete(_ context.Context, _ []llm.ChatMessage) (llm.Response, error) {
	return llm.Response{Content: "   \n\t\n"}, nil
}

func (p *blankProvider) StreamComplete(_ context.Context, _ []llm.ChatMessage, _ chan<- string) (*llm.TokenUsage, error) {
	return nil, errors.New("not streamable")
}

// proseProvider answers every prompt with unstructured prose.
type proseProvider struct{}

func (p *proseProvider) Name() string  { return "prose" }
func (p *proseProvider) Model() string { return "prose-model" }

func (p *proseProvider) Complete(_ context.Context, _ []llm.ChatMessage) (llm.Response, error) {
	return llm.Response{Content: "I would investigate the topic broadly without a fixed plan."}, nil
}

func (p *proseProvider) StreamComplete(_ context.Context, _ []llm.ChatMessage, _ chan<- string) (*llm.TokenUsage, error) {
	return nil, errors.New("not streamable")
}

func TestDecomposeProducesSubtasks(t *testing.T) {
	client := llm.NewClient(llm.NewMockProvider(""))
	subtasks, usage := Decompose(context.Background(), client, "quantum error correction", 4)

	if len(subtasks) == 0 || len(subtasks) > 4 {
		t.Fatalf("expected 1-4 subtasks, got %d", len(subtasks))
	}
	for i, s := range subtasks {
		if strings.TrimSpace(s) == "" {
			t.Errorf("subtask %d is empty", i)
		}
	}
	if !strings.Contains(subtasks[0], "quantum error correction") {
		t.Errorf("expected subtask to reference the query, got %q", subtasks[0])
	}
	if usage == nil || usage.TotalTokens == 0 {
		t.Error("expected token usage from decomposition")
	}
}

func TestDecomposeCapsSubtasks(t *testing.T) {
	// Mock always returns 4 items; a cap of 2 must trim them.
	client := llm.NewClient(llm.NewMockProvider(""))
	subtasks, _ := Decompose(context.Background(), client, "test query", 2)

	if len(subtasks) != 2 {
		t.Errorf("expected 2 subtasks after capping, got %d", len(subtasks))
	}
}

func TestDecomposeRequestErrorFallsBackToQuery(t *testing.T) {
	client := llm.NewClient(&failingProvider{})
	subtasks, _ := Decompose(context.Background(), client, "my research query", 4)

	if len(subtasks) != 1 {
		t.Fatalf("expected 1 fallback subtask, got %d", len(subtasks))
	}
	if subtasks[0] != "my research query" {
		t.Errorf("expected query as the fallback subtask, got %q", subtasks[0])
	}
}

func TestDecomposeUnparseableResponseBecomesSubtask(t *testing.T) {
	client := llm.NewClient(&proseProvider{})
	subtasks, _ := Decompose(context.Background(), client, "my query", 4)

	if len(subtasks) != 1 {
		t.Fatalf("expected 1 subtask from prose response, got %d", len(subtasks))
	}
	if !strings.Contains(subtasks[0], "investigate the topic") {
		t.Errorf("expected the whole response as subtask, got %q", subtasks[0])
	}
}

func TestDecomposeBlankResponseFallsBackToQuery(t *testing.T) {
	client := llm.NewClient(&blankProvider{})
	subtasks, _ := Decompose(context.Background(), client, "my query", 4)

	if len(subtasks) != 1 {
		t.Fatalf("expected 1 fallback subtask, got %d", len(subtasks))
	}
	if subtasks[0] != "my query" {
		t.Errorf("expected query as the fallback for a blank response, got %q", subtasks[0])
	}
}

func TestDecomposeTrimsUnparseableResponse(t *testing.T) {
	client := llm.NewClient(&proseProvider{})
	subtasks, _ := Decompose(context.Background(), client, "my query", 4)

	if len(subtasks) != 1 {
		t.Fatalf("expected 1 subtask, got %d", len(subtasks))
	}
	if subtasks[0] != strings.TrimSpace(subtasks[0]) {
		t.Errorf("expected trimmed subtask, got %q", subtasks[0])
	}
}

func TestResearchSubtaskFailureYieldsPlaceholder(t *testing.T) {
	client := llm.NewClient(&failingProvider{})
	finding, _ := ResearchSubtask(context.Background(), client, "some angle", 2, "")

	if finding.Status != FindingFailed {
		t.Errorf("expected failed status, got %q", finding.Status)
	}
	if finding.Index != 2 || finding.Subtask != "some angle" {
		t.Errorf("expected index and subtask preserved, got %+v", finding)
	}
	if finding.Content == "" {
		t.Error("expected a placeholder content for the failed finding")
	}
}

func TestResearchSubtaskSuccess(t *testing.T) {
	client := llm.NewClient(llm.NewMockProvider(""))
	finding, usage := ResearchSubtask(context.Background(), client, "grid storage costs", 0, "")

	if finding.Status != FindingCompleted {
		t.Fatalf("expected completed status, got %q", finding.Status)
	}
	if !strings.Contains(finding.Content, "grid storage costs") {
		t.Errorf("expected findings to reference the subtask, got %q", finding.Content)
	}
	if usage == nil {
		t.Error("expected token usage")
	}
}
