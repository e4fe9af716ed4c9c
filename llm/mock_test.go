package llm

import (
	"context"
	"strings"
	"testing"
)

func TestMockDecompositionResponse(t *testing.T) {
	provider := NewMockProvider("")

	resp, err := provider.Complete(context.Background(), []ChatMessage{
		UserMessage("Break down this research query into 3-4 specific subtasks:\n\nQuery: solar panel recycling\n\nRequirements: ..."),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(resp.Content, "solar panel recycling") {
		t.Errorf("expected query echoed in subtasks, got: %s", resp.Content)
	}
	if !strings.HasPrefix(strings.TrimSpace(resp.Content), "1.") {
		t.Errorf("expected numbered list, got: %s", resp.Content)
	}
}

func TestMockSynthesisEchoesQuery(t *testing.T) {
	provider := NewMockProvider("")

	resp, err := provider.Complete(context.Background(), []ChatMessage{
		UserMessage("Synthesize these research findings into a comprehensive report for the query:\n\"urban heat islands\"\n\nResearch Findings: ..."),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(resp.Content, "urban heat islands") {
		t.Errorf("expected query in report, got: %s", resp.Content)
	}
	if !strings.Contains(resp.Content, "Executive Summary") {
		t.Errorf("expected report structure, got: %s", resp.Content)
	}
}

func TestMockCitationPreservesContent(t *testing.T) {
	provider := NewMockProvider("")

	prompt := "Add citation markers to this research report.\n\n" +
		"Original Content:\n# Report\n\nFirst paragraph.\n\nSecond paragraph.\n\n" +
		"Citation Requirements:\n- Use sequential numbers starting at [1]"
	resp, err := provider.Complete(context.Background(), []ChatMessage{UserMessage(prompt)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"# Report", "First paragraph.", "Second paragraph.", "[1]"} {
		if !strings.Contains(resp.Content, want) {
			t.Errorf("expected %q in annotated content, got: %s", want, resp.Content)
		}
	}
	if strings.Contains(resp.Content, "Citation Requirements:") {
		t.Errorf("prompt instructions leaked into annotated content: %s", resp.Content)
	}
}

func TestMockCountsCalls(t *testing.T) {
	provider := NewMockProvider("")
	if provider.Calls() != 0 {
		t.Fatalf("expected zero calls initially, got %d", provider.Calls())
	}

	_, _ = provider.Complete(context.Background(), []ChatMessage{UserMessage("anything")})
	_, _ = provider.Complete(context.Background(), []ChatMessage{UserMessage("anything else")})

	if provider.Calls() != 2 {
		t.Errorf("expected 2 calls, got %d", provider.Calls())
	}
}

func TestMockUsageReported(t *testing.T) {
	provider := NewMockProvider("")
	resp, err := provider.Complete(context.Background(), []ChatMessage{
		UserMessage("Research this specific topic comprehensively: battery chemistry"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage == nil || resp.Usage.TotalTokens == 0 {
		t.Error("expected non-zero fabricated token usage")
	}
}

func TestMockStreamDeliversFullResponse(t *testing.T) {
	provider := NewMockProvider("")
	chunks := make(chan string, 64)

	usage, err := provider.StreamComplete(context.Background(), []ChatMessage{
		UserMessage("Research this specific topic comprehensively: tidal power"),
	}, chunks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	close(chunks)

	var full strings.Builder
	for chunk := range chunks {
		full.WriteString(chunk)
	}
	if !strings.Contains(full.String(), "tidal power") {
		t.Errorf("expected topic in streamed response, got: %s", full.String())
	}
	if usage == nil {
		t.Error("expected usage from stream")
	}
}

func TestMockCancelledContext(t *testing.T) {
	provider := NewMockProvider("")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := provider.Complete(ctx, []ChatMessage{UserMessage("anything")})
	if err == nil {
		t.Error("expected error for cancelled context")
	}
	if provider.Calls() != 0 {
		t.Errorf("cancelled request should not count as a call, got %d", provider.Calls())
	}
}
