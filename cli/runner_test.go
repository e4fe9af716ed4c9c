package cli

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/richinex/minerva/llm"
	"github.com/richinex/minerva/research"
)

func TestCreateClientMock(t *testing.T) {
	client, settings, err := createClient(Options{Mock: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.LLM.Provider != "mock" {
		t.Errorf("expected mock provider, got %q", settings.LLM.Provider)
	}
	if client.Provider().Name() != "mock" {
		t.Errorf("expected mock provider instance, got %q", client.Provider().Name())
	}
}

func TestCreateClientFlagOverrides(t *testing.T) {
	_, settings, err := createClient(Options{
		Mock:        true,
		Model:       "custom-model",
		MaxSubtasks: 2,
		Sequential:  true,
		Citations:   true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.LLM.Model != "custom-model" {
		t.Errorf("expected model override, got %q", settings.LLM.Model)
	}
	if settings.Research.MaxSubtasks != 2 {
		t.Errorf("expected max subtasks override, got %d", settings.Research.MaxSubtasks)
	}
	if !settings.Research.Sequential || !settings.Research.Citations {
		t.Errorf("expected flag overrides applied: %+v", settings.Research)
	}
}

func TestCreateClientUnknownProvider(t *testing.T) {
	if _, _, err := createClient(Options{Provider: "nonsense"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestCreateClientMissingKey(t *testing.T) {
	original := os.Getenv("DEEPSEEK_API_KEY")
	os.Unsetenv("DEEPSEEK_API_KEY")
	defer os.Setenv("DEEPSEEK_API_KEY", original)

	if _, _, err := createClient(Options{Provider: "deepseek"}); err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestCreatePipelineWebRequiresKey(t *testing.T) {
	original := os.Getenv("BRAVE_API_KEY")
	os.Unsetenv("BRAVE_API_KEY")
	defer os.Setenv("BRAVE_API_KEY", original)

	client, settings, err := createClient(Options{Mock: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := createPipeline(client, settings, Options{Web: true}); err == nil {
		t.Error("expected error for --web without BRAVE_API_KEY")
	}
}

func TestInteractiveLoopExitKeywords(t *testing.T) {
	for _, keyword := range []string{"exit", "quit", "q", "EXIT"} {
		mock := llm.NewMockProvider("")
		_, settings, err := createClient(Options{Mock: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		pipeline := research.New(llm.NewClient(mock), settings.Research)

		err = interactiveLoop(context.Background(), pipeline, settings, strings.NewReader(keyword+"\n"))
		if err != nil {
			t.Errorf("expected clean termination on %q, got %v", keyword, err)
		}
		if mock.Calls() != 0 {
			t.Errorf("exit keyword %q should not trigger research, got %d calls", keyword, mock.Calls())
		}
	}
}

func TestInteractiveLoopProcessesQueriesUntilExit(t *testing.T) {
	mock := llm.NewMockProvider("")
	_, settings, err := createClient(Options{Mock: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pipeline := research.New(llm.NewClient(mock), settings.Research)

	input := "help\ninfo\nsolar panel recycling\nquit\nnever reached\n"
	if err := interactiveLoop(context.Background(), pipeline, settings, strings.NewReader(input)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// One decomposition, four research calls, one synthesis; nothing
	// after the exit keyword and nothing for help/info.
	if mock.Calls() != 6 {
		t.Errorf("expected 6 LLM calls for one query, got %d", mock.Calls())
	}
}

func TestInteractiveLoopTerminatesOnEOF(t *testing.T) {
	mock := llm.NewMockProvider("")
	_, settings, err := createClient(Options{Mock: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pipeline := research.New(llm.NewClient(mock), settings.Research)

	if err := interactiveLoop(context.Background(), pipeline, settings, strings.NewReader("")); err != nil {
		t.Errorf("expected clean termination on EOF, got %v", err)
	}
}

func TestCreatePipelineWithDatabase(t *testing.T) {
	client, settings, err := createClient(Options{Mock: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dbPath := t.TempDir() + "/runs.db"
	pipeline, cleanup, err := createPipeline(client, settings, Options{DBPath: dbPath})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer cleanup()

	report, err := pipeline.Run(context.Background(), "offline pipeline wiring")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Text == "" {
		t.Error("expected a report from the mock pipeline")
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("expected database file created: %v", err)
	}
}
