package llm

import (
	"os"
	"testing"
)

func TestParseProviderType(t *testing.T) {
	cases := map[string]ProviderType{
		"openai":    ProviderOpenAI,
		"gpt":       ProviderOpenAI,
		"anthropic": ProviderAnthropic,
		"claude":    ProviderAnthropic,
		"deepseek":  ProviderDeepSeek,
		"gemini":    ProviderGemini,
		"google":    ProviderGemini,
		"mock":      ProviderMock,
		"MOCK":      ProviderMock,
	}
	for input, want := range cases {
		got, err := ParseProviderType(input)
		if err != nil {
			t.Errorf("ParseProviderType(%q): unexpected error: %v", input, err)
			continue
		}
		if got != want {
			t.Errorf("ParseProviderType(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestParseProviderTypeUnknown(t *testing.T) {
	if _, err := ParseProviderType("cohere"); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestMockFromEnvNeedsNoKey(t *testing.T) {
	provider, err := ProviderMock.FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.Name() != "mock" {
		t.Errorf("expected mock provider, got %q", provider.Name())
	}
	if provider.Model() != ModelMock {
		t.Errorf("expected default mock model, got %q", provider.Model())
	}
}

func TestFromEnvMissingKey(t *testing.T) {
	original := os.Getenv("ANTHROPIC_API_KEY")
	os.Unsetenv("ANTHROPIC_API_KEY")
	defer os.Setenv("ANTHROPIC_API_KEY", original)

	if _, err := ProviderAnthropic.FromEnv(); err == nil {
		t.Error("expected error when API key env var is unset")
	}
}

func TestBuilderModelOverride(t *testing.T) {
	provider, err := ProviderMock.Model("mock-custom").FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.Model() != "mock-custom" {
		t.Errorf("expected model override, got %q", provider.Model())
	}
}

func TestDefaultModels(t *testing.T) {
	for _, p := range []ProviderType{ProviderOpenAI, ProviderAnthropic, ProviderDeepSeek, ProviderGemini, ProviderMock} {
		if p.DefaultModel() == "" {
			t.Errorf("provider %v has no default model", p)
		}
	}
}
