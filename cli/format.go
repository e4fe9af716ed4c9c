// Output formatting for CLI commands.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/richinex/minerva/config"
	"github.com/richinex/minerva/internal/textparse"
	"github.com/richinex/minerva/llm"
	"github.com/richinex/minerva/research"
	"github.com/richinex/minerva/storage"
)

// subtaskPreviewLen caps subtask lines in report summaries.
const subtaskPreviewLen = 80

// timeDisplayUnit rounds run durations for display.
const timeDisplayUnit = time.Millisecond

func printSystemInfo(settings config.Settings) {
	fmt.Println("Research System")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("Provider: %s\n", settings.LLM.Provider)
	fmt.Printf("Model: %s\n", settings.LLM.Model)
	fmt.Printf("Max Subtasks: %d\n", settings.Research.MaxSubtasks)
	fmt.Println()
}

func printReport(report research.Report, showDetails bool) {
	fmt.Println("\nResearch Results:")
	fmt.Printf("Query: %s\n", report.Query)
	fmt.Printf("Subtasks completed: %d/%d\n", len(report.CompletedFindings()), len(report.Subtasks))
	fmt.Printf("Model used: %s\n", report.Model)

	if showDetails {
		fmt.Println("\nSubtasks Researched:")
		for i, subtask := range report.Subtasks {
			fmt.Printf("  %d. %s\n", i+1, textparse.Truncate(subtask, subtaskPreviewLen))
		}
	}

	fmt.Println("\nFinal Report:")
	fmt.Println(report.Text)

	if report.Citations != nil {
		status := "sequential"
		if !report.Citations.Sequential {
			status = "non-sequential"
		}
		fmt.Printf("\nCitations: %d markers (%s)\n", report.Citations.Total, status)
	}

	fmt.Printf("\nRun %s finished in %s (%d LLM calls, %d tokens)\n",
		report.ID, report.Duration.Round(timeDisplayUnit), report.Stats.LLMCalls, report.Stats.TotalTokens)
}

func printSessionSummary(queryCount int) {
	if queryCount > 0 {
		fmt.Printf("\nSession completed. Processed %d research queries.\n", queryCount)
	} else {
		fmt.Println("\nSession ended. No queries processed.")
	}
}

func printHelp() {
	fmt.Println("\nAvailable Commands:")
	fmt.Println("  help  - Show this help message")
	fmt.Println("  info  - Show system information")
	fmt.Println("  exit  - Exit the program (also: quit, q)")
	fmt.Println("\nSimply type your research question to start researching.")
}

func printRunSummaries(summaries []storage.RunSummary) {
	fmt.Printf("%-36s  %-19s  %-10s  %s\n", "ID", "CREATED", "PROVIDER", "QUERY")
	for _, s := range summaries {
		fmt.Printf("%-36s  %-19s  %-10s  %s\n",
			s.ID,
			s.CreatedAt.Format("2006-01-02 15:04:05"),
			s.Provider,
			textparse.Truncate(s.Query, 60))
	}
}

func printRunRecord(run storage.RunRecord) {
	fmt.Printf("Run: %s\n", run.ID)
	fmt.Printf("Created: %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Provider: %s (%s)\n", run.Provider, run.Model)
	fmt.Printf("Query: %s\n", run.Query)

	fmt.Println("\nSubtasks Researched:")
	for _, f := range run.Findings {
		fmt.Printf("  %d. [%s] %s\n", f.Index+1, f.Status, textparse.Truncate(f.Subtask, subtaskPreviewLen))
	}

	fmt.Println("\nFinal Report:")
	fmt.Println(run.Report)
}

func printProviders() {
	types := []llm.ProviderType{
		llm.ProviderOpenAI,
		llm.ProviderAnthropic,
		llm.ProviderDeepSeek,
		llm.ProviderGemini,
		llm.ProviderMock,
	}

	fmt.Printf("%-10s  %-28s  %s\n", "PROVIDER", "DEFAULT MODEL", "API KEY")
	for _, t := range types {
		keyVar := t.EnvVar()
		if keyVar == "" {
			keyVar = "(none required)"
		}
		fmt.Printf("%-10s  %-28s  %s\n", t.String(), t.DefaultModel(), keyVar)
	}
}
