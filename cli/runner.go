// Command execution for CLI commands.
//
// Information Hiding:
// - Provider and pipeline setup hidden
// - Output formatting hidden
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/richinex/minerva/config"
	"github.com/richinex/minerva/llm"
	"github.com/richinex/minerva/research"
	"github.com/richinex/minerva/search"
	"github.com/richinex/minerva/storage"
)

// defaultProvider is used when no provider flag is given.
const defaultProvider = "anthropic"

// webSearchTimeoutSecs bounds each Brave search request.
const webSearchTimeoutSecs = 10

// demoQueries are the preset queries for the demo command.
var demoQueries = []string{
	"What are the benefits of renewable energy adoption?",
	"How does artificial intelligence impact modern education?",
	"What are the key challenges in sustainable urban development?",
}

// Options holds CLI execution options.
type Options struct {
	Provider    string
	Model       string
	Mock        bool
	MaxSubtasks int
	Sequential  bool
	Citations   bool
	Web         bool
	DBPath      string
	Verbose     bool
}

// DefaultOptions returns default CLI options.
func DefaultOptions() Options {
	return Options{
		Provider: defaultProvider,
	}
}

// createClient resolves settings and builds the LLM client.
// Credential problems surface here, before any request is made.
func createClient(opts Options) (*llm.Client, config.Settings, error) {
	name := opts.Provider
	if opts.Mock {
		name = "mock"
	}
	if name == "" {
		name = defaultProvider
	}

	settings, err := config.New(name)
	if err != nil {
		return nil, config.Settings{}, err
	}

	// Flag overrides win over environment values.
	if opts.Model != "" {
		settings.LLM.Model = opts.Model
	}
	if opts.MaxSubtasks > 0 {
		settings.Research.MaxSubtasks = opts.MaxSubtasks
	}
	if opts.Sequential {
		settings.Research.Sequential = true
	}
	if opts.Citations {
		settings.Research.Citations = true
	}

	providerType, err := llm.ParseProviderType(settings.LLM.Provider)
	if err != nil {
		return nil, settings, err
	}

	provider, err := llm.NewProviderBuilder(providerType).
		Model(settings.LLM.Model).
		MaxTokens(settings.LLM.MaxTokens).
		Temperature(float32(settings.LLM.Temperature)).
		FromEnv()
	if err != nil {
		return nil, settings, err
	}

	return llm.NewClient(provider), settings, nil
}

// createPipeline assembles the research pipeline with optional web
// search and persistence. The returned cleanup closes the store.
func createPipeline(client *llm.Client, settings config.Settings, opts Options) (*research.Pipeline, func(), error) {
	pipeline := research.New(client, settings.Research).Verbose(opts.Verbose)
	cleanup := func() {}

	if opts.Web {
		key := config.BraveSearchKey()
		if key == "" {
			return nil, nil, fmt.Errorf("BRAVE_API_KEY environment variable not set (required for --web)")
		}
		pipeline = pipeline.WithSearch(search.NewClient(key, webSearchTimeoutSecs))
	}

	if opts.DBPath != "" {
		store, err := storage.OpenSqlite(opts.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		pipeline = pipeline.WithStore(store)
		cleanup = func() { _ = store.Close() }
	}

	return pipeline, cleanup, nil
}

// Research runs a single research query and prints the report.
func Research(ctx context.Context, query string, opts Options) error {
	client, settings, err := createClient(opts)
	if err != nil {
		return err
	}

	pipeline, cleanup, err := createPipeline(client, settings, opts)
	if err != nil {
		return err
	}
	defer cleanup()

	printSystemInfo(settings)
	fmt.Println("Researching...")

	report, err := pipeline.Run(ctx, query)
	if err != nil {
		return err
	}

	printReport(report, true)
	return nil
}

// Interactive runs a read-research-print loop until the user quits.
func Interactive(ctx context.Context, opts Options) error {
	client, settings, err := createClient(opts)
	if err != nil {
		return err
	}

	pipeline, cleanup, err := createPipeline(client, settings, opts)
	if err != nil {
		return err
	}
	defer cleanup()

	return interactiveLoop(ctx, pipeline, settings, os.Stdin)
}

// interactiveLoop reads queries from in until an exit keyword or EOF.
// Split from Interactive so the loop can be driven by any reader.
func interactiveLoop(ctx context.Context, pipeline *research.Pipeline, settings config.Settings, in io.Reader) error {
	printSystemInfo(settings)
	fmt.Println("Enter research queries. Type 'exit', 'quit', or 'q' to stop, 'help' for commands.")

	queryCount := 0
	scanner := bufio.NewScanner(in)
	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "exit", "quit", "q":
			printSessionSummary(queryCount)
			return scanner.Err()
		case "help":
			printHelp()
			continue
		case "info":
			printSystemInfo(settings)
			continue
		}

		fmt.Println("Researching...")
		report, err := pipeline.Run(ctx, input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		printReport(report, false)
		queryCount++
	}

	printSessionSummary(queryCount)
	return scanner.Err()
}

// Demo runs the preset demonstration queries.
func Demo(ctx context.Context, opts Options) error {
	client, settings, err := createClient(opts)
	if err != nil {
		return err
	}

	pipeline, cleanup, err := createPipeline(client, settings, opts)
	if err != nil {
		return err
	}
	defer cleanup()

	printSystemInfo(settings)

	successful := 0
	for i, query := range demoQueries {
		fmt.Printf("\nResearch Query %d: %s\n", i+1, query)
		fmt.Println(strings.Repeat("-", 60))
		fmt.Println("Researching...")

		report, err := pipeline.Run(ctx, query)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		printReport(report, opts.Verbose)
		successful++
	}

	fmt.Printf("\nSession Summary: completed %d/%d research queries successfully\n",
		successful, len(demoQueries))
	return nil
}

// History lists persisted runs, newest first.
func History(ctx context.Context, limit int, opts Options) error {
	if opts.DBPath == "" {
		return fmt.Errorf("no database path configured")
	}

	store, err := storage.OpenSqlite(opts.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	summaries, err := store.ListRuns(ctx, limit)
	if err != nil {
		return err
	}

	if len(summaries) == 0 {
		fmt.Println("No research runs recorded yet.")
		return nil
	}

	printRunSummaries(summaries)
	return nil
}

// Show prints one persisted run in full.
func Show(ctx context.Context, id string, opts Options) error {
	if opts.DBPath == "" {
		return fmt.Errorf("no database path configured")
	}

	store, err := storage.OpenSqlite(opts.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	run, err := store.LoadRun(ctx, id)
	if err != nil {
		return err
	}

	printRunRecord(run)
	return nil
}

// ListProviders prints supported providers with models and key sources.
func ListProviders() {
	printProviders()
}
