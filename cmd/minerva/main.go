// Package main provides the minerva CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/richinex/minerva/cli"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	provider    string
	model       string
	mock        bool
	maxSubtasks int
	sequential  bool
	citations   bool
	web         bool
	dbPath      string
	verbose     bool
)

func main() {
	// Load .env file if present (ignore "file not found" errors)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
		}
	}

	rootCmd := &cobra.Command{
		Use:   "minerva",
		Short: "Multi-step LLM research from the command line",
		Long: `Minerva conducts multi-step research with an LLM.

A query is decomposed into focused subtasks, each subtask is researched
with an independent model call, and the findings are synthesized into a
single report. The mock provider (--mock) runs the full flow offline
with no API key.`,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&provider, "provider", "p", "", "LLM provider (openai, anthropic, deepseek, gemini, mock)")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "Model identifier (defaults per provider)")
	rootCmd.PersistentFlags().BoolVar(&mock, "mock", false, "Use the offline mock provider (no API key, no network)")
	rootCmd.PersistentFlags().IntVar(&maxSubtasks, "max-subtasks", 0, "Maximum research subtasks per query (default from RESEARCH_MAX_SUBTASKS)")
	rootCmd.PersistentFlags().BoolVar(&sequential, "sequential", false, "Research subtasks one at a time instead of in parallel")
	rootCmd.PersistentFlags().BoolVar(&citations, "citations", false, "Annotate the report with citation markers")
	rootCmd.PersistentFlags().BoolVar(&web, "web", false, "Enrich research with Brave web search (requires BRAVE_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", ".minerva/minerva.db", "Database path for run history (empty disables persistence)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show progress and stream the synthesis step")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(chatCmd())
	rootCmd.AddCommand(demoCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(providersCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func options() cli.Options {
	return cli.Options{
		Provider:    provider,
		Model:       model,
		Mock:        mock,
		MaxSubtasks: maxSubtasks,
		Sequential:  sequential,
		Citations:   citations,
		Web:         web,
		DBPath:      dbPath,
		Verbose:     verbose,
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [query]",
		Short: "Research a single query and print the report",
		Long: `Research a single query.

The query is decomposed into subtasks, each subtask is researched with
an independent model call, and the findings are synthesized into one
report printed to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Research(context.Background(), args[0], options())
		},
	}
}

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive research session",
		Long: `Start an interactive session reading research queries from stdin.

Type 'exit', 'quit', or 'q' to stop; 'help' and 'info' are available
inside the loop.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Interactive(context.Background(), options())
		},
	}
}

func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the preset demonstration queries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Demo(context.Background(), options())
		},
	}
}

func historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List persisted research runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.History(context.Background(), limit, options())
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs to list (0 for all)")

	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [run-id]",
		Short: "Print one persisted research run in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.Show(context.Background(), args[0], options())
		},
	}
}

func providersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List supported providers and their default models",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli.ListProviders()
			return nil
		},
	}
}
