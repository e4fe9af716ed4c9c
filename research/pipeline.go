package research

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/richinex/minerva/config"
	"github.com/richinex/minerva/llm"
	"github.com/richinex/minerva/search"
	"github.com/richinex/minerva/storage"
)

// Pipeline runs the full research flow: decompose, research each
// subtask, synthesize, and optionally annotate with citations.
//
// Every stage goes through the same llm.Client, so swapping the
// provider (including the mock) changes the whole run at once.
type Pipeline struct {
	client  *llm.Client
	cfg     config.ResearchConfig
	search  *search.Client
	store   storage.RunStorage
	verbose bool
	out     io.Writer
}

// New creates a pipeline with the given client and research settings.
func New(client *llm.Client, cfg config.ResearchConfig) *Pipeline {
	return &Pipeline{
		client: client,
		cfg:    cfg,
		out:    os.Stdout,
	}
}

// WithSearch enables web search enrichment of research prompts.
func (p *Pipeline) WithSearch(client *search.Client) *Pipeline {
	p.search = client
	return p
}

// WithStore enables run persistence. Save failures are logged, never fatal.
func (p *Pipeline) WithStore(store storage.RunStorage) *Pipeline {
	p.store = store
	return p
}

// Verbose enables progress logging and streamed synthesis output.
func (p *Pipeline) Verbose(verbose bool) *Pipeline {
	p.verbose = verbose
	return p
}

// WithOutput redirects progress and streaming output (used in tests).
func (p *Pipeline) WithOutput(w io.Writer) *Pipeline {
	p.out = w
	return p
}

// Run executes the research flow for a query and returns the report.
//
// The decomposition and research stages degrade rather than fail; Run
// errors only for an empty query, or when synthesis has no successful
// findings to work from.
func (p *Pipeline) Run(ctx context.Context, query string) (Report, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Report{}, fmt.Errorf("query cannot be empty")
	}

	start := time.Now()
	var stats TokenStats

	p.logf("Decomposing query...")
	subtasks, usage := Decompose(ctx, p.client, query, p.cfg.MaxSubtasks)
	stats.AddUsage(usage)

	p.logf("Researching %d subtasks...", len(subtasks))
	findings, usages := p.researchAll(ctx, subtasks)
	for _, u := range usages {
		stats.AddUsage(u)
	}

	p.logf("Synthesizing report...")
	text, usage, err := p.synthesize(ctx, query, findings)
	stats.AddUsage(usage)
	if err != nil {
		return Report{}, err
	}

	var citations *CitationCheck
	if p.cfg.Citations {
		p.logf("Adding citations...")
		annotated, check, usage, err := Annotate(ctx, p.client, text)
		stats.AddUsage(usage)
		if err != nil {
			// The unannotated report is still a valid result.
			p.logf("citation pass failed, keeping plain report: %v", err)
		} else {
			text = annotated
			citations = check
		}
	}

	provider := p.client.Provider()
	report := Report{
		ID:        uuid.NewString(),
		Query:     query,
		Subtasks:  subtasks,
		Findings:  findings,
		Text:      text,
		Citations: citations,
		Provider:  provider.Name(),
		Model:     provider.Model(),
		Stats:     stats,
		Duration:  time.Since(start),
		CreatedAt: time.Now().UTC(),
	}

	if p.store != nil {
		if err := p.store.SaveRun(ctx, toRecord(report)); err != nil {
			p.logf("failed to save run: %v", err)
		}
	}

	return report, nil
}

// synthesize runs the synthesis stage, streaming the report to p.out
// when verbose so the user sees it as it is generated.
func (p *Pipeline) synthesize(ctx context.Context, query string, findings []Finding) (string, *llm.TokenUsage, error) {
	if !p.verbose {
		return Synthesize(ctx, p.client, query, findings)
	}

	completed := completedOnly(findings)
	if len(completed) == 0 {
		return "", nil, fmt.Errorf("all %d research subtasks failed, nothing to synthesize", len(findings))
	}

	chunks := make(chan string)
	done := make(chan struct{})
	var b strings.Builder
	go func() {
		defer close(done)
		for chunk := range chunks {
			b.WriteString(chunk)
			fmt.Fprint(p.out, chunk)
		}
	}()

	usage, err := p.client.StreamComplete(ctx, synthesisMessages(query, completed), chunks)
	close(chunks)
	<-done
	fmt.Fprintln(p.out)

	if err != nil {
		return "", usage, fmt.Errorf("synthesis failed: %w", err)
	}
	return b.String(), usage, nil
}

// toRecord converts a report into its persisted form.
func toRecord(r Report) storage.RunRecord {
	findings := make([]storage.FindingRecord, len(r.Findings))
	for i, f := range r.Findings {
		findings[i] = storage.FindingRecord{
			Index:   f.Index,
			Subtask: f.Subtask,
			Content: f.Content,
			Status:  string(f.Status),
		}
	}
	return storage.RunRecord{
		ID:        r.ID,
		Query:     r.Query,
		Provider:  r.Provider,
		Model:     r.Model,
		Report:    r.Text,
		CreatedAt: r.CreatedAt,
		Findings:  findings,
	}
}

func (p *Pipeline) logf(format string, args ...any) {
	if !p.verbose {
		return
	}
	fmt.Fprintf(p.out, format+"\n", args...)
}
