package research

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/richinex/minerva/llm"
	"github.com/richinex/minerva/search"
)

// webSearchResults is how many search hits enrich a research prompt.
const webSearchResults = 3

// ResearchSubtask runs one research call for a single subtask.
//
// A failed call does not fail the run: the returned finding carries
// FindingFailed and a placeholder so synthesis can proceed with the
// remaining findings.
func ResearchSubtask(ctx context.Context, client *llm.Client, subtask string, index int, webContext string) (Finding, *llm.TokenUsage) {
	messages := []llm.ChatMessage{
		llm.SystemMessage(researchSystemPrompt),
		llm.UserMessage(buildResearchPrompt(subtask, webContext)),
	}

	content, usage, err := client.CompleteWithUsage(ctx, messages)
	if err != nil {
		return Finding{
			Index:   index,
			Subtask: subtask,
			Content: fmt.Sprintf("Research failed: %v", err),
			Status:  FindingFailed,
		}, usage
	}

	return Finding{
		Index:   index,
		Subtask: subtask,
		Content: content,
		Status:  FindingCompleted,
	}, usage
}

// researchAll researches every subtask and returns findings in subtask
// order, one per subtask, along with the per-call token usage.
func (p *Pipeline) researchAll(ctx context.Context, subtasks []string) ([]Finding, []*llm.TokenUsage) {
	findings := make([]Finding, len(subtasks))
	usages := make([]*llm.TokenUsage, len(subtasks))

	if p.cfg.Sequential {
		for i, subtask := range subtasks {
			findings[i], usages[i] = ResearchSubtask(ctx, p.client, subtask, i, p.webContext(ctx, subtask))
		}
		return findings, usages
	}

	// Each goroutine writes only its own index, so no locking is
	// needed and the decomposition order is preserved.
	g, gctx := errgroup.WithContext(ctx)
	for i, subtask := range subtasks {
		g.Go(func() error {
			findings[i], usages[i] = ResearchSubtask(gctx, p.client, subtask, i, p.webContext(gctx, subtask))
			return nil
		})
	}
	// Failures are recorded in the findings, never returned.
	_ = g.Wait()

	return findings, usages
}

// webContext fetches search results for a subtask when web enrichment
// is enabled. Search failures are ignored; research proceeds without
// the extra context.
func (p *Pipeline) webContext(ctx context.Context, subtask string) string {
	if p.search == nil {
		return ""
	}
	results, err := p.search.Search(ctx, subtask, webSearchResults)
	if err != nil {
		p.logf("web search failed for %q: %v", subtask, err)
		return ""
	}
	return search.FormatResults(results)
}
