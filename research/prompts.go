package research

import (
	"fmt"
	"strings"
)

// System prompts for the pipeline stages.
const (
	decomposeSystemPrompt = "You are a research planning assistant. You break complex " +
		"research queries into focused, independent subtasks."

	researchSystemPrompt = "You are a research specialist. You investigate one specific " +
		"topic in depth and report concrete, well-supported findings."

	synthesisSystemPrompt = "You are a research editor. You combine findings from multiple " +
		"research areas into one coherent, well-structured report."

	citationSystemPrompt = "You are a citation specialist. You annotate research reports " +
		"with numbered citation markers and a matching bibliography."
)

// buildDecomposePrompt asks the model to split a query into subtasks.
func buildDecomposePrompt(query string, maxSubtasks int) string {
	count := fmt.Sprintf("3-%d", maxSubtasks)
	if maxSubtasks <= 3 {
		count = fmt.Sprintf("%d", maxSubtasks)
	}
	return fmt.Sprintf(`Break down this research query into %s specific subtasks:

Query: %s

Create focused research subtasks that together would comprehensively answer this query. Each subtask should:
- Cover a different angle or aspect of the query
- Be specific enough to research independently
- Be phrased as a clear research direction

Format your response as a numbered list with one subtask per line.`, count, query)
}

// buildResearchPrompt asks the model to investigate one subtask.
// webContext, when non-empty, is a block of search results included
// verbatim to ground the research in current sources.
func buildResearchPrompt(subtask, webContext string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Research this specific topic comprehensively: %s\n", subtask)

	if webContext != "" {
		b.WriteString("\nRecent web search results for context:\n")
		b.WriteString(webContext)
	}

	b.WriteString(`
Provide detailed findings including:
- Key facts and current developments
- Supporting evidence and data
- Important caveats or considerations
- A brief analysis of what the findings mean

Be thorough but stay focused on this specific aspect.`)
	return b.String()
}

// buildSynthesisPrompt asks the model to merge findings into a report.
func buildSynthesisPrompt(query string, findings []Finding) string {
	return fmt.Sprintf(`Synthesize these research findings into a comprehensive report for the query:
"%s"

Research Findings:
%s

Create a well-structured report with:
- An executive summary
- Key findings organized by theme
- Detailed analysis connecting the individual findings
- Conclusions

Format the report in clean markdown.`, query, formatFindings(findings))
}

// buildCitationPrompt asks the model to annotate a report with citations.
func buildCitationPrompt(report string) string {
	return fmt.Sprintf(`Add citation markers to this research report. Insert numbered markers like [1], [2] where claims would need a source, and append a Bibliography section that lists every marker.

Original Content:
%s

Citation Requirements:
- Use sequential numbers starting at [1]
- Every marker in the text must appear in the bibliography
- Do not change the report text beyond inserting markers and the bibliography`, report)
}

// formatFindings renders findings as labeled sections for the synthesis prompt.
func formatFindings(findings []Finding) string {
	var b strings.Builder
	for i, f := range findings {
		if i > 0 {
			b.WriteString("\n\n")
		}
		header := fmt.Sprintf("Research Area %d: %s", f.Index+1, f.Subtask)
		b.WriteString(header)
		b.WriteByte('\n')
		b.WriteString(strings.Repeat("=", len(header)))
		b.WriteByte('\n')
		b.WriteString(f.Content)
	}
	return b.String()
}
