package ai

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"github.com/sciorbit/orbit/pkg/logger"
)

const AnalyzePrompt = `
# Task Context
You are a research-discovery assistant. You will be given an ordered list of paper titles forming the user's current research context. The first title is the most significant anchor of the search.

# Background Data
Context papers (most significant first):
%s

# Detailed Task Description & Rules
- Identify exactly 5 published papers strongly correlated with the context as a whole ("correlatedPapers").
- Identify exactly 5 further papers from the same authors, labs or institutions as the context papers ("authorContextPapers").
- Never return a paper whose title already appears in the context.
- For every paper fill in: title, authors (ordered), year, summary (2-3 sentences), reason (why it belongs in this set), labOrInstitution when known, and relevanceScore.
- relevanceScore is an integer from 0 to 100 expressing how relevant the paper is to the context as a whole. Spread scores across the set; do not give every paper the same score.
- Also write contextSummary: 2-4 sentences describing the research area the context spans.

# Output Formatting
Return only a JSON object with the keys contextSummary, correlatedPapers and authorContextPapers matching the provided schema. No prose outside the JSON.
`

const SuggestPrompt = `
# Task Context
You are the autocomplete backend of a research-paper search box.

# Background Data
Partial query: "%s"

# Detailed Task Description & Rules
- Suggest up to 5 titles of real, published research papers that plausibly complete or match the partial query.
- Prefer well-known papers. Return fewer than 5 when unsure; never invent titles to fill the list.

# Output Formatting
Return only a JSON object: {"titles": ["<title>", ...]}. No prose outside the JSON.
`

// contextTokenBudget caps the rendered context list of the analyze
// prompt. When the running context outgrows it, the least significant
// titles (the tail of the context set) are dropped first.
const contextTokenBudget = 1500

// analyzeEncoding is the tokenizer used to measure the context list.
const analyzeEncoding = "cl100k_base"

// BuildAnalyzePrompt renders the analyze prompt for an ordered title
// context, trimming the list's tail to the token budget. The root title
// is always kept even if it alone exceeds the budget.
func BuildAnalyzePrompt(titles []string) string {
	return fmt.Sprintf(AnalyzePrompt, renderContextList(titles))
}

// BuildSuggestPrompt renders the autocomplete prompt.
func BuildSuggestPrompt(partial string) string {
	return fmt.Sprintf(SuggestPrompt, partial)
}

func renderContextList(titles []string) string {
	if len(titles) == 0 {
		return "(none)"
	}

	enc, err := tiktoken.GetEncoding(analyzeEncoding)
	if err != nil {
		logger.Warn("Failed to load tokenizer, skipping context token budget", "encoding", analyzeEncoding, "err", err)
	}

	var b strings.Builder
	used := 0
	for i, title := range titles {
		line := fmt.Sprintf("%d. %s\n", i+1, title)
		if enc != nil && err == nil {
			cost := len(enc.Encode(line, nil, nil))
			if i > 0 && used+cost > contextTokenBudget {
				break
			}
			used += cost
		}
		b.WriteString(line)
	}
	return strings.TrimRight(b.String(), "\n")
}
