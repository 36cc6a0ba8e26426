package ai

import (
	"context"
	"fmt"

	"github.com/sciorbit/orbit/pkg/graph"
)

// MinSuggestQueryLen is the shortest partial query Suggest will act on.
// Shorter queries return no suggestions without calling the model.
const MinSuggestQueryLen = 3

// AnalyzeResult is the structured payload the analysis model returns
// for a context of paper titles. CorrelatedPapers are thematically
// related works, AuthorContextPapers are other works from the same
// authors or labs.
type AnalyzeResult struct {
	ContextSummary      string        `json:"contextSummary"`
	CorrelatedPapers    []graph.Paper `json:"correlatedPapers"`
	AuthorContextPapers []graph.Paper `json:"authorContextPapers"`
}

// AnalysisError wraps any failure of the analysis call: transport
// errors, refusals and unparseable payloads all surface as this type so
// handlers can map them to one user-visible message.
type AnalysisError struct {
	Err error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis failed: %v", e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// GenerateOptions holds configuration for AI requests.
type GenerateOptions struct {
	Model       string  // Model identifier to use
	Temperature float64 // Sampling temperature (0.0-2.0)
}

// GenerateOption is a functional option for configuring AI requests.
type GenerateOption func(*GenerateOptions)

// WithModel returns a GenerateOption that overrides the model.
func WithModel(model string) GenerateOption {
	return func(o *GenerateOptions) {
		o.Model = model
	}
}

// WithTemperature returns a GenerateOption that sets the sampling
// temperature.
func WithTemperature(temp float64) GenerateOption {
	return func(o *GenerateOptions) {
		o.Temperature = temp
	}
}

// ResearchAIClient is the boundary to the generative model that powers
// discovery. The graph engine never calls it; handlers do, and feed the
// results into the engine.
type ResearchAIClient interface {
	// Analyze asks the model for papers correlated with the given
	// context titles plus author-context papers. It returns an
	// *AnalysisError when the call fails or the payload cannot be
	// parsed; an empty-but-valid result is not an error.
	Analyze(ctx context.Context, titles []string, opts ...GenerateOption) (*AnalyzeResult, error)

	// Suggest completes a partial title query. It is best effort:
	// remote errors and sub-minimum queries yield an empty slice and a
	// nil error.
	Suggest(ctx context.Context, partial string, opts ...GenerateOption) ([]string, error)
}
