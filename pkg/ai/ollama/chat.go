package ollama

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sciorbit/orbit/internal/util"
	"github.com/sciorbit/orbit/pkg/ai"
	"github.com/sciorbit/orbit/pkg/logger"

	"github.com/ollama/ollama/api"
)

const maxAnalyzeTries = 2

// chatJSON runs one non-streaming chat call in format mode and parses
// the accumulated content into out.
func (c *ResearchOllamaClient) chatJSON(
	ctx context.Context,
	model string,
	prompt string,
	temperature float64,
	out any,
) error {
	schemaBytes, err := json.Marshal(ai.GenerateSchema(out))
	if err != nil {
		return err
	}

	stream := false
	req := &api.ChatRequest{
		Model: model,
		Messages: []api.Message{
			{Role: "user", Content: prompt},
		},
		Stream:  &stream,
		Format:  json.RawMessage(schemaBytes),
		Options: map[string]any{"temperature": temperature},
	}

	if err := c.reqLock.Acquire(ctx, 1); err != nil {
		return err
	}
	defer c.reqLock.Release(1)

	var content string
	if err := c.Client.Chat(ctx, req, func(cr api.ChatResponse) error {
		content += cr.Message.Content
		return nil
	}); err != nil {
		return err
	}
	if content == "" {
		return fmt.Errorf("empty response from model %s", model)
	}

	return ai.UnmarshalFlexible(content, out)
}

// Analyze asks the local model for correlated and author-context papers
// for the given ordered title context.
func (c *ResearchOllamaClient) Analyze(
	ctx context.Context,
	titles []string,
	opts ...ai.GenerateOption,
) (*ai.AnalyzeResult, error) {
	options := ai.GenerateOptions{
		Model:       c.analyzeModel,
		Temperature: 0.3,
	}
	for _, o := range opts {
		o(&options)
	}

	prompt := ai.BuildAnalyzePrompt(titles)
	result, err := util.RetryWithContext(ctx, maxAnalyzeTries, func(ctx context.Context) (*ai.AnalyzeResult, error) {
		var out ai.AnalyzeResult
		if err := c.chatJSON(ctx, options.Model, prompt, options.Temperature, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
	if err != nil {
		return nil, &ai.AnalysisError{Err: err}
	}
	return result, nil
}

// Suggest completes a partial title query, best effort: failures yield
// an empty result.
func (c *ResearchOllamaClient) Suggest(
	ctx context.Context,
	partial string,
	opts ...ai.GenerateOption,
) ([]string, error) {
	if len(partial) < ai.MinSuggestQueryLen {
		return []string{}, nil
	}

	options := ai.GenerateOptions{
		Model:       c.suggestModel,
		Temperature: 0.1,
	}
	for _, o := range opts {
		o(&options)
	}

	var out struct {
		Titles []string `json:"titles"`
	}
	if err := c.chatJSON(ctx, options.Model, ai.BuildSuggestPrompt(partial), options.Temperature, &out); err != nil {
		logger.Debug("Suggestion call failed", "err", err)
		return []string{}, nil
	}
	if out.Titles == nil {
		return []string{}, nil
	}
	return out.Titles, nil
}
