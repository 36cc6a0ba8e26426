package openai

import (
	"context"
	"fmt"

	"github.com/sciorbit/orbit/internal/util"
	"github.com/sciorbit/orbit/pkg/ai"
	"github.com/sciorbit/orbit/pkg/logger"

	"github.com/openai/openai-go/v3"
)

const maxAnalyzeTries = 2

// Analyze asks the chat model for correlated and author-context papers
// for the given ordered title context. The response is requested as
// strict structured output; anything that still fails to parse is
// wrapped into an *ai.AnalysisError.
func (c *ResearchOpenAIClient) Analyze(
	ctx context.Context,
	titles []string,
	opts ...ai.GenerateOption,
) (*ai.AnalyzeResult, error) {
	if c.ChatClient == nil {
		return nil, &ai.AnalysisError{Err: fmt.Errorf("openai client not configured")}
	}

	options := ai.GenerateOptions{
		Model:       c.analyzeModel,
		Temperature: 0.3,
	}
	for _, o := range opts {
		o(&options)
	}

	schema := ai.GenerateSchema(ai.AnalyzeResult{})
	body := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(options.Model),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        "research_analysis",
					Description: openai.String("Correlated and author-context papers for a research context"),
					Schema:      schema,
					Strict:      openai.Bool(true),
				},
			},
		},
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(ai.BuildAnalyzePrompt(titles)),
		},
		Temperature: openai.Float(options.Temperature),
	}

	result, err := util.RetryWithContext(ctx, maxAnalyzeTries, func(ctx context.Context) (*ai.AnalyzeResult, error) {
		if err := c.reqLock.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		defer c.reqLock.Release(1)

		response, err := c.ChatClient.Chat.Completions.New(ctx, body)
		if err != nil {
			return nil, err
		}
		if len(response.Choices) == 0 {
			return nil, fmt.Errorf("no choices in response from model")
		}
		message := response.Choices[0].Message.Content
		if message == "" {
			return nil, fmt.Errorf("empty response from model (finish_reason: %s)", response.Choices[0].FinishReason)
		}

		var out ai.AnalyzeResult
		if err := ai.UnmarshalFlexible(message, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
	if err != nil {
		return nil, &ai.AnalysisError{Err: err}
	}
	return result, nil
}

// Suggest completes a partial title query. Errors are swallowed into an
// empty result; autocomplete must never surface a failure to the user.
func (c *ResearchOpenAIClient) Suggest(
	ctx context.Context,
	partial string,
	opts ...ai.GenerateOption,
) ([]string, error) {
	if len(partial) < ai.MinSuggestQueryLen || c.ChatClient == nil {
		return []string{}, nil
	}

	options := ai.GenerateOptions{
		Model:       c.suggestModel,
		Temperature: 0.1,
	}
	for _, o := range opts {
		o(&options)
	}

	type suggestions struct {
		Titles []string `json:"titles"`
	}
	schema := ai.GenerateSchema(suggestions{})

	body := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(options.Model),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        "title_suggestions",
					Description: openai.String("Paper title completions for a partial query"),
					Schema:      schema,
					Strict:      openai.Bool(true),
				},
			},
		},
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(ai.BuildSuggestPrompt(partial)),
		},
		Temperature: openai.Float(options.Temperature),
	}

	if err := c.reqLock.Acquire(ctx, 1); err != nil {
		return []string{}, nil
	}
	defer c.reqLock.Release(1)

	response, err := c.ChatClient.Chat.Completions.New(ctx, body)
	if err != nil {
		logger.Debug("Suggestion call failed", "err", err)
		return []string{}, nil
	}
	if len(response.Choices) == 0 {
		return []string{}, nil
	}

	var out suggestions
	if err := ai.UnmarshalFlexible(response.Choices[0].Message.Content, &out); err != nil {
		logger.Debug("Failed to parse suggestions", "err", err)
		return []string{}, nil
	}
	if out.Titles == nil {
		return []string{}, nil
	}
	return out.Titles, nil
}
