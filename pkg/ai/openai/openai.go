package openai

import (
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"golang.org/x/sync/semaphore"
)

// ResearchOpenAIClient implements ai.ResearchAIClient against any
// OpenAI-compatible chat endpoint, using strict JSON-schema response
// formats for the structured analysis payload.
type ResearchOpenAIClient struct {
	analyzeModel string
	suggestModel string

	baseURL string
	apiKey  string

	reqLock *semaphore.Weighted

	ChatClient *openai.Client
}

// NewResearchOpenAIClientParams configures a new client. SuggestModel
// falls back to AnalyzeModel when empty; BaseURL falls back to the
// public OpenAI endpoint.
type NewResearchOpenAIClientParams struct {
	AnalyzeModel string
	SuggestModel string

	BaseURL string
	APIKey  string

	MaxConcurrentRequests int64
}

// NewResearchOpenAIClient creates a client for the configured endpoint.
func NewResearchOpenAIClient(params NewResearchOpenAIClientParams) *ResearchOpenAIClient {
	suggestModel := params.SuggestModel
	if suggestModel == "" {
		suggestModel = params.AnalyzeModel
	}

	maxConcurrent := params.MaxConcurrentRequests
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}

	return &ResearchOpenAIClient{
		analyzeModel: params.AnalyzeModel,
		suggestModel: suggestModel,
		baseURL:      params.BaseURL,
		apiKey:       params.APIKey,
		reqLock:      semaphore.NewWeighted(maxConcurrent),
		ChatClient:   newOpenaiClient(params.BaseURL, params.APIKey),
	}
}

func newOpenaiClient(baseURL string, apiKey string) *openai.Client {
	if apiKey == "" {
		return nil
	}
	options := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(options...)
	return &client
}
