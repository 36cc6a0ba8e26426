package ollama

import (
	"net/http"
	"net/url"

	"github.com/ollama/ollama/api"
	"golang.org/x/sync/semaphore"
)

// ResearchOllamaClient implements ai.ResearchAIClient against a locally
// hosted Ollama server, using JSON-schema format mode for structured
// output.
type ResearchOllamaClient struct {
	analyzeModel string
	suggestModel string

	reqLock *semaphore.Weighted

	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client

	Client *api.Client
}

// NewResearchOllamaClientParams contains configuration for creating a
// new ResearchOllamaClient.
type NewResearchOllamaClientParams struct {
	AnalyzeModel string
	SuggestModel string

	BaseURL string
	APIKey  string

	MaxConcurrentRequests int64
}

type headerTransport struct {
	headers map[string]string
	rt      http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so original request isn't modified
	r := req.Clone(req.Context())
	for k, v := range t.headers {
		if r.Header.Get(k) == "" {
			r.Header.Set(k, v)
		}
	}
	return t.rt.RoundTrip(r)
}

// NewResearchOllamaClient connects to the Ollama server at BaseURL (or
// the Ollama default when empty).
func NewResearchOllamaClient(params NewResearchOllamaClientParams) (*ResearchOllamaClient, error) {
	var (
		u   *url.URL
		err error
	)
	if params.BaseURL != "" {
		u, err = url.Parse(params.BaseURL)
		if err != nil {
			return nil, err
		}
	} else {
		u = &url.URL{Scheme: "http", Host: "127.0.0.1:11434"}
	}

	httpClient := http.DefaultClient
	if params.APIKey != "" {
		httpClient = &http.Client{
			Transport: &headerTransport{
				headers: map[string]string{
					"Authorization": "Bearer " + params.APIKey,
				},
				rt: http.DefaultTransport,
			},
		}
	}

	suggestModel := params.SuggestModel
	if suggestModel == "" {
		suggestModel = params.AnalyzeModel
	}

	maxConcurrent := params.MaxConcurrentRequests
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}

	return &ResearchOllamaClient{
		analyzeModel: params.AnalyzeModel,
		suggestModel: suggestModel,

		reqLock: semaphore.NewWeighted(maxConcurrent),

		baseURL:    u,
		apiKey:     params.APIKey,
		httpClient: httpClient,

		Client: api.NewClient(u, httpClient),
	}, nil
}
