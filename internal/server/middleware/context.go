package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/sciorbit/orbit/internal/session"
	"github.com/sciorbit/orbit/internal/util"
	"github.com/sciorbit/orbit/pkg/ai"
	olm "github.com/sciorbit/orbit/pkg/ai/ollama"
	oai "github.com/sciorbit/orbit/pkg/ai/openai"
	"github.com/sciorbit/orbit/pkg/logger"
)

// App bundles the process-wide dependencies handlers need.
type App struct {
	Sessions *session.Store
	AiClient ai.ResearchAIClient
}

// AppContext wraps the echo context with the app dependencies.
type AppContext struct {
	echo.Context
	App *App
}

// AppContextMiddleware injects the app dependencies into every request.
func AppContextMiddleware(sessions *session.Store, aiClient ai.ResearchAIClient) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			app := &App{
				Sessions: sessions,
				AiClient: aiClient,
			}
			return next(&AppContext{c, app})
		}
	}
}

// NewAIClientFromEnv builds the research AI client selected by the
// AI_ADAPTER environment variable ("ollama" or the OpenAI-compatible
// default).
func NewAIClientFromEnv() ai.ResearchAIClient {
	switch util.GetEnv("AI_ADAPTER") {
	case "ollama":
		client, err := olm.NewResearchOllamaClient(olm.NewResearchOllamaClientParams{
			AnalyzeModel: util.GetEnv("AI_ANALYZE_MODEL"),
			SuggestModel: util.GetEnv("AI_SUGGEST_MODEL"),

			BaseURL: util.GetEnv("AI_URL"),
			APIKey:  util.GetEnv("AI_KEY"),

			MaxConcurrentRequests: int64(util.GetEnvNumeric("AI_PARALLEL_REQ", 4)),
		})
		if err != nil {
			logger.Fatal("Failed to create Ollama client", "err", err)
		}
		return client
	default:
		return oai.NewResearchOpenAIClient(oai.NewResearchOpenAIClientParams{
			AnalyzeModel: util.GetEnvString("AI_ANALYZE_MODEL", "gpt-4o-mini"),
			SuggestModel: util.GetEnv("AI_SUGGEST_MODEL"),

			BaseURL: util.GetEnv("AI_URL"),
			APIKey:  util.GetEnv("AI_KEY"),

			MaxConcurrentRequests: int64(util.GetEnvNumeric("AI_PARALLEL_REQ", 4)),
		})
	}
}
