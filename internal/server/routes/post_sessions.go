package routes

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sciorbit/orbit/internal/server/middleware"
	"github.com/sciorbit/orbit/internal/session"
	"github.com/sciorbit/orbit/pkg/ai"
	"github.com/sciorbit/orbit/pkg/graph"
	"github.com/sciorbit/orbit/pkg/logger"
)

// CreateSessionHandler starts a discovery session: it analyzes the
// given title and returns the session snapshot with the first result
// graph laid out.
func CreateSessionHandler(c echo.Context) error {
	type createSessionParams struct {
		Title  string  `json:"title" validate:"required"`
		Width  float64 `json:"width" validate:"gte=0"`
		Height float64 `json:"height" validate:"gte=0"`
	}

	params := new(createSessionParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request params"})
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	result, err := app.AiClient.Analyze(ctx, []string{params.Title})
	if err != nil {
		return analysisErrorResponse(c, err)
	}

	root := graph.Paper{Title: params.Title}
	sess, err := app.Sessions.Create(root, graph.Dimensions{Width: params.Width, Height: params.Height})
	if err != nil {
		logger.Error("Failed to create session", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
	}

	applyAnalysis(sess, result)
	return c.JSON(http.StatusCreated, sess.Snapshot())
}

// applyAnalysis merges an analysis payload into the session's result
// list: correlated papers first, author-context papers after, with
// titles already present in the context or earlier in the list dropped.
func applyAnalysis(sess *session.Session, result *ai.AnalyzeResult) {
	seen := make(map[string]bool)
	for _, title := range sess.ContextTitles() {
		seen[title] = true
	}

	papers := make([]graph.Paper, 0, len(result.CorrelatedPapers)+len(result.AuthorContextPapers))
	for _, p := range append(result.CorrelatedPapers, result.AuthorContextPapers...) {
		if seen[p.Title] {
			continue
		}
		seen[p.Title] = true
		papers = append(papers, p)
	}

	sess.SetResults(papers, result.ContextSummary)
}

func analysisErrorResponse(c echo.Context, err error) error {
	var analysisErr *ai.AnalysisError
	if errors.As(err, &analysisErr) {
		logger.Error("Analysis failed", "err", err)
		return c.JSON(http.StatusBadGateway, map[string]string{
			"message": "The analysis service could not process the request. Please try again.",
		})
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	logger.Error("Unexpected analysis error", "err", err)
	return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
}
