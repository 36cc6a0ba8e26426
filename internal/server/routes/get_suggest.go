package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sciorbit/orbit/internal/server/middleware"
	"github.com/sciorbit/orbit/pkg/ai"
)

// GetSuggestionsHandler completes a partial title query. It always
// answers 200: short queries and collaborator failures both come back
// as an empty list.
func GetSuggestionsHandler(c echo.Context) error {
	type suggestResponse struct {
		Titles []string `json:"titles"`
	}

	query := c.QueryParam("q")
	if len(query) < ai.MinSuggestQueryLen {
		return c.JSON(http.StatusOK, suggestResponse{Titles: []string{}})
	}

	app := c.(*middleware.AppContext).App
	titles, err := app.AiClient.Suggest(c.Request().Context(), query)
	if err != nil || titles == nil {
		titles = []string{}
	}
	return c.JSON(http.StatusOK, suggestResponse{Titles: titles})
}
