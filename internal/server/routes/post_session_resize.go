package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sciorbit/orbit/internal/server/middleware"
	"github.com/sciorbit/orbit/pkg/graph"
)

// ResizeSessionHandler updates a session's drawing-surface dimensions
// and returns the frame rescaled to them.
func ResizeSessionHandler(c echo.Context) error {
	type resizeParams struct {
		ID     string  `param:"id" validate:"required"`
		Width  float64 `json:"width" validate:"gte=0"`
		Height float64 `json:"height" validate:"gte=0"`
	}

	params := new(resizeParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request params"})
	}

	app := c.(*middleware.AppContext).App
	sess, ok := app.Sessions.Get(params.ID)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Session not found"})
	}

	sess.Resize(graph.Dimensions{Width: params.Width, Height: params.Height})
	return c.JSON(http.StatusOK, sess.Frame())
}
