package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sciorbit/orbit/internal/server/middleware"
	"github.com/sciorbit/orbit/internal/session"
)

// GetSessionHandler returns the full snapshot of a session: context
// papers, summary, result list and the current frame.
func GetSessionHandler(c echo.Context) error {
	sess, errResp := sessionFromPath(c)
	if sess == nil {
		return errResp
	}
	return c.JSON(http.StatusOK, sess.Snapshot())
}

// sessionFromPath resolves the :id path param to a live session. On
// failure it writes the error response and returns a nil session.
func sessionFromPath(c echo.Context) (*session.Session, error) {
	type sessionParams struct {
		ID string `param:"id" validate:"required"`
	}

	params := new(sessionParams)
	if err := c.Bind(params); err != nil {
		return nil, c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return nil, c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request params"})
	}

	app := c.(*middleware.AppContext).App
	sess, ok := app.Sessions.Get(params.ID)
	if !ok {
		return nil, c.JSON(http.StatusNotFound, map[string]string{"message": "Session not found"})
	}
	return sess, nil
}
