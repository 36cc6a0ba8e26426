package routes

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
)

// StreamSessionFramesHandler streams animation frames as JSON lines
// until the client disconnects or the session closes. The cadence is
// the session's wire rate, not the internal 60Hz clock.
func StreamSessionFramesHandler(c echo.Context) error {
	sess, errResp := sessionFromPath(c)
	if sess == nil {
		return errResp
	}

	frames, cancel := sess.Subscribe()
	defer cancel()

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c.Response().WriteHeader(http.StatusOK)

	enc := json.NewEncoder(c.Response())
	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case frame, ok := <-frames:
			if !ok {
				// Session closed underneath us.
				return nil
			}
			if err := enc.Encode(frame); err != nil {
				return err
			}
			c.Response().Flush()
		}
	}
}
