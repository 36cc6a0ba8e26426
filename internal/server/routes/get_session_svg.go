package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sciorbit/orbit/pkg/graph"
)

// GetSessionSVGHandler exports the current graph frame as an SVG
// document.
func GetSessionSVGHandler(c echo.Context) error {
	sess, errResp := sessionFromPath(c)
	if sess == nil {
		return errResp
	}

	snap := sess.Snapshot()
	svg := graph.RenderSVG(snap.Frame, snap.Dimensions)
	return c.Blob(http.StatusOK, "image/svg+xml", svg)
}
