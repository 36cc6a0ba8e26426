package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sciorbit/orbit/internal/server/middleware"
	"github.com/sciorbit/orbit/internal/session"
	"github.com/sciorbit/orbit/pkg/graph"
)

// PostSessionEventHandler feeds one interaction event into a session's
// state machine. Plain pointer events return the updated frame; events
// whose effects grow or pivot the context trigger a re-analysis and
// return the full snapshot.
func PostSessionEventHandler(c echo.Context) error {
	type eventParams struct {
		ID    string       `param:"id" validate:"required"`
		Type  string       `json:"type" validate:"required,oneof=enter leave click background dblclick info dismiss add"`
		Node  string       `json:"node"`
		Paper *graph.Paper `json:"paper"`
	}

	type eventResponse struct {
		Added    *bool             `json:"added,omitempty"`
		Frame    *graph.Frame      `json:"frame,omitempty"`
		Snapshot *session.Snapshot `json:"snapshot,omitempty"`
	}

	params := new(eventParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request params"})
	}

	needsPaper := params.Type == "dblclick" || params.Type == "info" || params.Type == "add"
	if needsPaper && params.Paper == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Event requires a paper"})
	}
	needsNode := params.Type == "enter" || params.Type == "leave" || params.Type == "click"
	if needsNode && params.Node == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Event requires a node id"})
	}

	app := c.(*middleware.AppContext).App
	sess, ok := app.Sessions.Get(params.ID)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Session not found"})
	}

	var event graph.Event
	switch params.Type {
	case "enter":
		event = graph.PointerEnter{ID: graph.NodeID(params.Node)}
	case "leave":
		event = graph.PointerLeave{ID: graph.NodeID(params.Node)}
	case "click":
		event = graph.ClickNode{ID: graph.NodeID(params.Node)}
	case "background":
		event = graph.ClickBackground{}
	case "dblclick":
		event = graph.DoubleClick{Paper: *params.Paper}
	case "info":
		event = graph.ShowInfo{Paper: *params.Paper}
	case "dismiss":
		event = graph.DismissInfo{}
	case "add":
		event = graph.AddToContext{Paper: *params.Paper}
	}

	effect := sess.ApplyEvent(event)
	ctx := c.Request().Context()

	switch eff := effect.(type) {
	case graph.PivotRequest:
		// A pivot restarts the search rooted at the chosen paper.
		result, err := app.AiClient.Analyze(ctx, []string{eff.Paper.Title})
		if err != nil {
			return analysisErrorResponse(c, err)
		}
		sess.ResetContext(eff.Paper)
		applyAnalysis(sess, result)
		snap := sess.Snapshot()
		return c.JSON(http.StatusOK, eventResponse{Snapshot: &snap})

	case graph.AddRequest:
		added := sess.AddContext(eff.Paper)
		if !added {
			// Duplicate titles are a silent no-op; the graph is unchanged.
			frame := sess.Frame()
			return c.JSON(http.StatusOK, eventResponse{Added: &added, Frame: &frame})
		}
		result, err := app.AiClient.Analyze(ctx, sess.ContextTitles())
		if err != nil {
			return analysisErrorResponse(c, err)
		}
		applyAnalysis(sess, result)
		snap := sess.Snapshot()
		return c.JSON(http.StatusOK, eventResponse{Added: &added, Snapshot: &snap})

	default:
		frame := sess.Frame()
		return c.JSON(http.StatusOK, eventResponse{Frame: &frame})
	}
}
