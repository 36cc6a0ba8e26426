package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sciorbit/orbit/internal/server/middleware"
)

// DeleteSessionHandler closes a session, stopping its animation loop
// and dropping its in-memory state.
func DeleteSessionHandler(c echo.Context) error {
	type deleteParams struct {
		ID string `param:"id" validate:"required"`
	}

	params := new(deleteParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request params"})
	}

	app := c.(*middleware.AppContext).App
	app.Sessions.Delete(params.ID)
	return c.NoContent(http.StatusNoContent)
}
