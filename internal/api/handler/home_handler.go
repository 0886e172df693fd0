package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const greeting = "Created the FastAPI Client Asset App"

// Home handles GET /.
//
// @Summary      Greeting
// @Tags         meta
// @Produce      json
// @Success      200  {string}  string
// @Router       / [get]
func Home(c echo.Context) error {
	return c.JSON(http.StatusOK, greeting)
}
