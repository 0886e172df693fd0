package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// bindAndValidate decodes the body into req and runs the registered
// validator. Both failures are input errors and surface as 422.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}

// pathID parses the :id segment.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid client id")
	}
	return id, nil
}
