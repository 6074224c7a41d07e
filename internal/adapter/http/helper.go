package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// bindAndValidate decodes the body into req and runs struct validation,
// writing the 400/422 response itself. It reports whether to continue.
func bindAndValidate(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	return true, nil
}

func notFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
}

func backendFailed(c echo.Context) error {
	return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "backend request failed"})
}

// validParam rejects path ids that cannot be backend document names.
func validParam(c echo.Context, name string) (string, bool, error) {
	v := c.Param(name)
	if !reDocName.MatchString(v) {
		return "", false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name})
	}
	return v, true, nil
}
