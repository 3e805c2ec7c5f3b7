package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/fanchase/chased/internal/command"
	"github.com/labstack/echo/v4"
)

func registerCommandEndpoints(rest *echo.Echo, processor *command.Processor) {
	group := rest.Group("/command")

	group.POST("/", func(c echo.Context) error {
		return postCommand(c, processor)
	})
}

// postCommand feeds a single command line to the processor. The body is
// the raw command text, e.g. "CHASE 0 1200".
func postCommand(c echo.Context, processor *command.Processor) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSONPretty(http.StatusBadRequest, &Result{
			Name:    "Bad request",
			Message: err.Error(),
		}, indentationChar)
	}

	line := strings.TrimSpace(string(body))
	if !processor.Process(line) {
		return c.JSONPretty(http.StatusUnprocessableEntity, &Result{
			Name:    "Rejected",
			Message: "command rejected: " + line,
		}, indentationChar)
	}

	return c.JSONPretty(http.StatusOK, &Result{
		Name:    "Ok",
		Message: "command accepted",
	}, indentationChar)
}
