package api

import (
	"net/http"

	"github.com/fanchase/chased/internal/configuration"
	"github.com/labstack/echo/v4"
	"github.com/qdm12/reprint"
)

func registerConfigEndpoints(rest *echo.Echo) {
	group := rest.Group("/config")

	group.GET("/", getConfig)
}

// returns a deep copy of the active configuration
func getConfig(c echo.Context) error {
	data := reprint.This(configuration.CurrentConfig)
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}
