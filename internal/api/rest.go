package api

import (
	"net/http"

	"github.com/fanchase/chased/internal/command"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	urlParamId      = "id"
	indentationChar = "  "
)

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
)

func CreateRestService(processor *command.Processor) *echo.Echo {
	echoRest := echo.New()
	echoRest.HideBanner = true

	// Root level middleware
	echoRest.Pre(middleware.AddTrailingSlash())

	echoRest.Use(middleware.Secure())
	echoRest.Use(middleware.Recover())
	echoRest.Use(echoprometheus.NewMiddleware("chased"))

	echoRest.GET("/alive/", isAlive)

	registerChannelEndpoints(echoRest, processor)
	registerCommandEndpoints(echoRest, processor)
	registerConfigEndpoints(echoRest)

	return echoRest
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// return a "not found" message
func returnNotFound(c echo.Context, id string) (err error) {
	return c.JSONPretty(http.StatusNotFound, &Result{
		Name:    "Not found",
		Message: "No item with id '" + id + "' found",
	}, indentationChar)
}
