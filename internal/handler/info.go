package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/greeter/internal/server"
)

var envVarsTemplate = template.Must(template.New("env_vars").Parse(`<!DOCTYPE html>
<html lang="en">
    <head>
        <meta http-equiv="content-type" content="text/html; charset=utf-8">
        <title>Env Vars</title>
    </head>
    <body>
        <p>Client URL: <a href="{{.ClientURL}}">{{.ClientURL}}</a></p>
    </body>
</html>`))

// InfoHandler serves an informational page listing configured values.
type InfoHandler struct {
	Handler
}

// NewInfoHandler constructs an InfoHandler.
func NewInfoHandler(s *server.Server) *InfoHandler {
	return &InfoHandler{
		Handler: NewHandler(s),
	}
}

// EnvVars renders the configured client URL as an HTML page.
func (h *InfoHandler) EnvVars(c echo.Context) error {
	var body bytes.Buffer
	data := struct{ ClientURL string }{ClientURL: h.server.Config.Server.ClientURL}
	if err := envVarsTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render env vars page: %w", err)
	}

	return c.HTML(http.StatusOK, body.String())
}
