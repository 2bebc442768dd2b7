package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

var formTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// RegisterForm serves the browser-facing registration form.
func (h *Handler) RegisterForm(c echo.Context) error {
	return renderForm(c, "register.html")
}

// LoginForm serves the browser-facing login form.
func (h *Handler) LoginForm(c echo.Context) error {
	return renderForm(c, "login.html")
}

func renderForm(c echo.Context, name string) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return formTemplates.ExecuteTemplate(c.Response(), name, nil)
}
