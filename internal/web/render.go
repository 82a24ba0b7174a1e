package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/storefront/pkg/validation"
)

//go:embed templates/*.html
var templateFS embed.FS

func mustTemplates() *template.Template {
	funcs := template.FuncMap{
		"money": func(d decimal.Decimal) string { return "$" + d.StringFixed(2) },
		"fieldErrors": func(ve *validation.Error, field string) []string {
			return ve.For(field)
		},
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

// render adds the values every page layout needs and writes the template.
func (h *handler) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Flash"] = popFlash(c)
	data["LoggedIn"] = currentUser(c) != uuid.Nil
	c.HTML(status, name, data)
}

func (h *handler) notFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "error.html", gin.H{
		"Title":   "Not found",
		"Message": "The page you requested does not exist.",
	})
}

// fail logs an unexpected error and renders the generic error page.
func (h *handler) fail(c *gin.Context, err error) {
	h.log.Error("request failed",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Any("err", err),
	)
	h.render(c, http.StatusInternalServerError, "error.html", gin.H{
		"Title":   "Server error",
		"Message": "Something went wrong. Please try again.",
	})
}
