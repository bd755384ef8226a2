package handler

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/grade-request-portal/internal/middleware"
	appErrors "github.com/noah-isme/grade-request-portal/pkg/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}

// page returns the base template data. Form and Fields are always present so
// templates can index them unconditionally.
func page(c *gin.Context, title string) gin.H {
	data := gin.H{
		"Title":  title,
		"Form":   map[string]string{},
		"Fields": map[string]string{},
	}
	if user, ok := middleware.CurrentSession(c); ok {
		data["User"] = user
	}
	return data
}

// withError fills the error message and per-field messages. Server errors
// are attached to the context for the request logger.
func withError(c *gin.Context, data gin.H, err error) int {
	appErr := appErrors.FromError(err)
	data["Error"] = appErrors.PublicMessage(appErr)
	if appErr.Fields != nil {
		data["Fields"] = appErr.Fields
	}
	if appErr.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	return appErr.Status
}

// formValues copies single-valued form input for re-rendering, skipping secrets.
func formValues(c *gin.Context, skip ...string) map[string]string {
	out := make(map[string]string, len(c.Request.PostForm))
	for key, vals := range c.Request.PostForm {
		if len(vals) > 0 {
			out[key] = vals[0]
		}
	}
	for _, key := range skip {
		delete(out, key)
	}
	return out
}

func renderError(c *gin.Context, err error) {
	data := page(c, "Something went wrong")
	c.HTML(withError(c, data, err), "error.html", data)
}
