package handler

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

const contentTypeHTML = "text/html; charset=utf-8"

func mustParseTemplates() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
}

// renderToBytes renders through a buffer so the index handler can store the
// exact response body in the page cache.
func (h *Handler) renderToBytes(name string, data gin.H) ([]byte, error) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (h *Handler) render(c *gin.Context, status int, name string, data gin.H) {
	body, err := h.renderToBytes(name, data)
	if err != nil {
		h.logger.Sugar().Errorf("failed to render template(%s): %s", name, err.Error())
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	c.Data(status, contentTypeHTML, body)
}

func (h *Handler) renderNotFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "404.html", gin.H{
		"Title": "Page not found",
		"Path":  c.Request.URL.Path,
	})
}

func (h *Handler) renderServerError(c *gin.Context) {
	h.render(c, http.StatusInternalServerError, "500.html", gin.H{
		"Title": "Server error",
	})
}
