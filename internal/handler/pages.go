package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) groupsInfo(c *gin.Context) {
	groups, err := h.services.Group.FindAll(c.Request.Context())
	if err != nil {
		h.renderServerError(c)
		return
	}

	h.render(c, http.StatusOK, "groups_info.html", gin.H{
		"Title":  "All groups",
		"Groups": groups,
	})
}

func (h *Handler) authorsInfo(c *gin.Context) {
	authors, err := h.services.User.FindAll(c.Request.Context())
	if err != nil {
		h.renderServerError(c)
		return
	}

	h.render(c, http.StatusOK, "authors_info.html", gin.H{
		"Title":   "All authors",
		"Authors": authors,
	})
}

func (h *Handler) aboutAuthor(c *gin.Context) {
	h.render(c, http.StatusOK, "about_author.html", gin.H{
		"Title": "About the author",
	})
}

func (h *Handler) aboutTech(c *gin.Context) {
	h.render(c, http.StatusOK, "about_tech.html", gin.H{
		"Title": "Technologies",
	})
}
