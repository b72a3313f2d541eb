package handler

import (
	"net/http"

	"github.com/QuillApp/web-service/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) profile(c *gin.Context) {
	username := c.Param("username")

	var viewerID *uuid.UUID
	if user := h.getUserFromRequest(c); user != nil {
		viewerID = &user.ID
	}

	profile, err := h.services.User.ProfileOf(c.Request.Context(), username, viewerID)
	if err != nil {
		if err == service.ErrUserNotFound {
			h.renderNotFound(c)
			return
		}
		h.renderServerError(c)
		return
	}

	page, err := h.services.Post.FindAuthorPosts(c.Request.Context(), profile.Author.ID, c.Query("page"))
	if err != nil {
		h.renderServerError(c)
		return
	}

	h.render(c, http.StatusOK, "profile.html", gin.H{
		"Profile": profile,
		"Page":    page,
	})
}

func (h *Handler) profileFollow(c *gin.Context) {
	user := h.getUserFromRequest(c)
	username := c.Param("username")

	if err := h.services.Follow.Follow(c.Request.Context(), user.ID, username); err != nil {
		if err == service.ErrUserNotFound {
			h.renderNotFound(c)
			return
		}
		h.renderServerError(c)
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+username+"/")
}

func (h *Handler) profileUnfollow(c *gin.Context) {
	user := h.getUserFromRequest(c)
	username := c.Param("username")

	if err := h.services.Follow.Unfollow(c.Request.Context(), user.ID, username); err != nil {
		h.renderServerError(c)
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+username+"/")
}
