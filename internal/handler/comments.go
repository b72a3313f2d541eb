package handler

import (
	"github.com/QuillApp/web-service/internal/dto"
	"github.com/QuillApp/web-service/internal/service"
	"github.com/gin-gonic/gin"
)

func (h *Handler) addComment(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, err := parsePostID(c)
	if err != nil {
		h.renderNotFound(c)
		return
	}

	form := dto.CommentForm{
		Text: c.PostForm("text"),
	}

	// An empty comment is dropped silently: the post page is re-shown with
	// no error surfaced.
	if errs := form.Validate(); !errs.Ok() {
		redirectToPost(c, postID)
		return
	}

	if _, err := h.services.Comment.Create(c.Request.Context(), postID, user.ID, form); err != nil {
		if err == service.ErrPostNotFound {
			h.renderNotFound(c)
			return
		}
		h.renderServerError(c)
		return
	}

	redirectToPost(c, postID)
}
