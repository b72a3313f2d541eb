package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/QuillApp/web-service/internal/dto"
	"github.com/QuillApp/web-service/internal/service"
	"github.com/QuillApp/web-service/internal/storage"
	"github.com/gin-gonic/gin"
)

// index serves the home listing through the page cache: a hit replays the
// previously rendered bytes, a miss renders and stores them. Expiry is
// TTL-only, so recent writes may not show until the cache rolls over.
// Keys carry the query string, each listing page is cached on its own.
func (h *Handler) index(c *gin.Context) {
	ctx := c.Request.Context()
	cacheKey := c.Request.URL.RequestURI()

	if body, _ := h.services.PageCache.Get(ctx, cacheKey); body != nil {
		c.Data(http.StatusOK, contentTypeHTML, body)
		return
	}

	page, err := h.services.Post.FindLatest(ctx, c.Query("page"))
	if err != nil {
		h.renderServerError(c)
		return
	}

	body, err := h.renderToBytes("index.html", gin.H{
		"Title": "Latest updates",
		"Page":  page,
	})
	if err != nil {
		h.logger.Sugar().Errorf("failed to render index: %s", err.Error())
		h.renderServerError(c)
		return
	}

	_ = h.services.PageCache.Set(ctx, cacheKey, body)

	c.Data(http.StatusOK, contentTypeHTML, body)
}

func (h *Handler) groupPosts(c *gin.Context) {
	group, err := h.services.Group.FindBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if err == service.ErrGroupNotFound {
			h.renderNotFound(c)
			return
		}
		h.renderServerError(c)
		return
	}

	page, err := h.services.Post.FindGroupPosts(c.Request.Context(), group.ID, c.Query("page"))
	if err != nil {
		h.renderServerError(c)
		return
	}

	h.render(c, http.StatusOK, "group_list.html", gin.H{
		"Title": "Posts of " + group.Title,
		"Group": group,
		"Page":  page,
	})
}

func (h *Handler) postDetail(c *gin.Context) {
	postID, err := parsePostID(c)
	if err != nil {
		h.renderNotFound(c)
		return
	}

	post, err := h.services.Post.FindByID(c.Request.Context(), postID)
	if err != nil {
		if err == service.ErrPostNotFound {
			h.renderNotFound(c)
			return
		}
		h.renderServerError(c)
		return
	}

	comments, err := h.services.Comment.FindPostComments(c.Request.Context(), postID)
	if err != nil {
		h.renderServerError(c)
		return
	}

	h.render(c, http.StatusOK, "post_detail.html", gin.H{
		"Post":     post,
		"Comments": comments,
		"Form":     dto.CommentForm{},
		"Errors":   dto.FieldErrors{},
	})
}

func (h *Handler) postCreateForm(c *gin.Context) {
	h.renderPostForm(c, dto.PostForm{}, dto.FieldErrors{}, false, 0)
}

func (h *Handler) postCreate(c *gin.Context) {
	user := h.getUserFromRequest(c)

	form := bindPostForm(c)
	if errs := form.Validate(); !errs.Ok() {
		// Validation failures re-render the form; they are not transport
		// errors.
		h.renderPostForm(c, form, errs, false, 0)
		return
	}

	image, _ := c.FormFile("image")

	if _, err := h.services.Post.Create(c.Request.Context(), user.ID, form, image); err != nil {
		if errs, ok := imageFieldErrors(err); ok {
			h.renderPostForm(c, form, errs, false, 0)
			return
		}
		h.renderServerError(c)
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+user.Username+"/")
}

func (h *Handler) postEditForm(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, err := parsePostID(c)
	if err != nil {
		h.renderNotFound(c)
		return
	}

	post, err := h.services.Post.FindByID(c.Request.Context(), postID)
	if err != nil {
		if err == service.ErrPostNotFound {
			h.renderNotFound(c)
			return
		}
		h.renderServerError(c)
		return
	}

	if post.Post.AuthorID != user.ID {
		redirectToPost(c, postID)
		return
	}

	form := dto.PostForm{
		Text:    post.Post.Text,
		GroupID: post.Post.GroupID,
	}
	h.renderPostForm(c, form, dto.FieldErrors{}, true, postID)
}

func (h *Handler) postEdit(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, err := parsePostID(c)
	if err != nil {
		h.renderNotFound(c)
		return
	}

	// The post must exist and belong to the requester before the form is
	// even looked at: strangers get the silent redirect, not a re-render.
	post, err := h.services.Post.FindByID(c.Request.Context(), postID)
	if err != nil {
		if err == service.ErrPostNotFound {
			h.renderNotFound(c)
			return
		}
		h.renderServerError(c)
		return
	}
	if post.Post.AuthorID != user.ID {
		redirectToPost(c, postID)
		return
	}

	form := bindPostForm(c)
	if errs := form.Validate(); !errs.Ok() {
		h.renderPostForm(c, form, errs, true, postID)
		return
	}

	image, _ := c.FormFile("image")

	if _, err := h.services.Post.Update(c.Request.Context(), postID, user.ID, form, image); err != nil {
		switch {
		case err == service.ErrPostNotFound:
			h.renderNotFound(c)
		case err == service.ErrNotPostAuthor:
			// Non-authors are turned away without an error page.
			redirectToPost(c, postID)
		default:
			if errs, ok := imageFieldErrors(err); ok {
				h.renderPostForm(c, form, errs, true, postID)
				return
			}
			h.renderServerError(c)
		}
		return
	}

	redirectToPost(c, postID)
}

func (h *Handler) postDelete(c *gin.Context) {
	user := h.getUserFromRequest(c)

	postID, err := parsePostID(c)
	if err != nil {
		h.renderNotFound(c)
		return
	}

	deleted, err := h.services.Post.Delete(c.Request.Context(), postID, user.ID)
	if err != nil {
		switch {
		case err == service.ErrPostNotFound:
			h.renderNotFound(c)
		case err == service.ErrNotPostAuthor:
			redirectToPost(c, postID)
		default:
			h.renderServerError(c)
		}
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+deleted.Author.Username+"/")
}

func (h *Handler) followIndex(c *gin.Context) {
	user := h.getUserFromRequest(c)

	page, err := h.services.Post.FindFeedPosts(c.Request.Context(), user.ID, c.Query("page"))
	if err != nil {
		h.renderServerError(c)
		return
	}

	h.render(c, http.StatusOK, "follow.html", gin.H{
		"Title": "My subscriptions",
		"Page":  page,
	})
}

func (h *Handler) renderPostForm(c *gin.Context, form dto.PostForm, errs dto.FieldErrors, isEdit bool, postID int64) {
	groups, err := h.services.Group.FindAll(c.Request.Context())
	if err != nil {
		h.renderServerError(c)
		return
	}

	h.render(c, http.StatusOK, "create_post.html", gin.H{
		"Form":   form,
		"Errors": errs,
		"Groups": groups,
		"IsEdit": isEdit,
		"PostID": postID,
	})
}

func bindPostForm(c *gin.Context) dto.PostForm {
	form := dto.PostForm{
		Text: c.PostForm("text"),
	}
	if raw := strings.TrimSpace(c.PostForm("group")); raw != "" {
		if groupID, err := strconv.ParseInt(raw, 10, 64); err == nil {
			form.GroupID = &groupID
		}
	}
	return form
}

func parsePostID(c *gin.Context) (int64, error) {
	postID, err := strconv.ParseInt(strings.TrimSpace(c.Param("postID")), 10, 64)
	if err != nil {
		return 0, errInvalidPostID
	}
	return postID, nil
}

func redirectToPost(c *gin.Context, postID int64) {
	c.Redirect(http.StatusFound, "/posts/"+strconv.FormatInt(postID, 10)+"/")
}

func imageFieldErrors(err error) (dto.FieldErrors, bool) {
	if err == storage.ErrFileMustBeImage || err == storage.ErrFileMustHaveAValidExtension {
		return dto.FieldErrors{{Field: "image", Message: err.Error()}}, true
	}
	return nil, false
}
