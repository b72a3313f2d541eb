package handler

import (
	"html/template"

	"github.com/QuillApp/web-service/internal/model"
	"github.com/QuillApp/web-service/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	services *service.Service
	logger   *zap.Logger
	tmpl     *template.Template
}

func New(services *service.Service, logger *zap.Logger) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		tmpl:     mustParseTemplates(),
	}
}

func (h *Handler) InitRoutes(mediaDir string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Static("/media", mediaDir)

	r.GET("/", h.index)
	r.GET("/group/:slug/", h.groupPosts)

	profile := r.Group("/profile/:username")
	{
		profile.GET("/", h.optionalAuthMiddleware, h.profile)
		profile.GET("/follow/", h.authMiddleware, h.profileFollow)
		profile.GET("/unfollow/", h.authMiddleware, h.profileUnfollow)
	}

	r.GET("/create/", h.authMiddleware, h.postCreateForm)
	r.POST("/create/", h.authMiddleware, h.postCreate)

	posts := r.Group("/posts/:postID")
	{
		posts.GET("/", h.postDetail)
		posts.GET("/edit/", h.authMiddleware, h.postEditForm)
		posts.POST("/edit/", h.authMiddleware, h.postEdit)
		posts.POST("/delete/", h.authMiddleware, h.postDelete)
		posts.POST("/comment/", h.authMiddleware, h.addComment)
	}

	r.GET("/follow/", h.authMiddleware, h.followIndex)

	r.GET("/groups/", h.groupsInfo)
	r.GET("/authors/", h.authorsInfo)
	r.GET("/about/author/", h.aboutAuthor)
	r.GET("/about/tech/", h.aboutTech)

	r.NoRoute(h.renderNotFound)

	return r
}

func (h *Handler) getUserFromRequest(c *gin.Context) *model.User {
	userReq, _ := c.Get("user")

	user, ok := userReq.(model.User)
	if !ok {
		return nil
	}

	return &user
}
