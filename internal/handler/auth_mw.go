package handler

import (
	"net/http"
	"os"

	"github.com/QuillApp/web-service/internal/model"
	"github.com/QuillApp/web-service/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

const sessionCookie = "access_token"

// authMiddleware resolves the session cookie to a user. Anonymous requests
// are redirected to the login page with the original path as the return
// parameter, never answered with 401.
func (h *Handler) authMiddleware(c *gin.Context) {
	user := h.resolveUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, loginURL()+"?next="+c.Request.URL.Path)
		c.Abort()
		return
	}

	c.Set("user", *user)

	c.Next()
}

// optionalAuthMiddleware resolves the user when a valid session is present
// and stays silent otherwise.
func (h *Handler) optionalAuthMiddleware(c *gin.Context) {
	if user := h.resolveUser(c); user != nil {
		c.Set("user", *user)
	}

	c.Next()
}

func (h *Handler) resolveUser(c *gin.Context) *model.User {
	token, err := c.Cookie(sessionCookie)
	if err != nil || token == "" {
		return nil
	}

	claims, err := utils.DecodeJWT(token, []byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return nil
	}

	idString, ok := claims["id"].(string)
	if !ok {
		return nil
	}
	id, err := uuid.Parse(idString)
	if err != nil {
		return nil
	}

	user, err := h.services.User.FindByID(c.Request.Context(), id)
	if err != nil {
		return nil
	}

	return user
}

func loginURL() string {
	url := viper.GetString("client.login_url")
	if url == "" {
		url = "/auth/login/"
	}
	return url
}
