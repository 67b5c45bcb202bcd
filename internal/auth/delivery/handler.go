package delivery

import (
	"net/http"

	authdomain "qisqa-backend/internal/auth/domain"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// Me returns the profile of the authenticated caller
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": authdomain.UnauthenticatedMessage})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
