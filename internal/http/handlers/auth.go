package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"logisticshub/internal/http/middleware"
	"logisticshub/internal/utils"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := authService(c).Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/auth/logout. Tokens are stateless; the client drops its copy.
func Logout(c *gin.Context) {
	s := session(c)
	utils.LogEvent(middleware.GetRequestID(c), "auth", "logout", "user="+s.Username)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// GET /api/auth/me
func Me(c *gin.Context) {
	c.JSON(http.StatusOK, session(c))
}
