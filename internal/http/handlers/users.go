package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type createUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type passwordRequest struct {
	Password string `json:"password" binding:"required"`
}

// GET /api/users
func ListUsers(c *gin.Context) {
	users, err := userService(c).List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// POST /api/users
func CreateUser(c *gin.Context) {
	var req createUserRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	id, err := userService(c).Create(c.Request.Context(), session(c).Username, req.Username, req.Password, req.Role)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// PUT /api/users/:id/password
func ChangePassword(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req passwordRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := userService(c).ChangePassword(c.Request.Context(), session(c), id, req.Password); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

// DELETE /api/users/:id deactivates the account; history keeps the row.
func DeactivateUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := userService(c).Deactivate(c.Request.Context(), session(c), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
