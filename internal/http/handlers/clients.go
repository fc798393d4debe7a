package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"logisticshub/internal/domain/models"
)

// GET /api/clients
func ListClients(c *gin.Context) {
	out, err := masterDataService(c).ListClients(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/clients
func CreateClient(c *gin.Context) {
	var in models.Client
	if !BindJSONOrError(c, &in) {
		return
	}
	id, err := masterDataService(c).CreateClient(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// PUT /api/clients/:id
func UpdateClient(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in models.Client
	if !BindJSONOrError(c, &in) {
		return
	}
	in.ID = id
	if err := masterDataService(c).UpdateClient(c.Request.Context(), in); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// DELETE /api/clients/:id
func DeleteClient(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := masterDataService(c).DeleteClient(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
