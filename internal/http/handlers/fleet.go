package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"logisticshub/internal/domain/models"
)

// GET /api/drivers
func ListDrivers(c *gin.Context) {
	out, err := masterDataService(c).ListDrivers(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/drivers
func CreateDriver(c *gin.Context) {
	in := models.Driver{Active: true}
	if !BindJSONOrError(c, &in) {
		return
	}
	id, err := masterDataService(c).CreateDriver(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// PUT /api/drivers/:id
func UpdateDriver(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in models.Driver
	if !BindJSONOrError(c, &in) {
		return
	}
	in.ID = id
	if err := masterDataService(c).UpdateDriver(c.Request.Context(), in); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// DELETE /api/drivers/:id
func DeleteDriver(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := masterDataService(c).DeleteDriver(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/trucks
func ListTrucks(c *gin.Context) {
	out, err := masterDataService(c).ListTrucks(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/trucks
func CreateTruck(c *gin.Context) {
	var in models.Truck
	if !BindJSONOrError(c, &in) {
		return
	}
	id, err := masterDataService(c).CreateTruck(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// PUT /api/trucks/:id
func UpdateTruck(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in models.Truck
	if !BindJSONOrError(c, &in) {
		return
	}
	in.ID = id
	if err := masterDataService(c).UpdateTruck(c.Request.Context(), in); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// DELETE /api/trucks/:id
func DeleteTruck(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := masterDataService(c).DeleteTruck(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
