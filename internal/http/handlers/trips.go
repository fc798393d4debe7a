package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"logisticshub/internal/services"
)

type bulkDeleteRequest struct {
	IDs string `json:"ids" binding:"required"`
}

// GET /api/trips?year=&month=&client_id=&limit=
func ListTrips(c *gin.Context) {
	period, err := periodFromQuery(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	clientID, err := queryInt64(c, "client_id")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	limit, err := queryInt64(c, "limit")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	trips, err := tripService(c).List(c.Request.Context(), period, clientID, int(limit))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

// GET /api/trips/:id
func GetTrip(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	trip, err := tripService(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// POST /api/trips. A zero or missing net_amount is priced from the tariffs.
func CreateTrip(c *gin.Context) {
	var in services.TripInput
	if !BindJSONOrError(c, &in) {
		return
	}
	saved, err := tripService(c).Create(c.Request.Context(), session(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// PUT /api/trips/:id
func UpdateTrip(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in services.TripInput
	if !BindJSONOrError(c, &in) {
		return
	}
	if err := tripService(c).Update(c.Request.Context(), session(c), id, in); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// DELETE /api/trips/:id
func DeleteTrip(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := tripService(c).Delete(c.Request.Context(), session(c), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/trips/bulk-delete {"ids": "10, 12-15, 20"}
func BulkDeleteTrips(c *gin.Context) {
	var req bulkDeleteRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := tripService(c).BulkDelete(c.Request.Context(), session(c), req.IDs)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/trips/export.xlsx?year=&month=&client_id=
func ExportTrips(c *gin.Context) {
	period, err := periodFromQuery(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	clientID, err := queryInt64(c, "client_id")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	data, filename, err := exportService(c).TripsXLSX(c.Request.Context(), period, clientID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	sendFile(c, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "attachment", filename, data)
}
