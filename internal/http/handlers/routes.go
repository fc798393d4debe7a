package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"logisticshub/internal/domain/models"
)

type routeResponse struct {
	models.Route
	NeedsReview bool `json:"needs_review"`
}

type resolveRouteRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// GET /api/routes. Auto-created routes are flagged until distance and price
// are filled in.
func ListRoutes(c *gin.Context) {
	routes, err := masterDataService(c).ListRoutes(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out := make([]routeResponse, 0, len(routes))
	for _, r := range routes {
		out = append(out, routeResponse{Route: r, NeedsReview: r.NeedsReview()})
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/routes
func CreateRoute(c *gin.Context) {
	var in models.Route
	if !BindJSONOrError(c, &in) {
		return
	}
	id, err := masterDataService(c).CreateRoute(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// PUT /api/routes/:id
func UpdateRoute(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in models.Route
	if !BindJSONOrError(c, &in) {
		return
	}
	in.ID = id
	if err := masterDataService(c).UpdateRoute(c.Request.Context(), in); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// DELETE /api/routes/:id
func DeleteRoute(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := masterDataService(c).DeleteRoute(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/routes/resolve returns the route id for a pair, creating it when new.
func ResolveRoute(c *gin.Context) {
	var req resolveRouteRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	id, created, err := routeService(c).ResolveOrCreate(c.Request.Context(), req.Origin, req.Destination)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"route_id": id, "created": created})
}
