package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"logisticshub/internal/domain"
)

type tariffRequest struct {
	ClientID    int64           `json:"client_id"`
	RouteID     int64           `json:"route_id"`
	AgreedPrice decimal.Decimal `json:"agreed_price"`
}

// GET /api/tariffs
func ListTariffs(c *gin.Context) {
	out, err := masterDataService(c).ListTariffs(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/tariffs sets or replaces the agreed price of a client and route.
func UpsertTariff(c *gin.Context) {
	var req tariffRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := masterDataService(c).UpsertTariff(c.Request.Context(), req.ClientID, req.RouteID, req.AgreedPrice); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// DELETE /api/tariffs/:clientId/:routeId
func DeleteTariff(c *gin.Context) {
	clientID, ok := pathID(c, "clientId")
	if !ok {
		return
	}
	routeID, ok := pathID(c, "routeId")
	if !ok {
		return
	}
	if err := masterDataService(c).DeleteTariff(c.Request.Context(), clientID, routeID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/tariffs/price?client_id=&route_id=
func ResolvePrice(c *gin.Context) {
	clientID, err := queryInt64(c, "client_id")
	if err == nil && clientID == 0 {
		err = domain.ValidationError{Field: "client_id", Msg: "required"}
	}
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	routeID, err := queryInt64(c, "route_id")
	if err == nil && routeID == 0 {
		err = domain.ValidationError{Field: "route_id", Msg: "required"}
	}
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	price, source, err := pricingService().ResolvePrice(c.Request.Context(), clientID, routeID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"client_id":    clientID,
		"route_id":     routeID,
		"price":        price,
		"source":       source,
		"needs_review": price.IsZero(),
	})
}
