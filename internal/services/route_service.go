package services

import (
	"context"
	"fmt"

	"logisticshub/internal/cache"
	"logisticshub/internal/domain"
	"logisticshub/internal/repositories"
	"logisticshub/internal/utils"
)

// ErrNoRoute is returned when origin or destination is blank or a missing-value marker.
var ErrNoRoute = domain.ValidationError{Field: "route", Msg: "origin and destination are required"}

var missingMarkers = map[string]struct{}{
	"NAN":   {},
	"NONE":  {},
	"NULL":  {},
	"<NIL>": {},
	"NAT":   {},
}

func normalizeRouteEnd(s string) (string, error) {
	v := utils.NormalizePlace(s)
	if v == "" {
		return "", ErrNoRoute
	}
	if _, ok := missingMarkers[v]; ok {
		return "", ErrNoRoute
	}
	return v, nil
}

type RouteService struct {
	Repo      repositories.RouteRepository
	Cache     cache.Store
	RequestID string
}

// ResolveOrCreate returns the id of the (origin, destination) route, inserting
// it with zero distance and price when it does not exist yet. created tells the
// caller a route now needs manual completion.
func (s RouteService) ResolveOrCreate(ctx context.Context, origin, destination string) (routeID int64, created bool, err error) {
	o, err := normalizeRouteEnd(origin)
	if err != nil {
		return 0, false, err
	}
	d, err := normalizeRouteEnd(destination)
	if err != nil {
		return 0, false, err
	}

	routeID, created, err = s.Repo.Upsert(ctx, o, d)
	if err != nil {
		return 0, false, err
	}
	if created {
		invalidate(ctx, storeOr(s.Cache), tableRoutes)
		utils.LogWarn(s.RequestID, "routes", "auto_create", fmt.Sprintf("route created: %s -> %s (id=%d)", o, d, routeID))
	}
	return routeID, created, nil
}
