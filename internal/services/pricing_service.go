package services

import (
	"context"

	"github.com/shopspring/decimal"

	"logisticshub/internal/cache"
	"logisticshub/internal/domain/models"
	"logisticshub/internal/repositories"
)

type PriceSource string

const (
	PriceFromTariff       PriceSource = "tariff"
	PriceFromRouteDefault PriceSource = "route_default"
	PriceNone             PriceSource = "none"
	// PriceFromSheet marks imported amounts taken from the spreadsheet itself.
	PriceFromSheet PriceSource = "sheet"
	PriceManual    PriceSource = "manual"
)

// PriceBook is a snapshot of tariffs and route defaults.
type PriceBook struct {
	tariffs map[[2]int64]decimal.Decimal
	routes  map[int64]decimal.Decimal
}

func NewPriceBook(tariffs []models.TariffView, routes []models.Route) PriceBook {
	b := PriceBook{
		tariffs: make(map[[2]int64]decimal.Decimal, len(tariffs)),
		routes:  make(map[int64]decimal.Decimal, len(routes)),
	}
	for _, t := range tariffs {
		b.tariffs[[2]int64{t.ClientID, t.RouteID}] = t.AgreedPrice
	}
	for _, r := range routes {
		b.routes[r.ID] = r.SuggestedPrice
	}
	return b
}

// Resolve returns the client's agreed tariff for the route, else the route's
// suggested price, else zero.
func (b PriceBook) Resolve(clientID, routeID int64) (decimal.Decimal, PriceSource) {
	if p, ok := b.tariffs[[2]int64{clientID, routeID}]; ok {
		return p, PriceFromTariff
	}
	if p, ok := b.routes[routeID]; ok {
		return p, PriceFromRouteDefault
	}
	return decimal.Zero, PriceNone
}

type PricingService struct {
	Tariffs repositories.TariffRepository
	Routes  repositories.RouteRepository
	Cache   cache.Store
}

func (s PricingService) Book(ctx context.Context) (PriceBook, error) {
	store := storeOr(s.Cache)
	tariffs, err := readThrough(ctx, store, tableTariffs, s.Tariffs.List)
	if err != nil {
		return PriceBook{}, err
	}
	routes, err := readThrough(ctx, store, tableRoutes, s.Routes.List)
	if err != nil {
		return PriceBook{}, err
	}
	return NewPriceBook(tariffs, routes), nil
}

// ResolvePrice reads the latest snapshot; a zero result means the trip needs
// a manual price.
func (s PricingService) ResolvePrice(ctx context.Context, clientID, routeID int64) (decimal.Decimal, PriceSource, error) {
	book, err := s.Book(ctx)
	if err != nil {
		return decimal.Zero, PriceNone, err
	}
	p, src := book.Resolve(clientID, routeID)
	return p, src, nil
}
