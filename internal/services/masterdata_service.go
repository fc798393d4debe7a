package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"logisticshub/internal/cache"
	"logisticshub/internal/domain"
	"logisticshub/internal/domain/models"
	"logisticshub/internal/repositories"
	"logisticshub/internal/utils"
)

// MasterDataService owns clients, routes, drivers, trucks and tariffs. Lists
// are read through the cache and every write drops the affected tables.
type MasterDataService struct {
	Clients repositories.ClientRepository
	Routes  repositories.RouteRepository
	Drivers repositories.DriverRepository
	Trucks  repositories.TruckRepository
	Tariffs repositories.TariffRepository

	Cache     cache.Store
	RequestID string
}

func (s MasterDataService) store() cache.Store { return storeOr(s.Cache) }

func (s MasterDataService) written(ctx context.Context, action string, tables ...string) {
	invalidate(ctx, s.store(), tables...)
	utils.LogEvent(s.RequestID, "masterdata", action, "invalidated "+strings.Join(tables, ","))
}

// ---- clients ----

func (s MasterDataService) ListClients(ctx context.Context) ([]models.Client, error) {
	return readThrough(ctx, s.store(), tableClients, s.Clients.List)
}

func (s MasterDataService) GetClient(ctx context.Context, id int64) (models.Client, error) {
	return s.Clients.Get(ctx, id)
}

func validateClient(c models.Client) error {
	if strings.TrimSpace(c.Name) == "" {
		return domain.ValidationError{Field: "name", Msg: "required"}
	}
	return nil
}

func (s MasterDataService) CreateClient(ctx context.Context, c models.Client) (int64, error) {
	if err := validateClient(c); err != nil {
		return 0, err
	}
	id, err := s.Clients.Create(ctx, c)
	if err != nil {
		return 0, err
	}
	s.written(ctx, "create_client", tableClients)
	return id, nil
}

func (s MasterDataService) UpdateClient(ctx context.Context, c models.Client) error {
	if err := validateClient(c); err != nil {
		return err
	}
	if err := s.Clients.Update(ctx, c); err != nil {
		return err
	}
	s.written(ctx, "update_client", tableClients, tableTariffs)
	return nil
}

func (s MasterDataService) DeleteClient(ctx context.Context, id int64) error {
	if err := s.Clients.Delete(ctx, id); err != nil {
		return err
	}
	s.written(ctx, "delete_client", tableClients, tableTariffs)
	return nil
}

// ---- routes ----

func (s MasterDataService) ListRoutes(ctx context.Context) ([]models.Route, error) {
	return readThrough(ctx, s.store(), tableRoutes, s.Routes.List)
}

func validateRoute(r models.Route) error {
	if _, err := normalizeRouteEnd(r.Origin); err != nil {
		return domain.ValidationError{Field: "origin", Msg: "required"}
	}
	if _, err := normalizeRouteEnd(r.Destination); err != nil {
		return domain.ValidationError{Field: "destination", Msg: "required"}
	}
	if r.DistanceKm < 0 {
		return domain.ValidationError{Field: "distance_km", Msg: "must not be negative"}
	}
	if r.SuggestedPrice.IsNegative() {
		return domain.ValidationError{Field: "suggested_price", Msg: "must not be negative"}
	}
	return nil
}

func (s MasterDataService) CreateRoute(ctx context.Context, r models.Route) (int64, error) {
	if err := validateRoute(r); err != nil {
		return 0, err
	}
	id, err := s.Routes.Create(ctx, r)
	if err != nil {
		return 0, err
	}
	s.written(ctx, "create_route", tableRoutes)
	return id, nil
}

func (s MasterDataService) UpdateRoute(ctx context.Context, r models.Route) error {
	if err := validateRoute(r); err != nil {
		return err
	}
	if err := s.Routes.Update(ctx, r); err != nil {
		return err
	}
	s.written(ctx, "update_route", tableRoutes, tableTariffs)
	return nil
}

func (s MasterDataService) DeleteRoute(ctx context.Context, id int64) error {
	if err := s.Routes.Delete(ctx, id); err != nil {
		return err
	}
	s.written(ctx, "delete_route", tableRoutes, tableTariffs)
	return nil
}

// ---- drivers ----

func (s MasterDataService) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	return readThrough(ctx, s.store(), tableDrivers, s.Drivers.List)
}

func (s MasterDataService) CreateDriver(ctx context.Context, d models.Driver) (int64, error) {
	if strings.TrimSpace(d.Name) == "" {
		return 0, domain.ValidationError{Field: "name", Msg: "required"}
	}
	id, err := s.Drivers.Create(ctx, d)
	if err != nil {
		return 0, err
	}
	s.written(ctx, "create_driver", tableDrivers)
	return id, nil
}

func (s MasterDataService) UpdateDriver(ctx context.Context, d models.Driver) error {
	if strings.TrimSpace(d.Name) == "" {
		return domain.ValidationError{Field: "name", Msg: "required"}
	}
	if err := s.Drivers.Update(ctx, d); err != nil {
		return err
	}
	s.written(ctx, "update_driver", tableDrivers)
	return nil
}

func (s MasterDataService) DeleteDriver(ctx context.Context, id int64) error {
	if err := s.Drivers.Delete(ctx, id); err != nil {
		return err
	}
	s.written(ctx, "delete_driver", tableDrivers)
	return nil
}

// ---- trucks ----

func (s MasterDataService) ListTrucks(ctx context.Context) ([]models.Truck, error) {
	return readThrough(ctx, s.store(), tableTrucks, s.Trucks.List)
}

func validateTruck(t models.Truck) error {
	if strings.TrimSpace(t.Plate) == "" {
		return domain.ValidationError{Field: "plate", Msg: "required"}
	}
	if t.Year != 0 && (t.Year < 1950 || t.Year > 2100) {
		return domain.ValidationError{Field: "year", Msg: "out of range"}
	}
	if t.ExpectedKmPerLiter.IsNegative() {
		return domain.ValidationError{Field: "expected_km_per_liter", Msg: "must not be negative"}
	}
	return nil
}

func (s MasterDataService) CreateTruck(ctx context.Context, t models.Truck) (int64, error) {
	if err := validateTruck(t); err != nil {
		return 0, err
	}
	id, err := s.Trucks.Create(ctx, t)
	if err != nil {
		return 0, err
	}
	s.written(ctx, "create_truck", tableTrucks)
	return id, nil
}

func (s MasterDataService) UpdateTruck(ctx context.Context, t models.Truck) error {
	if err := validateTruck(t); err != nil {
		return err
	}
	if err := s.Trucks.Update(ctx, t); err != nil {
		return err
	}
	s.written(ctx, "update_truck", tableTrucks)
	return nil
}

func (s MasterDataService) DeleteTruck(ctx context.Context, id int64) error {
	if err := s.Trucks.Delete(ctx, id); err != nil {
		return err
	}
	s.written(ctx, "delete_truck", tableTrucks)
	return nil
}

// ---- tariffs ----

func (s MasterDataService) ListTariffs(ctx context.Context) ([]models.TariffView, error) {
	return readThrough(ctx, s.store(), tableTariffs, s.Tariffs.List)
}

// UpsertTariff stores the agreed price for the pair, replacing the previous one.
func (s MasterDataService) UpsertTariff(ctx context.Context, clientID, routeID int64, price decimal.Decimal) error {
	if clientID <= 0 {
		return domain.ValidationError{Field: "client_id", Msg: "required"}
	}
	if routeID <= 0 {
		return domain.ValidationError{Field: "route_id", Msg: "required"}
	}
	if price.IsNegative() {
		return domain.ValidationError{Field: "agreed_price", Msg: "must not be negative"}
	}
	if err := s.Tariffs.Upsert(ctx, clientID, routeID, price); err != nil {
		return err
	}
	s.written(ctx, fmt.Sprintf("upsert_tariff client=%d route=%d", clientID, routeID), tableTariffs)
	return nil
}

func (s MasterDataService) DeleteTariff(ctx context.Context, clientID, routeID int64) error {
	if err := s.Tariffs.Delete(ctx, clientID, routeID); err != nil {
		return err
	}
	s.written(ctx, "delete_tariff", tableTariffs)
	return nil
}
