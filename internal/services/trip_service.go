package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"logisticshub/internal/domain"
	"logisticshub/internal/domain/models"
	"logisticshub/internal/repositories"
	"logisticshub/internal/utils"
)

type TripInput struct {
	TripDate  string          `json:"trip_date"`
	ClientID  int64           `json:"client_id"`
	RouteID   int64           `json:"route_id"`
	DriverID  *int64          `json:"driver_id"`
	TruckID   *int64          `json:"truck_id"`
	Status    string          `json:"status"`
	NetAmount decimal.Decimal `json:"net_amount"`
	Notes     string          `json:"notes"`
}

type TripSaved struct {
	ID          int64           `json:"id"`
	NetAmount   decimal.Decimal `json:"net_amount"`
	PriceSource PriceSource     `json:"price_source"`
	NeedsReview bool            `json:"needs_review"`
}

type BulkDeleteResult struct {
	Requested []int64 `json:"requested"`
	Deleted   int64   `json:"deleted"`
}

type TripService struct {
	Repo      repositories.TripRepository
	Pricing   PricingService
	RequestID string
}

func (s TripService) List(ctx context.Context, period domain.Period, clientID int64, limit int) ([]models.TripView, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	f := repositories.TripFilter{ClientID: clientID, Limit: limit}
	if from, to, ok := period.Bounds(); ok {
		f.From, f.To = from, to
	}
	return s.Repo.List(ctx, f)
}

func (s TripService) Get(ctx context.Context, id int64) (models.TripView, error) {
	return s.Repo.Get(ctx, id)
}

func (in TripInput) toTrip() (models.Trip, error) {
	date, err := utils.ParseDate(in.TripDate)
	if err != nil {
		return models.Trip{}, domain.ValidationError{Field: "trip_date", Msg: "expected YYYY-MM-DD"}
	}
	if in.ClientID <= 0 {
		return models.Trip{}, domain.ValidationError{Field: "client_id", Msg: "required"}
	}
	if in.RouteID <= 0 {
		return models.Trip{}, domain.ValidationError{Field: "route_id", Msg: "required"}
	}
	if in.NetAmount.IsNegative() {
		return models.Trip{}, domain.ValidationError{Field: "net_amount", Msg: "must not be negative"}
	}
	status := models.TripStatus(strings.TrimSpace(in.Status))
	if status == "" {
		status = models.TripScheduled
	}
	if !status.Valid() {
		return models.Trip{}, domain.ValidationError{Field: "status", Msg: "must be Scheduled, In-Transit or Completed"}
	}
	return models.Trip{
		TripDate:  date,
		ClientID:  in.ClientID,
		RouteID:   in.RouteID,
		DriverID:  in.DriverID,
		TruckID:   in.TruckID,
		Status:    status,
		NetAmount: in.NetAmount,
		Notes:     strings.TrimSpace(in.Notes),
	}, nil
}

// Create stores a manual trip. Without an amount the price resolver sets it.
func (s TripService) Create(ctx context.Context, session domain.Session, in TripInput) (TripSaved, error) {
	t, err := in.toTrip()
	if err != nil {
		return TripSaved{}, err
	}
	source := PriceManual
	if t.NetAmount.IsZero() {
		t.NetAmount, source, err = s.Pricing.ResolvePrice(ctx, t.ClientID, t.RouteID)
		if err != nil {
			return TripSaved{}, err
		}
	}
	id, err := s.Repo.Create(ctx, t)
	if err != nil {
		return TripSaved{}, err
	}
	utils.LogEvent(s.RequestID, "trips", "create",
		fmt.Sprintf("user=%s id=%d client=%d route=%d source=%s", session.Username, id, t.ClientID, t.RouteID, source))
	return TripSaved{ID: id, NetAmount: t.NetAmount, PriceSource: source, NeedsReview: t.NetAmount.IsZero()}, nil
}

// Update overwrites the whole row; the amount is stored as given.
func (s TripService) Update(ctx context.Context, session domain.Session, id int64, in TripInput) error {
	t, err := in.toTrip()
	if err != nil {
		return err
	}
	t.ID = id
	if err := s.Repo.Update(ctx, t); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "trips", "update", fmt.Sprintf("user=%s id=%d", session.Username, id))
	return nil
}

func (s TripService) Delete(ctx context.Context, session domain.Session, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "trips", "delete", fmt.Sprintf("user=%s id=%d", session.Username, id))
	return nil
}

// BulkDelete removes every trip named by an id expression like "10, 12-15, 20".
func (s TripService) BulkDelete(ctx context.Context, session domain.Session, expr string) (BulkDeleteResult, error) {
	ids := utils.ParseIDList(expr)
	if len(ids) == 0 {
		return BulkDeleteResult{}, domain.ValidationError{Field: "ids", Msg: "no valid ids in expression"}
	}
	n, err := s.Repo.DeleteMany(ctx, ids)
	if err != nil {
		return BulkDeleteResult{}, err
	}
	utils.LogEvent(s.RequestID, "trips", "bulk_delete",
		fmt.Sprintf("user=%s requested=%d deleted=%d expr=%q", session.Username, len(ids), n, expr))
	return BulkDeleteResult{Requested: ids, Deleted: n}, nil
}

