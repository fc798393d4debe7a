package services

import (
	"context"
	"time"

	"logisticshub/internal/domain"
	"logisticshub/internal/repositories"
)

type Dashboard struct {
	ProfitLoss     domain.ProfitLoss     `json:"profit_loss"`
	Monthly        []domain.MonthlyPoint `json:"monthly"`
	CostStructure  []domain.CostSlice    `json:"cost_structure"`
	AvailableYears []int                 `json:"available_years"`
	Rates          domain.Rates          `json:"rates"`
}

type DashboardService struct {
	Trips    repositories.TripRepository
	Expenses repositories.ExpenseRepository
	Now      func() time.Time
}

func (s DashboardService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Summary recomputes every figure from the trips and expenses in period.
func (s DashboardService) Summary(ctx context.Context, period domain.Period, rates domain.Rates) (Dashboard, error) {
	if err := period.Validate(); err != nil {
		return Dashboard{}, err
	}
	trips, err := s.Trips.RevenueLines(ctx, period)
	if err != nil {
		return Dashboard{}, err
	}
	expenses, err := s.Expenses.ExpenseLines(ctx, period)
	if err != nil {
		return Dashboard{}, err
	}
	years, err := s.Trips.Years(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	pl := domain.ComputeProfitLoss(trips, expenses, period, rates)
	return Dashboard{
		ProfitLoss:     pl,
		Monthly:        domain.MonthlySeries(trips, expenses, rates),
		CostStructure:  domain.CostStructure(pl),
		AvailableYears: domain.AvailableYears(years, s.now()),
		Rates:          rates,
	}, nil
}
