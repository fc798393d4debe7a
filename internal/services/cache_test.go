package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"logisticshub/internal/cache"
	"logisticshub/internal/domain/models"
)

func TestReadThroughDropsSnapshotInvalidatedDuringLoad(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewMemory(time.Minute)

	tariffAt := func(price int64) []models.TariffView {
		return []models.TariffView{{Tariff: models.Tariff{ClientID: 3, RouteID: 7, AgreedPrice: decimal.NewFromInt(price)}}}
	}
	stored := int64(500000)

	// the load reads 500000, then a tariff upsert commits 650000 and
	// invalidates before the load returns its snapshot
	_, err := readThrough(ctx, mem, tableTariffs, func(ctx context.Context) ([]models.TariffView, error) {
		snapshot := tariffAt(stored)
		stored = 650000
		invalidate(ctx, mem, tableTariffs)
		return snapshot, nil
	})
	if err != nil {
		t.Fatalf("first read: %v", err)
	}

	loads := 0
	tariffs, err := readThrough(ctx, mem, tableTariffs, func(context.Context) ([]models.TariffView, error) {
		loads++
		return tariffAt(stored), nil
	})
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if loads != 1 {
		t.Fatalf("expected a reload after the invalidation, got %d loads", loads)
	}

	price, src := NewPriceBook(tariffs, nil).Resolve(3, 7)
	if !price.Equal(decimal.NewFromInt(650000)) || src != PriceFromTariff {
		t.Fatalf("expected tariff 650000, got %s (%s)", price, src)
	}

	// the fresh snapshot was cached at the new version
	tariffs, err = readThrough(ctx, mem, tableTariffs, func(context.Context) ([]models.TariffView, error) {
		t.Fatalf("unexpected load on a warm cache")
		return nil, nil
	})
	if err != nil {
		t.Fatalf("third read: %v", err)
	}
	if price, _ := NewPriceBook(tariffs, nil).Resolve(3, 7); !price.Equal(decimal.NewFromInt(650000)) {
		t.Fatalf("expected cached 650000, got %s", price)
	}
}
