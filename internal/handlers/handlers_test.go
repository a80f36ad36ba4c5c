package handlers

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"beverage-backend/internal/models"
	"beverage-backend/internal/services"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fixture struct {
	catalog *services.CatalogService
	pricing *services.PricingService
	orders  *services.OrderService

	catalogH *CatalogHandler
	pricingH *PricingHandler
	orderH   *OrderHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupTestDB(t)
	catalog := services.NewCatalogService(db)
	pricing := services.NewPricingService(db, catalog)
	orders := services.NewOrderService(db, pricing, nil)
	return &fixture{
		catalog:  catalog,
		pricing:  pricing,
		orders:   orders,
		catalogH: NewCatalogHandler(catalog),
		pricingH: NewPricingHandler(pricing),
		orderH:   NewOrderHandler(orders),
	}
}

// seedPricedBeverage creates a Lemonade/Medium pair priced at 3.00 and
// returns the ids.
func (f *fixture) seedPricedBeverage(t *testing.T) (typeID, sizeID string) {
	t.Helper()
	ctx := context.Background()
	bt, err := f.catalog.CreateType(ctx, "Lemonade")
	if err != nil {
		t.Fatalf("seed type: %v", err)
	}
	bs, err := f.catalog.CreateSize(ctx, "Medium")
	if err != nil {
		t.Fatalf("seed size: %v", err)
	}
	if _, err := f.pricing.CreateLink(ctx, bt.ID, bs.ID, models.MustPrice("3.00")); err != nil {
		t.Fatalf("seed link: %v", err)
	}
	return bt.ID.String(), bs.ID.String()
}
