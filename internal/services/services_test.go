package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"beverage-backend/internal/models"
)

// setupTestDB opens a unique in-memory database per test to avoid
// cross-test collisions. TranslateError matches the production gorm.Config
// so unique violations surface as gorm.ErrDuplicatedKey here too.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
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

func newServices(t *testing.T) (*gorm.DB, *CatalogService, *PricingService, *OrderService) {
	t.Helper()
	db := setupTestDB(t)
	catalog := NewCatalogService(db)
	pricing := NewPricingService(db, catalog)
	orders := NewOrderService(db, pricing, nil)
	return db, catalog, pricing, orders
}
