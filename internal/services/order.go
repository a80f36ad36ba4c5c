package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"beverage-backend/internal/models"
)

// OrderItemRequest is one requested line of a draft order.
type OrderItemRequest struct {
	BeverageTypeID uuid.UUID
	BeverageSizeID uuid.UUID
	Quantity       int
}

// OrderService places and reads customer orders. An order has exactly two
// observable states: absent and finalized. Placement writes the order and
// every item in one transaction, so no caller ever sees a partial order.
type OrderService struct {
	db      *gorm.DB
	pricing *PricingService
	confirm ConfirmationGenerator
}

func NewOrderService(db *gorm.DB, pricing *PricingService, confirm ConfirmationGenerator) *OrderService {
	if confirm == nil {
		confirm = NewConfirmationNumber
	}
	return &OrderService{db: db, pricing: pricing, confirm: confirm}
}

// PlaceOrder resolves each item's price link, snapshots unit prices,
// computes line totals and the order total, and persists order plus items
// atomically. Any missing price link aborts the whole order. On success the
// committed order is reloaded fully populated so the caller needs no second
// round trip.
func (s *OrderService) PlaceOrder(ctx context.Context, customerName, customerContact string, items []OrderItemRequest) (*models.Order, error) {
	customerName = strings.TrimSpace(customerName)
	customerContact = strings.TrimSpace(customerContact)
	if customerName == "" {
		return nil, invalidArgument("customer name must not be empty")
	}
	if customerContact == "" {
		return nil, invalidArgument("customer contact must not be empty")
	}
	if len(items) == 0 {
		return nil, invalidArgument("order must include at least one item")
	}
	for i, it := range items {
		if it.Quantity < 1 {
			return nil, invalidArgument("item %d: quantity must be at least 1, got %d", i, it.Quantity)
		}
	}

	order := &models.Order{
		CustomerName:       customerName,
		CustomerContact:    customerContact,
		ConfirmationNumber: s.confirm(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var total models.Price
		rows := make([]models.OrderItem, 0, len(items))
		for i, req := range items {
			link, err := s.pricing.lookup(tx, req.BeverageTypeID, req.BeverageSizeID)
			if err != nil {
				return err
			}
			if link == nil {
				return notFound("no price link for typeId=%s sizeId=%s", req.BeverageTypeID, req.BeverageSizeID)
			}
			line := link.Price.MulQuantity(req.Quantity)
			total = total.Add(line)
			rows = append(rows, models.OrderItem{
				BeverageTypeID: req.BeverageTypeID,
				BeverageSizeID: req.BeverageSizeID,
				Position:       i,
				Quantity:       req.Quantity,
				UnitPrice:      link.Price,
				LineTotal:      line,
			})
		}
		order.TotalPrice = total
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range rows {
			rows[i].OrderID = order.ID
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return nil, err
	}

	// Read-after-write: the commit succeeded, so a miss here means the
	// storage layer lost the row. That is a bug, not a usage error, and it
	// is never retried.
	full, err := s.loadOrder(ctx, order.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internalError(err, "unable to retrieve order %s after creation", order.ID)
	}
	if err != nil {
		return nil, err
	}
	return full, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.loadOrder(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("order with id=%s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items", orderItemsByPosition).
		Preload("Items.BeverageType").
		Preload("Items.BeverageSize").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderService) loadOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Items", orderItemsByPosition).
		Preload("Items.BeverageType").
		Preload("Items.BeverageSize").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func orderItemsByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position asc")
}
