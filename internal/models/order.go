package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order is a customer order. It is immutable once created: the total and
// every line's unit price are snapshots taken at order time and are never
// recomputed, so later catalog changes cannot alter a placed order.
type Order struct {
	ID                 uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerName       string      `gorm:"not null" json:"customerName"`
	CustomerContact    string      `gorm:"not null" json:"customerContact"`
	ConfirmationNumber string      `gorm:"not null;uniqueIndex" json:"confirmationNumber"`
	TotalPrice         Price       `gorm:"type:decimal(9,2);not null" json:"totalPrice"`
	Items              []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt          time.Time   `json:"createdAt"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderItem is one line of an order. The referenced type and size must not
// be deleted while the item exists (RESTRICT); Position preserves the order
// in which lines were submitted.
type OrderItem struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID        uuid.UUID     `gorm:"type:uuid;not null;index" json:"orderId"`
	BeverageTypeID uuid.UUID     `gorm:"type:uuid;not null;index" json:"beverageTypeId"`
	BeverageSizeID uuid.UUID     `gorm:"type:uuid;not null;index" json:"beverageSizeId"`
	BeverageType   *BeverageType `gorm:"foreignKey:BeverageTypeID;constraint:OnDelete:RESTRICT" json:"beverageType,omitempty"`
	BeverageSize   *BeverageSize `gorm:"foreignKey:BeverageSizeID;constraint:OnDelete:RESTRICT" json:"beverageSize,omitempty"`
	Position       int           `gorm:"not null" json:"-"`
	Quantity       int           `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice      Price         `gorm:"type:decimal(7,2);not null" json:"unitPrice"`
	LineTotal      Price         `gorm:"type:decimal(9,2);not null" json:"lineTotal"`
}

func (i *OrderItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// All is the migration order for AutoMigrate: referenced tables first.
func All() []any {
	return []any{&BeverageType{}, &BeverageSize{}, &PriceLink{}, &Order{}, &OrderItem{}}
}
