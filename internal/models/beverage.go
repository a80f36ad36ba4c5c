package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Catalog entities. Names are unique per entity kind (case-sensitive exact
// match); deleting a type or size cascades to its price links.

type BeverageType struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string      `gorm:"not null;uniqueIndex" json:"name"`
	PriceLinks []PriceLink `gorm:"foreignKey:BeverageTypeID;constraint:OnDelete:CASCADE" json:"priceLinks,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

func (t *BeverageType) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type BeverageSize struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string      `gorm:"not null;uniqueIndex" json:"name"`
	PriceLinks []PriceLink `gorm:"foreignKey:BeverageSizeID;constraint:OnDelete:CASCADE" json:"priceLinks,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

func (s *BeverageSize) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// PriceLink assigns the price for one (type, size) pair. At most one link
// exists per pair, enforced by ux_price_links_type_size.
type PriceLink struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	BeverageTypeID uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:ux_price_links_type_size,priority:1" json:"beverageTypeId"`
	BeverageSizeID uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:ux_price_links_type_size,priority:2" json:"beverageSizeId"`
	BeverageType   *BeverageType `gorm:"foreignKey:BeverageTypeID" json:"beverageType,omitempty"`
	BeverageSize   *BeverageSize `gorm:"foreignKey:BeverageSizeID" json:"beverageSize,omitempty"`
	Price          Price         `gorm:"type:decimal(7,2);not null" json:"price"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

func (l *PriceLink) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
