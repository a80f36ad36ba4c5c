package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"beverage-backend/internal/models"
)

// PricingService manages the price matrix: at most one price link per
// (beverage type, beverage size) pair.
type PricingService struct {
	db      *gorm.DB
	catalog *CatalogService
}

func NewPricingService(db *gorm.DB, catalog *CatalogService) *PricingService {
	return &PricingService{db: db, catalog: catalog}
}

// PriceLinkUpdate is a patch: only non-nil fields are applied.
type PriceLinkUpdate struct {
	BeverageTypeID *uuid.UUID
	BeverageSizeID *uuid.UUID
	Price          *models.Price
}

func (s *PricingService) CreateLink(ctx context.Context, typeID, sizeID uuid.UUID, price models.Price) (*models.PriceLink, error) {
	if !price.Valid() {
		return nil, invalidArgument("price must be non-negative with at most two fractional digits")
	}
	bt, err := s.catalog.GetType(ctx, typeID)
	if err != nil {
		return nil, err
	}
	bs, err := s.catalog.GetSize(ctx, sizeID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueLink(ctx, typeID, sizeID, uuid.Nil); err != nil {
		return nil, err
	}
	link := &models.PriceLink{BeverageTypeID: typeID, BeverageSizeID: sizeID, Price: price}
	if err := s.db.WithContext(ctx).Create(link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateLink("price link for typeId=%s sizeId=%s already exists", typeID, sizeID)
		}
		return nil, err
	}
	link.BeverageType = bt
	link.BeverageSize = bs
	return link, nil
}

func (s *PricingService) GetLink(ctx context.Context, id uuid.UUID) (*models.PriceLink, error) {
	var link models.PriceLink
	err := s.db.WithContext(ctx).
		Preload("BeverageType").
		Preload("BeverageSize").
		First(&link, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("price link with id=%s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (s *PricingService) ListLinks(ctx context.Context) ([]models.PriceLink, error) {
	var links []models.PriceLink
	err := s.db.WithContext(ctx).
		Preload("BeverageType").
		Preload("BeverageSize").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

// UpdateLink applies the supplied fields, re-resolving changed references
// and re-checking pair uniqueness against the resulting (type, size)
// combination. The re-check runs even when only the price changed.
func (s *PricingService) UpdateLink(ctx context.Context, id uuid.UUID, upd PriceLinkUpdate) (*models.PriceLink, error) {
	link, err := s.GetLink(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.BeverageTypeID != nil && *upd.BeverageTypeID != link.BeverageTypeID {
		bt, err := s.catalog.GetType(ctx, *upd.BeverageTypeID)
		if err != nil {
			return nil, err
		}
		link.BeverageTypeID = bt.ID
		link.BeverageType = bt
	}
	if upd.BeverageSizeID != nil && *upd.BeverageSizeID != link.BeverageSizeID {
		bs, err := s.catalog.GetSize(ctx, *upd.BeverageSizeID)
		if err != nil {
			return nil, err
		}
		link.BeverageSizeID = bs.ID
		link.BeverageSize = bs
	}
	if upd.Price != nil {
		if !upd.Price.Valid() {
			return nil, invalidArgument("price must be non-negative with at most two fractional digits")
		}
		link.Price = *upd.Price
	}
	if err := s.ensureUniqueLink(ctx, link.BeverageTypeID, link.BeverageSizeID, link.ID); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateLink("price link for typeId=%s sizeId=%s already exists", link.BeverageTypeID, link.BeverageSizeID)
		}
		return nil, err
	}
	return link, nil
}

func (s *PricingService) DeleteLink(ctx context.Context, id uuid.UUID) error {
	var link models.PriceLink
	if err := s.db.WithContext(ctx).First(&link, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("price link with id=%s not found", id)
		}
		return err
	}
	return s.db.WithContext(ctx).Delete(&link).Error
}

// Lookup returns the committed price link for a (type, size) pair, or nil
// when none exists. Absence is not an error here: the caller decides.
func (s *PricingService) Lookup(ctx context.Context, typeID, sizeID uuid.UUID) (*models.PriceLink, error) {
	return s.lookup(s.db.WithContext(ctx), typeID, sizeID)
}

// lookup runs against the given handle so order placement can resolve
// prices inside its own transaction.
func (s *PricingService) lookup(db *gorm.DB, typeID, sizeID uuid.UUID) (*models.PriceLink, error) {
	var link models.PriceLink
	err := db.
		Preload("BeverageType").
		Preload("BeverageSize").
		Where("beverage_type_id = ? AND beverage_size_id = ?", typeID, sizeID).
		First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (s *PricingService) ensureUniqueLink(ctx context.Context, typeID, sizeID, excludeID uuid.UUID) error {
	var existing models.PriceLink
	err := s.db.WithContext(ctx).
		Where("beverage_type_id = ? AND beverage_size_id = ?", typeID, sizeID).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != excludeID {
		return duplicateLink("price link for typeId=%s sizeId=%s already exists", typeID, sizeID)
	}
	return nil
}
