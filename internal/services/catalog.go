package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"beverage-backend/internal/models"
)

// CatalogService manages beverage types and sizes. Both entity kinds share
// the same rules: non-empty unique names, price links cascade on delete,
// and deletion is rejected while any order item still references the entity.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService { return &CatalogService{db: db} }

// ---------------------------------
// Beverage types
// ---------------------------------

func (s *CatalogService) CreateType(ctx context.Context, name string) (*models.BeverageType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidArgument("beverage type name must not be empty")
	}
	if err := s.ensureUniqueTypeName(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}
	bt := &models.BeverageType{Name: name}
	if err := s.db.WithContext(ctx).Create(bt).Error; err != nil {
		// Unique index is the backstop when two creates race past the pre-check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateName("beverage type name %q is already in use", name)
		}
		return nil, err
	}
	return bt, nil
}

func (s *CatalogService) GetType(ctx context.Context, id uuid.UUID) (*models.BeverageType, error) {
	var bt models.BeverageType
	err := s.db.WithContext(ctx).
		Preload("PriceLinks.BeverageSize").
		First(&bt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("beverage type with id=%s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &bt, nil
}

func (s *CatalogService) ListTypes(ctx context.Context) ([]models.BeverageType, error) {
	var types []models.BeverageType
	err := s.db.WithContext(ctx).
		Preload("PriceLinks.BeverageSize").
		Find(&types).Error
	if err != nil {
		return nil, err
	}
	return types, nil
}

// UpdateType renames a beverage type. A nil name leaves it unchanged
// (patch semantics); uniqueness is only re-checked when the name actually
// changes, excluding the record itself.
func (s *CatalogService) UpdateType(ctx context.Context, id uuid.UUID, name *string) (*models.BeverageType, error) {
	bt, err := s.GetType(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, invalidArgument("beverage type name must not be empty")
		}
		if trimmed != bt.Name {
			if err := s.ensureUniqueTypeName(ctx, trimmed, id); err != nil {
				return nil, err
			}
			bt.Name = trimmed
		}
	}
	if err := s.db.WithContext(ctx).Save(bt).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateName("beverage type name %q is already in use", bt.Name)
		}
		return nil, err
	}
	return bt, nil
}

// DeleteType removes a beverage type and its price links. It fails with
// Conflict while any order item references the type, so historical orders
// keep resolvable beverage data.
func (s *CatalogService) DeleteType(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bt models.BeverageType
		if err := tx.First(&bt, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("beverage type with id=%s not found", id)
			}
			return err
		}
		var refs int64
		if err := tx.Model(&models.OrderItem{}).Where("beverage_type_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return conflict("beverage type with id=%s is referenced by existing order items", id)
		}
		if err := tx.Where("beverage_type_id = ?", id).Delete(&models.PriceLink{}).Error; err != nil {
			return err
		}
		return tx.Delete(&bt).Error
	})
}

// ---------------------------------
// Beverage sizes
// ---------------------------------

func (s *CatalogService) CreateSize(ctx context.Context, name string) (*models.BeverageSize, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidArgument("beverage size name must not be empty")
	}
	if err := s.ensureUniqueSizeName(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}
	bs := &models.BeverageSize{Name: name}
	if err := s.db.WithContext(ctx).Create(bs).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateName("beverage size name %q is already in use", name)
		}
		return nil, err
	}
	return bs, nil
}

func (s *CatalogService) GetSize(ctx context.Context, id uuid.UUID) (*models.BeverageSize, error) {
	var bs models.BeverageSize
	err := s.db.WithContext(ctx).
		Preload("PriceLinks.BeverageType").
		First(&bs, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("beverage size with id=%s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &bs, nil
}

func (s *CatalogService) ListSizes(ctx context.Context) ([]models.BeverageSize, error) {
	var sizes []models.BeverageSize
	err := s.db.WithContext(ctx).
		Preload("PriceLinks.BeverageType").
		Find(&sizes).Error
	if err != nil {
		return nil, err
	}
	return sizes, nil
}

func (s *CatalogService) UpdateSize(ctx context.Context, id uuid.UUID, name *string) (*models.BeverageSize, error) {
	bs, err := s.GetSize(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, invalidArgument("beverage size name must not be empty")
		}
		if trimmed != bs.Name {
			if err := s.ensureUniqueSizeName(ctx, trimmed, id); err != nil {
				return nil, err
			}
			bs.Name = trimmed
		}
	}
	if err := s.db.WithContext(ctx).Save(bs).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateName("beverage size name %q is already in use", bs.Name)
		}
		return nil, err
	}
	return bs, nil
}

func (s *CatalogService) DeleteSize(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bs models.BeverageSize
		if err := tx.First(&bs, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("beverage size with id=%s not found", id)
			}
			return err
		}
		var refs int64
		if err := tx.Model(&models.OrderItem{}).Where("beverage_size_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return conflict("beverage size with id=%s is referenced by existing order items", id)
		}
		if err := tx.Where("beverage_size_id = ?", id).Delete(&models.PriceLink{}).Error; err != nil {
			return err
		}
		return tx.Delete(&bs).Error
	})
}

// ---------------------------------
// Uniqueness pre-checks
// ---------------------------------

func (s *CatalogService) ensureUniqueTypeName(ctx context.Context, name string, excludeID uuid.UUID) error {
	var existing models.BeverageType
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != excludeID {
		return duplicateName("beverage type name %q is already in use", name)
	}
	return nil
}

func (s *CatalogService) ensureUniqueSizeName(ctx context.Context, name string, excludeID uuid.UUID) error {
	var existing models.BeverageSize
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != excludeID {
		return duplicateName("beverage size name %q is already in use", name)
	}
	return nil
}
