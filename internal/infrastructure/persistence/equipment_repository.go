package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/skirent/backend/internal/domain/rental"
	"github.com/skirent/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormEquipmentRepository implements EquipmentRepository using GORM
type GormEquipmentRepository struct {
	db *gorm.DB
}

// NewGormEquipmentRepository creates a new GormEquipmentRepository
func NewGormEquipmentRepository(db *gorm.DB) *GormEquipmentRepository {
	return &GormEquipmentRepository{db: db}
}

// FindByID finds an equipment record by its ID
func (r *GormEquipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*rental.Equipment, error) {
	var equipment rental.Equipment
	if err := r.db.WithContext(ctx).First(&equipment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &equipment, nil
}

// FindByProductID finds the equipment record tracking the given catalog product
func (r *GormEquipmentRepository) FindByProductID(ctx context.Context, productID uuid.UUID) (*rental.Equipment, error) {
	var equipment rental.Equipment
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&equipment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &equipment, nil
}

// FindAll finds all equipment records matching the filter
func (r *GormEquipmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]rental.Equipment, error) {
	var items []rental.Equipment
	query := applyFilter(r.db.WithContext(ctx).Model(&rental.Equipment{}), filter)

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Save creates or updates an equipment record
func (r *GormEquipmentRepository) Save(ctx context.Context, equipment *rental.Equipment) error {
	err := r.db.WithContext(ctx).Save(equipment).Error
	if err != nil && isUniqueViolation(err) {
		return shared.ErrAlreadyExists
	}
	return err
}

// Upsert inserts the equipment record, or reports that a record for the
// same product already exists so the caller can reconcile onto it.
func (r *GormEquipmentRepository) Upsert(ctx context.Context, equipment *rental.Equipment) (rental.UpsertOutcome, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			DoNothing: true,
		}).
		Create(equipment)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return rental.UpsertUpdated, shared.ErrAlreadyExists
		}
		return rental.UpsertUpdated, result.Error
	}

	// DoNothing leaves the ID zeroed when a row for the product already
	// exists; surface that as a conflict instead of silently dropping
	// the new state.
	if result.RowsAffected == 0 || equipment.ID == uuid.Nil {
		return rental.UpsertUpdated, shared.ErrAlreadyExists
	}
	return rental.UpsertCreated, nil
}

// Delete deletes an equipment record
func (r *GormEquipmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&rental.Equipment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts equipment records matching the filter
func (r *GormEquipmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applySearch(r.db.WithContext(ctx).Model(&rental.Equipment{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// isUniqueViolation detects unique-constraint failures from the driver
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "SQLSTATE 23505")
}

// Ensure GormEquipmentRepository implements EquipmentRepository
var _ rental.EquipmentRepository = (*GormEquipmentRepository)(nil)
