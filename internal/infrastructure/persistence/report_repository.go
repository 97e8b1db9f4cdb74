package persistence

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/skirent/backend/internal/domain/rental"
	"github.com/skirent/backend/internal/domain/report"
	"gorm.io/gorm"
)

// GormMetricsRepository implements MetricsRepository over the rental tables
type GormMetricsRepository struct {
	db *gorm.DB
}

// NewGormMetricsRepository creates a new GormMetricsRepository
func NewGormMetricsRepository(db *gorm.DB) *GormMetricsRepository {
	return &GormMetricsRepository{db: db}
}

// CountEquipment counts all equipment records
func (r *GormMetricsRepository) CountEquipment(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&rental.Equipment{}).
		Count(&count).Error
	return count, err
}

// CountAvailableEquipment counts equipment with stock on hand
func (r *GormMetricsRepository) CountAvailableEquipment(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&rental.Equipment{}).
		Where("available_quantity > ?", 0).
		Count(&count).Error
	return count, err
}

// CountOutOfStock counts equipment with nothing left to rent
func (r *GormMetricsRepository) CountOutOfStock(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&rental.Equipment{}).
		Where("available_quantity = ?", 0).
		Count(&count).Error
	return count, err
}

// CountLowStock counts equipment at or below the threshold but not out of stock
func (r *GormMetricsRepository) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&rental.Equipment{}).
		Where("available_quantity > ? AND available_quantity <= ?", 0, threshold).
		Count(&count).Error
	return count, err
}

// CountActiveAlerts counts unresolved stock alerts
func (r *GormMetricsRepository) CountActiveAlerts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&rental.StockAlert{}).
		Where("active = ?", true).
		Count(&count).Error
	return count, err
}

// CountActiveReservations counts reservations currently holding stock
func (r *GormMetricsRepository) CountActiveReservations(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&rental.Reservation{}).
		Where("status = ?", rental.ReservationStatusActive).
		Count(&count).Error
	return count, err
}

// CountOverdueMaintenance counts open maintenance records past their due date
func (r *GormMetricsRepository) CountOverdueMaintenance(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&rental.MaintenanceRecord{}).
		Where("completed_at IS NULL AND due_date < ?", now).
		Count(&count).Error
	return count, err
}

// TotalInventoryValue sums daily rate times total stock (on hand plus
// reserved) across all equipment
func (r *GormMetricsRepository) TotalInventoryValue(ctx context.Context) (decimal.Decimal, error) {
	return r.sumValue(ctx, "COALESCE(SUM(daily_rate * (available_quantity + reserved_quantity)), 0) as total")
}

// AvailableInventoryValue sums daily rate times the stock on hand only
func (r *GormMetricsRepository) AvailableInventoryValue(ctx context.Context) (decimal.Decimal, error) {
	return r.sumValue(ctx, "COALESCE(SUM(daily_rate * available_quantity), 0) as total")
}

func (r *GormMetricsRepository) sumValue(ctx context.Context, selectExpr string) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&rental.Equipment{}).
		Select(selectExpr).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// Ensure GormMetricsRepository implements MetricsRepository
var _ report.MetricsRepository = (*GormMetricsRepository)(nil)
