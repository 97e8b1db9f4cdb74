package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultLowStockThreshold is the available quantity at or below which
// equipment counts as low on stock
const DefaultLowStockThreshold = 5

// InventoryMetrics is a point-in-time summary of the rental inventory
type InventoryMetrics struct {
	TotalEquipmentCount     int64           `json:"totalEquipmentCount"`
	AvailableEquipmentCount int64           `json:"availableEquipmentCount"`
	OutOfStockCount         int64           `json:"outOfStockCount"`
	LowStockCount           int64           `json:"lowStockCount"`
	ActiveAlertCount        int64           `json:"activeAlertCount"`
	ActiveReservationCount  int64           `json:"activeReservationCount"`
	OverdueMaintenanceCount int64           `json:"overdueMaintenanceCount"`
	TotalInventoryValue     decimal.Decimal `json:"totalInventoryValue"`
	AvailableInventoryValue decimal.Decimal `json:"availableInventoryValue"`
}

// MetricsRepository exposes the read-side queries the inventory summary
// is built from
type MetricsRepository interface {
	// CountEquipment counts all equipment records
	CountEquipment(ctx context.Context) (int64, error)

	// CountAvailableEquipment counts equipment with stock on hand
	CountAvailableEquipment(ctx context.Context) (int64, error)

	// CountOutOfStock counts equipment with nothing left to rent
	CountOutOfStock(ctx context.Context) (int64, error)

	// CountLowStock counts equipment at or below the threshold but not
	// out of stock
	CountLowStock(ctx context.Context, threshold int) (int64, error)

	// CountActiveAlerts counts unresolved stock alerts
	CountActiveAlerts(ctx context.Context) (int64, error)

	// CountActiveReservations counts reservations still holding stock
	CountActiveReservations(ctx context.Context) (int64, error)

	// CountOverdueMaintenance counts maintenance due before now and not
	// yet completed
	CountOverdueMaintenance(ctx context.Context, now time.Time) (int64, error)

	// TotalInventoryValue sums dailyRate times total stock, on hand plus
	// reserved, over all equipment
	TotalInventoryValue(ctx context.Context) (decimal.Decimal, error)

	// AvailableInventoryValue sums dailyRate times the stock on hand only
	AvailableInventoryValue(ctx context.Context) (decimal.Decimal, error)
}
