package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/skirent/backend/internal/domain/report"
	"go.uber.org/zap"
)

// MetricsAggregator assembles the inventory summary from the read-side
// queries.
//
// The aggregator fails open: a failing query is logged and contributes
// its neutral value (zero) instead of failing the whole summary, so a
// dashboard never goes dark because one table is unreachable.
type MetricsAggregator struct {
	metricsRepo       report.MetricsRepository
	lowStockThreshold int
	logger            *zap.Logger
}

// NewMetricsAggregator creates a new MetricsAggregator
func NewMetricsAggregator(metricsRepo report.MetricsRepository, lowStockThreshold int, logger *zap.Logger) *MetricsAggregator {
	if lowStockThreshold <= 0 {
		lowStockThreshold = report.DefaultLowStockThreshold
	}
	return &MetricsAggregator{
		metricsRepo:       metricsRepo,
		lowStockThreshold: lowStockThreshold,
		logger:            logger,
	}
}

// Collect builds a point-in-time inventory summary
func (a *MetricsAggregator) Collect(ctx context.Context) report.InventoryMetrics {
	return report.InventoryMetrics{
		TotalEquipmentCount: a.count("total_equipment", func() (int64, error) {
			return a.metricsRepo.CountEquipment(ctx)
		}),
		AvailableEquipmentCount: a.count("available_equipment", func() (int64, error) {
			return a.metricsRepo.CountAvailableEquipment(ctx)
		}),
		OutOfStockCount: a.count("out_of_stock", func() (int64, error) {
			return a.metricsRepo.CountOutOfStock(ctx)
		}),
		LowStockCount: a.count("low_stock", func() (int64, error) {
			return a.metricsRepo.CountLowStock(ctx, a.lowStockThreshold)
		}),
		ActiveAlertCount: a.count("active_alerts", func() (int64, error) {
			return a.metricsRepo.CountActiveAlerts(ctx)
		}),
		ActiveReservationCount: a.count("active_reservations", func() (int64, error) {
			return a.metricsRepo.CountActiveReservations(ctx)
		}),
		OverdueMaintenanceCount: a.count("overdue_maintenance", func() (int64, error) {
			return a.metricsRepo.CountOverdueMaintenance(ctx, time.Now())
		}),
		TotalInventoryValue: a.value("total_inventory_value", func() (decimal.Decimal, error) {
			return a.metricsRepo.TotalInventoryValue(ctx)
		}),
		AvailableInventoryValue: a.value("available_inventory_value", func() (decimal.Decimal, error) {
			return a.metricsRepo.AvailableInventoryValue(ctx)
		}),
	}
}

// LowStockThreshold returns the configured low stock cutoff
func (a *MetricsAggregator) LowStockThreshold() int {
	return a.lowStockThreshold
}

func (a *MetricsAggregator) count(metric string, query func() (int64, error)) int64 {
	n, err := query()
	if err != nil {
		a.logger.Error("inventory metric query failed, reporting zero",
			zap.String("metric", metric),
			zap.Error(err),
		)
		return 0
	}
	return n
}

func (a *MetricsAggregator) value(metric string, query func() (decimal.Decimal, error)) decimal.Decimal {
	v, err := query()
	if err != nil {
		a.logger.Error("inventory metric query failed, reporting zero",
			zap.String("metric", metric),
			zap.Error(err),
		)
		return decimal.Zero
	}
	return v
}
