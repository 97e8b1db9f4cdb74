package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/skirent/backend/internal/domain/report"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// InventorySummaryProvider supplies the point-in-time inventory summary
// the gauges are recorded from. It decouples the telemetry layer from the
// application layer.
type InventorySummaryProvider interface {
	Collect(ctx context.Context) report.InventoryMetrics
}

// InventoryMetricsCollector periodically records the rental inventory
// summary as OpenTelemetry gauges.
type InventoryMetricsCollector struct {
	provider InventorySummaryProvider
	logger   *zap.Logger

	equipmentTotal     *Gauge
	equipmentAvailable *Gauge
	outOfStock         *Gauge
	lowStock           *Gauge
	activeAlerts       *Gauge
	activeReservations *Gauge
	overdueMaintenance *Gauge
	inventoryValue     *FloatGauge
	availableValue     *FloatGauge

	stopChan  chan struct{}
	stopOnce  sync.Once
	startOnce sync.Once
}

// NewInventoryMetricsCollector creates the collector and registers its gauges.
func NewInventoryMetricsCollector(meter metric.Meter, provider InventorySummaryProvider, logger *zap.Logger) (*InventoryMetricsCollector, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &InventoryMetricsCollector{
		provider: provider,
		logger:   logger,
		stopChan: make(chan struct{}),
	}

	gauges := []struct {
		target      **Gauge
		name        string
		description string
		unit        string
	}{
		{&c.equipmentTotal, "rental_equipment_total", "Number of equipment records", "{items}"},
		{&c.equipmentAvailable, "rental_equipment_available", "Number of equipment records with stock on hand", "{items}"},
		{&c.outOfStock, "rental_equipment_out_of_stock", "Number of equipment records with no stock left", "{items}"},
		{&c.lowStock, "rental_equipment_low_stock", "Number of equipment records at or below the low stock threshold", "{items}"},
		{&c.activeAlerts, "rental_stock_alerts_active", "Number of unresolved stock alerts", "{alerts}"},
		{&c.activeReservations, "rental_reservations_active", "Number of reservations currently holding stock", "{reservations}"},
		{&c.overdueMaintenance, "rental_maintenance_overdue", "Number of open maintenance records past their due date", "{records}"},
	}

	var err error
	for _, g := range gauges {
		*g.target, err = NewGauge(meter, g.name, g.description, g.unit)
		if err != nil {
			return nil, err
		}
	}

	c.inventoryValue, err = NewFloatGauge(meter, "rental_inventory_value_total", "Daily-rate value of the full inventory, on hand plus reserved", "{currency}")
	if err != nil {
		return nil, err
	}

	c.availableValue, err = NewFloatGauge(meter, "rental_inventory_value_available", "Daily-rate value of the inventory with stock on hand", "{currency}")
	if err != nil {
		return nil, err
	}

	return c, nil
}

// Start begins periodic collection. It is non-blocking; use Stop to halt.
func (c *InventoryMetricsCollector) Start(ctx context.Context, interval time.Duration) {
	c.startOnce.Do(func() {
		if interval <= 0 {
			interval = time.Minute
		}
		go c.run(ctx, interval)
	})
}

func (c *InventoryMetricsCollector) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.record(ctx)

	for {
		select {
		case <-c.stopChan:
			c.logger.Info("Stopping inventory metrics collection")
			return
		case <-ctx.Done():
			c.logger.Info("Context cancelled, stopping inventory metrics collection")
			return
		case <-ticker.C:
			c.record(ctx)
		}
	}
}

func (c *InventoryMetricsCollector) record(ctx context.Context) {
	summary := c.provider.Collect(ctx)

	c.equipmentTotal.Record(ctx, summary.TotalEquipmentCount)
	c.equipmentAvailable.Record(ctx, summary.AvailableEquipmentCount)
	c.outOfStock.Record(ctx, summary.OutOfStockCount)
	c.lowStock.Record(ctx, summary.LowStockCount)
	c.activeAlerts.Record(ctx, summary.ActiveAlertCount)
	c.activeReservations.Record(ctx, summary.ActiveReservationCount)
	c.overdueMaintenance.Record(ctx, summary.OverdueMaintenanceCount)
	c.inventoryValue.Record(ctx, summary.TotalInventoryValue.InexactFloat64())
	c.availableValue.Record(ctx, summary.AvailableInventoryValue.InexactFloat64())
}

// Stop halts periodic collection.
func (c *InventoryMetricsCollector) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopChan)
	})
}
