package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/skirent/backend/internal/domain/report"
	"github.com/skirent/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

type stubSummaryProvider struct {
	calls   chan struct{}
	summary report.InventoryMetrics
}

func (s *stubSummaryProvider) Collect(ctx context.Context) report.InventoryMetrics {
	select {
	case s.calls <- struct{}{}:
	default:
	}
	return s.summary
}

func TestNewInventoryMetricsCollector(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	collector, err := telemetry.NewInventoryMetricsCollector(meter, &stubSummaryProvider{calls: make(chan struct{}, 1)}, zap.NewNop())

	require.NoError(t, err)
	require.NotNil(t, collector)
}

func TestInventoryMetricsCollector_Start(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	provider := &stubSummaryProvider{
		calls: make(chan struct{}, 1),
		summary: report.InventoryMetrics{
			TotalEquipmentCount: 4,
			TotalInventoryValue: decimal.NewFromInt(24000),
		},
	}

	collector, err := telemetry.NewInventoryMetricsCollector(meter, provider, zap.NewNop())
	require.NoError(t, err)
	defer collector.Stop()

	collector.Start(context.Background(), time.Hour)

	select {
	case <-provider.calls:
	case <-time.After(time.Second):
		t.Fatal("collector never queried the summary provider")
	}
}

func TestInventoryMetricsCollector_StopIsIdempotent(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	collector, err := telemetry.NewInventoryMetricsCollector(meter, &stubSummaryProvider{calls: make(chan struct{}, 1)}, zap.NewNop())
	require.NoError(t, err)

	collector.Start(context.Background(), time.Hour)
	collector.Stop()
	assert.NotPanics(t, collector.Stop)
}

func TestMeterProvider_DisabledIsNoop(t *testing.T) {
	mp, err := telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{Enabled: false}, zap.NewNop())

	require.NoError(t, err)
	assert.False(t, mp.IsEnabled())
	assert.NotNil(t, mp.Meter("test"))
	assert.NoError(t, mp.Shutdown(context.Background()))
	assert.NoError(t, mp.ForceFlush(context.Background()))
}
