package telemetry_test

import (
	"context"
	"testing"

	"github.com/skirent/backend/internal/domain/catalog"
	"github.com/skirent/backend/internal/infrastructure/event"
	"github.com/skirent/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestNewEventProcessingCollector(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	collector, err := telemetry.NewEventProcessingCollector(meter)

	require.NoError(t, err)
	require.NotNil(t, collector)

	ctx := context.Background()
	assert.NotPanics(t, func() {
		collector.RecordProcessed(ctx, catalog.EventTypeProductCreated)
		collector.RecordDuplicate(ctx, catalog.EventTypeProductCreated)
		collector.RecordFailed(ctx, catalog.EventTypeProductUpdated)
	})
}

func TestEventProcessingCollectorIsRecorder(t *testing.T) {
	var _ event.ProcessingRecorder = (*telemetry.EventProcessingCollector)(nil)
}
