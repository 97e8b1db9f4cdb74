package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/metric"
)

// EventProcessingCollector exports per-event-type processing outcomes
// as counters. It implements the event pipeline's ProcessingRecorder.
type EventProcessingCollector struct {
	processed  *Counter
	duplicates *Counter
	failures   *Counter
}

// NewEventProcessingCollector creates the event processing counters on
// the given meter.
func NewEventProcessingCollector(meter metric.Meter) (*EventProcessingCollector, error) {
	c := &EventProcessingCollector{}

	var err error
	c.processed, err = NewCounter(meter, "rental_events_processed_total", "Number of lifecycle events processed to completion", "{events}")
	if err != nil {
		return nil, err
	}

	c.duplicates, err = NewCounter(meter, "rental_events_duplicate_total", "Number of lifecycle events skipped as duplicates", "{events}")
	if err != nil {
		return nil, err
	}

	c.failures, err = NewCounter(meter, "rental_events_failed_total", "Number of lifecycle events whose handler returned an error", "{events}")
	if err != nil {
		return nil, err
	}

	return c, nil
}

// RecordProcessed counts a successfully handled event.
func (c *EventProcessingCollector) RecordProcessed(ctx context.Context, eventType string) {
	c.processed.Inc(ctx, AttrEventType.String(eventType))
}

// RecordDuplicate counts an event skipped by the idempotency check.
func (c *EventProcessingCollector) RecordDuplicate(ctx context.Context, eventType string) {
	c.duplicates.Inc(ctx, AttrEventType.String(eventType))
}

// RecordFailed counts an event whose handler failed.
func (c *EventProcessingCollector) RecordFailed(ctx context.Context, eventType string) {
	c.failures.Inc(ctx, AttrEventType.String(eventType))
}
