package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/ghuser/cheeseshop/cheese"

// ListingMetrics records cheese listing write outcomes.
type ListingMetrics struct {
	created            metric.Int64Counter
	validationFailures metric.Int64Counter
}

// NewListingMetrics registers the listing counters on the global meter
// provider. Call after Setup so they are exported.
func NewListingMetrics() (*ListingMetrics, error) {
	return NewListingMetricsWithMeter(otel.Meter(meterName))
}

// NewListingMetricsWithMeter registers the listing counters on meter.
func NewListingMetricsWithMeter(meter metric.Meter) (*ListingMetrics, error) {
	created, err := meter.Int64Counter("cheese_listings_created_total",
		metric.WithDescription("Cheese listings persisted."))
	if err != nil {
		return nil, fmt.Errorf("created counter: %w", err)
	}
	failures, err := meter.Int64Counter("cheese_listing_validation_failures_total",
		metric.WithDescription("Rejected cheese listing writes, by field."))
	if err != nil {
		return nil, fmt.Errorf("validation failures counter: %w", err)
	}
	return &ListingMetrics{created: created, validationFailures: failures}, nil
}

// ListingCreated counts one persisted listing. Safe on a nil receiver.
func (m *ListingMetrics) ListingCreated(ctx context.Context) {
	if m == nil {
		return
	}
	m.created.Add(ctx, 1)
}

// ValidationFailed counts one rejection per offending field.
func (m *ListingMetrics) ValidationFailed(ctx context.Context, op string, fields []string) {
	if m == nil {
		return
	}
	for _, f := range fields {
		m.validationFailures.Add(ctx, 1, metric.WithAttributes(
			attribute.String("operation", op),
			attribute.String("field", f),
		))
	}
}
