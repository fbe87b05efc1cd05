package namespace

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/zero-day-ai/tagtree/namespace"

// registryMetrics holds the OpenTelemetry instruments for one registry.
// A nil *registryMetrics records nothing.
type registryMetrics struct {
	// registrations counts entries added, with dynamic=true for Register
	registrations metric.Int64Counter

	// collisions counts rejected paths
	collisions metric.Int64Counter

	// entries tracks the live entry count
	entries metric.Int64UpDownCounter
}

func newRegistryMetrics(mp metric.MeterProvider) (*registryMetrics, error) {
	if mp == nil {
		return nil, nil
	}
	meter := mp.Meter(meterName)

	m := &registryMetrics{}
	var err error

	m.registrations, err = meter.Int64Counter(
		"tagtree.registry.registrations",
		metric.WithDescription("Number of entries added to the registry"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create registrations counter: %w", err)
	}

	m.collisions, err = meter.Int64Counter(
		"tagtree.registry.collisions",
		metric.WithDescription("Number of paths rejected because their GID was already taken"),
		metric.WithUnit("{collision}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create collisions counter: %w", err)
	}

	m.entries, err = meter.Int64UpDownCounter(
		"tagtree.registry.entries",
		metric.WithDescription("Number of entries held by the registry"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create entries counter: %w", err)
	}

	return m, nil
}

func (m *registryMetrics) recordAdded(n int, dynamic bool) {
	if m == nil || n == 0 {
		return
	}
	ctx := context.Background()
	m.registrations.Add(ctx, int64(n), metric.WithAttributes(attribute.Bool("dynamic", dynamic)))
	m.entries.Add(ctx, int64(n))
}

func (m *registryMetrics) recordCollision() {
	if m == nil {
		return
	}
	m.collisions.Add(context.Background(), 1)
}
