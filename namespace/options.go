package namespace

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
)

// Option configures a Registry.
type Option func(*config)

type config struct {
	logger        *slog.Logger
	meterProvider metric.MeterProvider
}

func defaultConfig() config {
	return config{
		logger: slog.New(slog.DiscardHandler),
	}
}

// WithLogger sets the logger used for build, registration and collision records.
// Without it the registry logs nothing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMeterProvider enables OpenTelemetry metrics for the registry.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *config) {
		c.meterProvider = mp
	}
}
