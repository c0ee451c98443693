package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ghuser/worktrack/pkg/result"
	"github.com/ghuser/worktrack/pkg/telemetry"
)

// metrics counts rejected domain operations per aggregate. Exported through
// the global meter provider, so it shows up on /metrics once telemetry is set up.
type metrics struct {
	validationFailures metric.Int64Counter
}

func newMetrics() *metrics {
	counter, err := telemetry.Meter("tracker").Int64Counter(
		"tracker.validation.failures",
		metric.WithDescription("Domain operations rejected by validation"),
	)
	if err != nil {
		otel.Handle(err)
	}
	return &metrics{validationFailures: counter}
}

// check returns nil for a successful r. A failure is counted against
// aggregate and returned as a *result.Error.
func (m *metrics) check(ctx context.Context, aggregate string, r result.Result) error {
	if r.IsSuccess() {
		return nil
	}
	if m != nil && m.validationFailures != nil {
		m.validationFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("aggregate", aggregate)))
	}
	return r.Err()
}
