package dragmerge

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/phanxgames/dragmerge"

// Metrics counts drags, drop outcomes and reverts. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	begun    metric.Int64Counter
	outcomes metric.Int64Counter
	reverts  metric.Int64Counter
}

// NewMetrics creates the counters on m.
func NewMetrics(m metric.Meter) (*Metrics, error) {
	var (
		mt  Metrics
		err error
	)
	mt.begun, err = m.Int64Counter(
		"dragmerge.drag.begun",
		metric.WithDescription("Drags started, by mode"),
	)
	if err != nil {
		return nil, err
	}
	mt.outcomes, err = m.Int64Counter(
		"dragmerge.drop.outcomes",
		metric.WithDescription("Drops finished, by mode and outcome"),
	)
	if err != nil {
		return nil, err
	}
	mt.reverts, err = m.Int64Counter(
		"dragmerge.unit.reverts",
		metric.WithDescription("Unit drags snapped back to their start position"),
	)
	if err != nil {
		return nil, err
	}
	return &mt, nil
}

// defaultMetrics uses the global meter, which is a no-op until the host
// installs a provider.
func defaultMetrics() *Metrics {
	m, err := NewMetrics(otel.Meter(instrumentationName))
	if err != nil {
		return nil
	}
	return m
}

func (m *Metrics) dragBegun(mode DragMode) {
	if m == nil {
		return
	}
	m.begun.Add(context.Background(), 1, metric.WithAttributes(attribute.String("mode", mode.String())))
}

func (m *Metrics) dropFinished(mode DragMode, outcome string) {
	if m == nil {
		return
	}
	m.outcomes.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("mode", mode.String()),
		attribute.String("outcome", outcome),
	))
}

func (m *Metrics) unitReverted() {
	if m == nil {
		return
	}
	m.reverts.Add(context.Background(), 1)
}
