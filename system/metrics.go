package system

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/milk9111/fpscore/component"
)

type combatMetrics struct {
	shots   metric.Int64Counter
	hits    metric.Int64Counter
	damage  metric.Float64Counter
	impulse metric.Float64Histogram
}

func newCombatMetrics(m metric.Meter) (*combatMetrics, error) {
	if m == nil {
		m = meter()
	}
	cm := &combatMetrics{}

	var err error
	cm.shots, err = m.Int64Counter(
		"weapon.shots",
		metric.WithDescription("Shots accepted by the trigger"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating shots counter: %w", err)
	}

	cm.hits, err = m.Int64Counter(
		"weapon.hits",
		metric.WithDescription("Shots that struck a surface"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating hits counter: %w", err)
	}

	cm.damage, err = m.Float64Counter(
		"damage.applied",
		metric.WithDescription("Health removed from targets"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating damage counter: %w", err)
	}

	cm.impulse, err = m.Float64Histogram(
		"damage.impulse",
		metric.WithDescription("Impulse magnitude applied to struck bodies"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating impulse histogram: %w", err)
	}

	return cm, nil
}

func (m *combatMetrics) shot(hit bool) {
	if m == nil {
		return
	}
	ctx := context.Background()
	m.shots.Add(ctx, 1)
	if hit {
		m.hits.Add(ctx, 1)
	}
}

func (m *combatMetrics) damaged(region component.Region, amount float64) {
	if m == nil || amount <= 0 {
		return
	}
	m.damage.Add(context.Background(), amount,
		metric.WithAttributes(attribute.String("region", regionLabel(region))))
}

func (m *combatMetrics) pushed(magnitude float64) {
	if m == nil || magnitude <= 0 {
		return
	}
	m.impulse.Record(context.Background(), magnitude)
}

func regionLabel(r component.Region) string {
	if r == component.RegionBody {
		return "body"
	}
	return string(r)
}
