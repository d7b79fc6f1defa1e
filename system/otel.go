package system

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/milk9111/fpscore/system"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}
