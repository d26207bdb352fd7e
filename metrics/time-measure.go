package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type TimeMeasure struct {
	now time.Time
}

func TimeMeasureNow() TimeMeasure {
	return TimeMeasure{now: time.Now()}
}

// MeasureTime sets metric to the elapsed milliseconds.
func (t TimeMeasure) MeasureTime(metric prometheus.Gauge) {
	metric.Set(float64(time.Since(t.now).Milliseconds()))
}

// ObserveMicroseconds records the elapsed microseconds in obs.
func (t TimeMeasure) ObserveMicroseconds(obs prometheus.Observer) {
	obs.Observe(float64(time.Since(t.now).Microseconds()))
}
