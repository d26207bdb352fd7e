// Package metrics exposes Prometheus metrics about parsing, loading and
// publishing flow key definitions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	NAMESPACE = "flowkey"
)

var (
	ParseCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "parse_count",
			Help:      "Key definitions parsed, by result.",
			Namespace: NAMESPACE},
		[]string{"result"},
	)
	ParseTime = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:      "parse_time_us",
			Help:      "Parsing time summary.",
			Namespace: NAMESPACE, Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"result"},
	)
	KeyExpressions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "key_expression_count",
			Help:      "Key expressions found in parsed definitions, by kind.",
			Namespace: NAMESPACE},
		[]string{"kind"},
	)
	FlowsLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name:      "flows_loaded",
			Help:      "Flow definitions currently loaded.",
			Namespace: NAMESPACE},
	)
	FlowReloads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "flow_reload_count",
			Help:      "Definitions file loads, by result.",
			Namespace: NAMESPACE},
		[]string{"result"},
	)
	FlowReloadTime = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name:      "flow_reload_time_ms",
			Help:      "Duration of the last definitions file load.",
			Namespace: NAMESPACE},
	)
	OutputCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "output_count",
			Help:      "Definitions sent to a transport.",
			Namespace: NAMESPACE},
		[]string{"format", "transport"},
	)
	FormatErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "format_error_count",
			Help:      "Formatting errors.",
			Namespace: NAMESPACE},
		[]string{"format"},
	)
	TransportErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "transport_error_count",
			Help:      "Transport errors.",
			Namespace: NAMESPACE},
		[]string{"transport"},
	)
)

func init() {
	prometheus.MustRegister(ParseCount)
	prometheus.MustRegister(ParseTime)
	prometheus.MustRegister(KeyExpressions)

	prometheus.MustRegister(FlowsLoaded)
	prometheus.MustRegister(FlowReloads)
	prometheus.MustRegister(FlowReloadTime)

	prometheus.MustRegister(OutputCount)
	prometheus.MustRegister(FormatErrors)
	prometheus.MustRegister(TransportErrors)
}
