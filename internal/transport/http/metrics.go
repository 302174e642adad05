package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salesinsights_loads_total",
		Help: "Table loads by outcome.",
	}, []string{"outcome"})

	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salesinsights_operations_total",
		Help: "Analysis operations by kind and outcome.",
	}, []string{"operation", "outcome"})

	exportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salesinsights_exports_total",
		Help: "Report exports by format.",
	}, []string{"format"})
)

func observe(counter *prometheus.CounterVec, labels []string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	counter.WithLabelValues(append(labels, outcome)...).Inc()
}
