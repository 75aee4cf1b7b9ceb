package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "flotilla_"

	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	registerOnce sync.Once

	reportTotal   *prometheus.CounterVec
	reportLatency *prometheus.HistogramVec

	unmatchedSalesTotal prometheus.Counter
)

// Init registra los contadores del servicio de reportes. Idempotente; los
// tests que no lo llaman simplemente no emiten métricas.
func Init() {
	registerOnce.Do(func() {
		reportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_requests_total",
				Help: "Reportes generados por resultado",
			},
			[]string{"result"},
		)
		reportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_latency_seconds",
				Help:    "Latencia de generación del reporte",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		unmatchedSalesTotal = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "unmatched_sales_rows_total",
				Help: "Renglones de venta sin equipo mapeado",
			},
		)

		prometheus.MustRegister(reportTotal, reportLatency, unmatchedSalesTotal)
	})
}

func ObserveReport(result string, d time.Duration) {
	if reportTotal == nil {
		return
	}
	reportTotal.WithLabelValues(result).Inc()
	reportLatency.WithLabelValues(result).Observe(d.Seconds())
}

func AddUnmatchedSales(n int) {
	if unmatchedSalesTotal == nil || n <= 0 {
		return
	}
	unmatchedSalesTotal.Add(float64(n))
}
