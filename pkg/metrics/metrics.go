// Package metrics содержит Prometheus-метрики сервиса
package metrics

import (
	"database/sql"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	RegistrationsTotal *prometheus.CounterVec
	SlotsSweptTotal    prometheus.Counter

	DBOpenConnections  prometheus.Gauge
	DBIdleConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
}

// New создает и регистрирует метрики сервиса
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		RegistrationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_registrations_total",
			Help:        "Slot registration attempts by sport and outcome",
			ConstLabels: labels,
		}, []string{"sport", "outcome"}),

		SlotsSweptTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "expired_slots_swept_total",
			Help:        "Total number of expired slots removed by the sweep",
			ConstLabels: labels,
		}),

		DBOpenConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open connections in the database pool",
			ConstLabels: labels,
		}),
		DBIdleConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle connections in the database pool",
			ConstLabels: labels,
		}),
		DBInUseConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "In-use connections in the database pool",
			ConstLabels: labels,
		}),
	}
}

// ObserveRegistration учитывает попытку записи на слот
func (m *Metrics) ObserveRegistration(sport, outcome string) {
	m.RegistrationsTotal.WithLabelValues(sport, outcome).Inc()
}

// ObserveSweep учитывает слоты, удаленные ночной чисткой
func (m *Metrics) ObserveSweep(n int64) {
	m.SlotsSweptTotal.Add(float64(n))
}

// CollectDBStats периодически снимает статистику connection pool.
// Останавливается при закрытии stopCh
func (m *Metrics) CollectDBStats(db *sql.DB, stopCh <-chan struct{}) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := db.Stats()
			m.DBOpenConnections.Set(float64(stats.OpenConnections))
			m.DBIdleConnections.Set(float64(stats.Idle))
			m.DBInUseConnections.Set(float64(stats.InUse))
		}
	}
}
