// Package metrics содержит prometheus-метрики таблицы пользователей.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "users_table"

// Metrics счётчики операций и гистограмма длительности загрузки.
type Metrics struct {
	operations   *prometheus.CounterVec
	loadDuration *prometheus.HistogramVec
	usersTotal   prometheus.Gauge
}

// New создаёт метрики и регистрирует их в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Table operations by name and result.",
		}, []string{"op", "result"}),
		loadDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Duration of user set loads.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"result"}),
		usersTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "users",
			Help:      "Number of users currently in the table.",
		}),
	}
	reg.MustRegister(m.operations, m.loadDuration, m.usersTotal)
	return m
}

// Operation учитывает выполнение операции op.
func (m *Metrics) Operation(op string, err error) {
	m.operations.WithLabelValues(op, result(err)).Inc()
}

// Load учитывает завершённую загрузку.
func (m *Metrics) Load(d time.Duration, err error) {
	m.loadDuration.WithLabelValues(result(err)).Observe(d.Seconds())
}

// Users выставляет текущее количество записей.
func (m *Metrics) Users(n int) {
	m.usersTotal.Set(float64(n))
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
