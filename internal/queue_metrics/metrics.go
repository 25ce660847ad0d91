package queue_metrics

import (
	"net/http"
	"sql-batch-queue/internal/generator"
	"sql-batch-queue/internal/queue"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const queueLabel = "queue"

// StatsSource — источник периодической статистики очередей.
type StatsSource interface {
	AddStatsListener(listener func(queueName string, stats queue.Stats))
}

type Metrics struct {
	registry *prometheus.Registry
}

func NewMetrics() *Metrics {
	return &Metrics{
		registry: prometheus.NewRegistry(),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// CollectQueues регистрирует метрики очередей и обновляет их
// при каждом выводе статистики.
func (m *Metrics) CollectQueues(source StatsSource) error {
	added := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queue_added_total",
			Help: "Entries added to the queue.",
		},
		[]string{queueLabel},
	)
	saved := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queue_saved_total",
			Help: "Entries saved by the queue worker.",
		},
		[]string{queueLabel},
	)
	failed := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queue_failed_total",
			Help: "Entries whose batch failed to save.",
		},
		[]string{queueLabel},
	)
	size := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "queue_size",
			Help: "Entries waiting in the queue buffer.",
		},
		[]string{queueLabel},
	)

	for _, c := range []prometheus.Collector{added, saved, failed, size} {
		if err := m.registry.Register(c); err != nil {
			zap.L().Error(err.Error())
			return err
		}
	}

	source.AddStatsListener(func(queueName string, stats queue.Stats) {
		added.WithLabelValues(queueName).Add(float64(stats.TotalAdded))
		saved.WithLabelValues(queueName).Add(float64(stats.TotalSaved))
		failed.WithLabelValues(queueName).Add(float64(stats.TotalFailed))
		size.WithLabelValues(queueName).Set(float64(stats.QueueSize))
	})

	return nil
}

func (m *Metrics) CollectGenerator(gen *generator.Generator) error {
	entryCount := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ts_kv_generated_total",
		},
	)

	if err := m.registry.Register(entryCount); err != nil {
		zap.L().Error(err.Error())
		return err
	}

	gen.AddPostCreateEventsListener(func(count int) {
		entryCount.Add(float64(count))
	})

	return nil
}
