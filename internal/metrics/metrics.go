package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Исходы обработки одного документа
const (
	OutcomeCompressed = "compressed"
	OutcomeSkipped    = "skipped"
	OutcomeFailed     = "failed"
)

// PipelineMetrics : счётчики конвейера сжатия для /metrics
type PipelineMetrics struct {
	documents   *prometheus.CounterVec
	runs        prometheus.Counter
	runDuration prometheus.Histogram
	bytesIn     prometheus.Counter
	bytesOut    prometheus.Counter
}

// NewPipelineMetrics : регистрирует коллекторы, повторная регистрация переиспользует существующие
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &PipelineMetrics{
		documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "instashare",
			Subsystem: "compression",
			Name:      "documents_total",
			Help:      "Документы, обработанные конвейером сжатия, по исходу.",
		}, []string{"outcome"}),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "instashare",
			Subsystem: "compression",
			Name:      "runs_total",
			Help:      "Количество проходов конвейера сжатия.",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "instashare",
			Subsystem: "compression",
			Name:      "run_duration_seconds",
			Help:      "Длительность одного прохода конвейера сжатия.",
			Buckets:   prometheus.DefBuckets,
		}),
		bytesIn: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "instashare",
			Subsystem: "compression",
			Name:      "source_bytes_total",
			Help:      "Байты исходных документов, скачанных из хранилища.",
		}),
		bytesOut: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "instashare",
			Subsystem: "compression",
			Name:      "archive_bytes_total",
			Help:      "Байты загруженных zip-архивов.",
		}),
	}

	m.documents = register(reg, m.documents)
	m.runs = register(reg, m.runs)
	m.runDuration = register(reg, m.runDuration)
	m.bytesIn = register(reg, m.bytesIn)
	m.bytesOut = register(reg, m.bytesOut)

	return m
}

func register[T prometheus.Collector](reg prometheus.Registerer, collector T) T {
	if err := reg.Register(collector); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(err)
	}
	return collector
}

func (m *PipelineMetrics) ObserveDocument(outcome string) {
	if m == nil {
		return
	}
	m.documents.WithLabelValues(outcome).Inc()
}

func (m *PipelineMetrics) ObserveBytes(source, archive int) {
	if m == nil {
		return
	}
	m.bytesIn.Add(float64(source))
	m.bytesOut.Add(float64(archive))
}

func (m *PipelineMetrics) ObserveRun(duration time.Duration) {
	if m == nil {
		return
	}
	m.runs.Inc()
	m.runDuration.Observe(duration.Seconds())
}
