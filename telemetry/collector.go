// Package telemetry exports per-fold cross-validation metrics to Prometheus.
package telemetry

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/YuminosukeSato/boostcv/cv"
)

const namespace = "boostcv"

// Collector implements cv.Observer by recording fold duration, outcome and
// best iteration. It is safe for concurrent use.
type Collector struct {
	duration      *prometheus.HistogramVec
	folds         *prometheus.CounterVec
	bestIteration *prometheus.GaugeVec
}

var _ cv.Observer = (*Collector)(nil)

// NewCollector creates the metrics and registers them on reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "cv",
			Name:      "fold_duration_seconds",
			Help:      "Wall time of one fold: fit, predict and importance.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"outcome"}),
		folds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cv",
			Name:      "folds_total",
			Help:      "Folds finished, by outcome.",
		}, []string{"outcome"}),
		bestIteration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "cv",
			Name:      "fold_best_iteration",
			Help:      "Best iteration reported by the backend for each fold.",
		}, []string{"fold"}),
	}

	for _, m := range []prometheus.Collector{c.duration, c.folds, c.bestIteration} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ObserveFold implements cv.Observer.
func (c *Collector) ObserveFold(s cv.FoldStats) {
	outcome := "success"
	if s.Err != nil {
		outcome = "error"
	}
	c.duration.WithLabelValues(outcome).Observe(s.Duration.Seconds())
	c.folds.WithLabelValues(outcome).Inc()
	if s.Err == nil {
		c.bestIteration.WithLabelValues(strconv.Itoa(s.Fold)).Set(float64(s.BestIteration))
	}
}
