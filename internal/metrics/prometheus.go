package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "chore_buddy"

// PrometheusRecorder implements Recorder backed by Prometheus.
type PrometheusRecorder struct {
	allocations        prometheus.Counter
	allocationDuration prometheus.Histogram
	choresAllocated    *prometheus.CounterVec
	completions        prometheus.Counter
	pointsEarned       prometheus.Counter
}

var _ Recorder = (*PrometheusRecorder)(nil)

// NewPrometheus registers the collectors with reg, or with
// prometheus.DefaultRegisterer when reg is nil.
func NewPrometheus(reg prometheus.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	recorder := &PrometheusRecorder{
		allocations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "allocator",
			Name:      "runs_total",
			Help:      "Weekly allocation runs that produced a new assignment map.",
		}),
		allocationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "allocator",
			Name:      "run_duration_seconds",
			Help:      "Time spent computing and persisting a weekly allocation.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		choresAllocated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "allocator",
			Name:      "chores_allocated_total",
			Help:      "Chores handed out by the allocator by kind.",
		}, []string{"kind"}),
		completions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chores",
			Name:      "completions_total",
			Help:      "Chores marked done.",
		}),
		pointsEarned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chores",
			Name:      "points_earned_total",
			Help:      "Points credited to members for completed chores.",
		}),
	}

	reg.MustRegister(
		recorder.allocations,
		recorder.allocationDuration,
		recorder.choresAllocated,
		recorder.completions,
		recorder.pointsEarned,
	)
	return recorder
}

func (p *PrometheusRecorder) RecordAllocation(duration time.Duration, recurring int, oneOff int) {
	p.allocations.Inc()
	p.allocationDuration.Observe(duration.Seconds())
	p.choresAllocated.WithLabelValues("recurring").Add(float64(recurring))
	p.choresAllocated.WithLabelValues("one_off").Add(float64(oneOff))
}

func (p *PrometheusRecorder) RecordCompletion(points int) {
	p.completions.Inc()
	p.pointsEarned.Add(float64(points))
}
