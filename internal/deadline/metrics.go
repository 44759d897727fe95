package deadline

import "github.com/prometheus/client_golang/prometheus"

var (
	jobsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nonblock_deadline_jobs_total",
			Help: "Total number of deadline-bounded runs by outcome.",
		},
		[]string{"outcome"},
	)

	waitDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nonblock_deadline_wait_seconds",
			Help:    "Time the caller waited on the result channel, in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)

	reconcileDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nonblock_deadline_reconcile_seconds",
			Help:    "Time spent joining a worker after a forced interruption, in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)

	interruptsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "nonblock_deadline_interrupts_total",
			Help: "Total number of interrupt signals delivered to worker threads.",
		},
	)

	signalsLeased = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "nonblock_deadline_signals_leased",
			Help: "Number of interrupt signals currently leased to running jobs.",
		},
	)
)

func init() {
	prometheus.MustRegister(jobsTotal)
	prometheus.MustRegister(waitDuration)
	prometheus.MustRegister(reconcileDuration)
	prometheus.MustRegister(interruptsTotal)
	prometheus.MustRegister(signalsLeased)

	for _, s := range []Status{StatusSuccess, StatusTimedOut, StatusNoCapacity, StatusFailure} {
		jobsTotal.WithLabelValues(s.String())
	}
}
