package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements Recorder backed by Prometheus.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	answers         *prometheus.CounterVec
	bucketMoves     *prometheus.CounterVec
	bucketCards     *prometheus.GaugeVec
	day             prometheus.Gauge
	cardsAdded      prometheus.Counter
	hintRequests    *prometheus.CounterVec
	hintSuggestions *prometheus.CounterVec
	hintLatency     prometheus.Histogram
	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
	knownBucketsMu  sync.Mutex
	knownBuckets    map[int]struct{}
}

// Compile-time assertion that PrometheusCollector implements Recorder.
var _ Recorder = (*PrometheusCollector)(nil)

// NewPrometheus creates a Prometheus-backed recorder. A nil reg uses
// prometheus.DefaultRegisterer; an empty namespace defaults to "leitner".
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "leitner"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace, knownBuckets: make(map[int]struct{})}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.answers = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "deck",
			Name:      "answers_total",
			Help:      "Total practice trials by difficulty and correctness.",
		}, []string{"difficulty", "correct"})

		p.bucketMoves = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "deck",
			Name:      "bucket_moves_total",
			Help:      "Total bucket transitions by direction (up, down, stay).",
		}, []string{"direction"})

		p.bucketCards = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "deck",
			Name:      "bucket_cards",
			Help:      "Current number of cards per bucket.",
		}, []string{"bucket"})

		p.day = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "deck",
			Name:      "day",
			Help:      "Current simulated day.",
		})

		p.cardsAdded = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "deck",
			Name:      "cards_added_total",
			Help:      "Total cards added to the deck.",
		})

		p.hintRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "hints",
			Name:      "requests_total",
			Help:      "Total hint lookups by outcome (found, missing).",
		}, []string{"result"})

		p.hintSuggestions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "hints",
			Name:      "suggestions_total",
			Help:      "Total LLM hint suggestions by result (success, failure).",
		}, []string{"result"})

		p.hintLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "hints",
			Name:      "suggestion_duration_seconds",
			Help:      "Latency of LLM hint suggestions in seconds.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30},
		})

		p.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"})

		p.httpLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds by route.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms .. ~2s
		}, []string{"route"})

		p.reg.MustRegister(p.answers)
		p.reg.MustRegister(p.bucketMoves)
		p.reg.MustRegister(p.bucketCards)
		p.reg.MustRegister(p.day)
		p.reg.MustRegister(p.cardsAdded)
		p.reg.MustRegister(p.hintRequests)
		p.reg.MustRegister(p.hintSuggestions)
		p.reg.MustRegister(p.hintLatency)
		p.reg.MustRegister(p.httpRequests)
		p.reg.MustRegister(p.httpLatency)
	})
}

// RecordAnswer counts the trial and classifies the bucket move.
func (p *PrometheusCollector) RecordAnswer(difficulty string, correct bool, fromBucket, toBucket int) {
	p.ensureRegistered()
	p.answers.WithLabelValues(difficulty, strconv.FormatBool(correct)).Inc()

	direction := "stay"
	switch {
	case toBucket > fromBucket:
		direction = "up"
	case toBucket < fromBucket:
		direction = "down"
	}
	p.bucketMoves.WithLabelValues(direction).Inc()
}

// SetBucketSizes sets one gauge per bucket. Buckets seen earlier but absent
// from sizes are reset to zero.
func (p *PrometheusCollector) SetBucketSizes(sizes map[int]int) {
	p.ensureRegistered()

	p.knownBucketsMu.Lock()
	defer p.knownBucketsMu.Unlock()

	for b := range p.knownBuckets {
		if _, ok := sizes[b]; !ok {
			p.bucketCards.WithLabelValues(strconv.Itoa(b)).Set(0)
		}
	}
	for b, n := range sizes {
		p.knownBuckets[b] = struct{}{}
		p.bucketCards.WithLabelValues(strconv.Itoa(b)).Set(float64(n))
	}
}

// SetDay sets the day gauge.
func (p *PrometheusCollector) SetDay(day int) {
	p.ensureRegistered()
	p.day.Set(float64(day))
}

// RecordCardAdded increments the added-cards counter.
func (p *PrometheusCollector) RecordCardAdded() {
	p.ensureRegistered()
	p.cardsAdded.Inc()
}

// RecordHintRequest counts a hint lookup.
func (p *PrometheusCollector) RecordHintRequest(found bool) {
	p.ensureRegistered()
	result := "missing"
	if found {
		result = "found"
	}
	p.hintRequests.WithLabelValues(result).Inc()
}

// RecordHintSuggestion counts an LLM suggestion and observes its latency.
func (p *PrometheusCollector) RecordHintSuggestion(result string, seconds float64) {
	p.ensureRegistered()
	p.hintSuggestions.WithLabelValues(result).Inc()
	p.hintLatency.Observe(seconds)
}

// RecordHTTPRequest counts the request and observes its latency.
func (p *PrometheusCollector) RecordHTTPRequest(route, method string, status int, seconds float64) {
	p.ensureRegistered()
	p.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	p.httpLatency.WithLabelValues(route).Observe(seconds)
}
