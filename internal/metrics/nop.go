package metrics

// NopMetrics implements a no-op Recorder.
//
// All metrics are discarded. Used by tests and by CLI commands that exit
// before anything could scrape them.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements Recorder.
var _ Recorder = (*NopMetrics)(nil)

// NewNop creates a new no-op recorder.
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// RecordAnswer discards the practice trial.
func (n *NopMetrics) RecordAnswer(_ string, _ bool, _, _ int) {}

// SetBucketSizes discards the bucket histogram.
func (n *NopMetrics) SetBucketSizes(_ map[int]int) {}

// SetDay discards the day gauge.
func (n *NopMetrics) SetDay(_ int) {}

// RecordCardAdded discards the card counter.
func (n *NopMetrics) RecordCardAdded() {}

// RecordHintRequest discards the hint lookup.
func (n *NopMetrics) RecordHintRequest(_ bool) {}

// RecordHintSuggestion discards the suggestion outcome.
func (n *NopMetrics) RecordHintSuggestion(_ string, _ float64) {}

// RecordHTTPRequest discards the request observation.
func (n *NopMetrics) RecordHTTPRequest(_, _ string, _ int, _ float64) {}
