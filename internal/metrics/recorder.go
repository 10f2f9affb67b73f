// Package metrics defines the instrumentation surface of the deck, the HTTP
// API and the hint service, with a no-op and a Prometheus implementation.
package metrics

// Recorder receives deck and service measurements.
type Recorder interface {
	// RecordAnswer counts one practice trial and the bucket move it caused.
	RecordAnswer(difficulty string, correct bool, fromBucket, toBucket int)
	// SetBucketSizes publishes the number of cards in every bucket.
	SetBucketSizes(sizes map[int]int)
	// SetDay publishes the current simulated day.
	SetDay(day int)
	// RecordCardAdded counts a newly created card.
	RecordCardAdded()
	// RecordHintRequest counts a hint lookup and whether a hint existed.
	RecordHintRequest(found bool)
	// RecordHintSuggestion counts an LLM hint suggestion by outcome.
	RecordHintSuggestion(result string, seconds float64)
	// RecordHTTPRequest observes one served HTTP request.
	RecordHTTPRequest(route, method string, status int, seconds float64)
}
