package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/leitner/internal/deck"
	"github.com/abhisek/leitner/internal/metrics"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, cfg Config, rec metrics.Recorder) (*Server, *deck.Deck) {
	t.Helper()
	d, err := deck.New(context.Background(), deck.WithSeed(deck.DefaultSeed()), deck.WithLogger(quietLogger()))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return NewServer(d, cfg, quietLogger(), rec), d
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, w)["message"]
}

func TestPractice(t *testing.T) {
	s, _ := newTestServer(t, Config{}, nil)

	w := do(t, s, http.MethodGet, "/api/practice", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	resp := decode[struct {
		Cards []struct {
			ID    string   `json:"id"`
			Front string   `json:"front"`
			Back  string   `json:"back"`
			Tags  []string `json:"tags"`
		} `json:"cards"`
		Day int `json:"day"`
	}](t, w)
	assert.Equal(t, 0, resp.Day)
	require.Len(t, resp.Cards, 4)
	assert.NotEmpty(t, resp.Cards[0].ID)
}

func TestUpdate(t *testing.T) {
	s, d := newTestServer(t, Config{}, nil)

	w := do(t, s, http.MethodPost, "/api/update", `{"cardFront":"2 + 2","cardBack":"4","difficulty":2}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[struct {
		Message string `json:"message"`
		Record  struct {
			Difficulty     string `json:"difficulty"`
			IsCorrect      bool   `json:"isCorrect"`
			PreviousBucket int    `json:"previousBucket"`
			NewBucket      int    `json:"newBucket"`
		} `json:"record"`
	}](t, w)
	assert.Equal(t, "Card updated successfully", resp.Message)
	assert.Equal(t, "Easy", resp.Record.Difficulty)
	assert.True(t, resp.Record.IsCorrect)
	assert.Equal(t, 0, resp.Record.PreviousBucket)
	assert.Equal(t, 1, resp.Record.NewBucket)

	w = do(t, s, http.MethodPost, "/api/update", `{"cardFront":"2 + 2","cardBack":"4","difficulty":"Hard","isCorrect":true}`)
	require.Equal(t, http.StatusOK, w.Code)

	history := d.History()
	require.Len(t, history, 2)
	assert.True(t, history[1].Correct)
	assert.Equal(t, 1, history[1].NewBucket)
}

func TestUpdate_Errors(t *testing.T) {
	s, d := newTestServer(t, Config{}, nil)

	tests := []struct {
		name    string
		body    string
		code    int
		message string
	}{
		{"out of range", `{"cardFront":"2 + 2","cardBack":"4","difficulty":5}`, http.StatusBadRequest, "Invalid difficulty level"},
		{"unknown name", `{"cardFront":"2 + 2","cardBack":"4","difficulty":"Medium"}`, http.StatusBadRequest, "Invalid difficulty level"},
		{"missing difficulty", `{"cardFront":"2 + 2","cardBack":"4"}`, http.StatusBadRequest, "Invalid difficulty level"},
		{"malformed", `{"cardFront":`, http.StatusBadRequest, "Invalid request body"},
		{"unknown card", `{"cardFront":"2 + 2","cardBack":"5","difficulty":1}`, http.StatusNotFound, "Card not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/api/update", tt.body)
			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, tt.message, message(t, w))
		})
	}
	assert.Empty(t, d.History())
}

func TestHint(t *testing.T) {
	s, d := newTestServer(t, Config{}, nil)
	_, err := d.AddCard(context.Background(), deck.NewCardInput{Front: "3 + 3", Back: "6"})
	require.NoError(t, err)

	q := url.Values{"cardFront": {"What is the capital of France?"}, "cardBack": {"Paris"}}
	w := do(t, s, http.MethodGet, "/api/hint?"+q.Encode(), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "European city", decode[map[string]string](t, w)["hint"])

	w = do(t, s, http.MethodGet, "/api/hint?cardFront=x", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodGet, "/api/hint?cardFront=x&cardBack=y", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Card not found", message(t, w))

	q = url.Values{"cardFront": {"3 + 3"}, "cardBack": {"6"}}
	w = do(t, s, http.MethodGet, "/api/hint?"+q.Encode(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Card has no hint", message(t, w))
}

func TestProgress(t *testing.T) {
	s, _ := newTestServer(t, Config{}, nil)

	do(t, s, http.MethodPost, "/api/update", `{"cardFront":"2 + 2","cardBack":"4","difficulty":"Easy"}`)
	do(t, s, http.MethodPost, "/api/update", `{"cardFront":"Who wrote Hamlet?","cardBack":"William Shakespeare","difficulty":"Hard"}`)

	w := do(t, s, http.MethodGet, "/api/progress", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[struct {
		TotalCards     int            `json:"totalCards"`
		CardsInBuckets map[string]int `json:"cardsInBuckets"`
		SuccessRate    float64        `json:"successRate"`
	}](t, w)
	assert.Equal(t, 4, resp.TotalCards)
	assert.Equal(t, map[string]int{"0": 3, "1": 1}, resp.CardsInBuckets)
	assert.Equal(t, 0.33, resp.SuccessRate)
}

func TestNextDay(t *testing.T) {
	s, d := newTestServer(t, Config{}, nil)

	w := do(t, s, http.MethodPost, "/api/day/next", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[map[string]int](t, w)["currentDay"])
	assert.Equal(t, 1, d.Day())

	w = do(t, s, http.MethodGet, "/api/day/next", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestAddCard(t *testing.T) {
	s, d := newTestServer(t, Config{}, nil)

	w := do(t, s, http.MethodPost, "/api/cards", `{"front":"Largest planet?","back":"Jupiter","hint":"Gas giant","tags":"space, science ,space"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decode[struct {
		Message string `json:"message"`
		Card    struct {
			ID     string   `json:"id"`
			Front  string   `json:"front"`
			Hint   string   `json:"hint"`
			Tags   []string `json:"tags"`
			Bucket int      `json:"bucket"`
		} `json:"card"`
	}](t, w)
	assert.Equal(t, "Card added successfully", resp.Message)
	assert.NotEmpty(t, resp.Card.ID)
	assert.Equal(t, "Gas giant", resp.Card.Hint)
	assert.Equal(t, []string{"space", "science"}, resp.Card.Tags)
	assert.Equal(t, 0, resp.Card.Bucket)

	w = do(t, s, http.MethodPost, "/api/cards", `{"front":"Smallest planet?","back":"Mercury","tags":["space"," "]}`)
	require.Equal(t, http.StatusCreated, w.Code)

	assert.Len(t, d.Cards(), 6)
}

func TestAddCard_Errors(t *testing.T) {
	s, _ := newTestServer(t, Config{}, nil)

	tests := []struct {
		name    string
		body    string
		code    int
		message string
	}{
		{"missing back", `{"front":"a"}`, http.StatusBadRequest, "Front and back are required"},
		{"blank front", `{"front":"  ","back":"b"}`, http.StatusBadRequest, "Front and back are required"},
		{"numeric tags", `{"front":"a","back":"b","tags":42}`, http.StatusBadRequest, "Tags must be a string or an array"},
		{"object tags", `{"front":"a","back":"b","tags":{"x":1}}`, http.StatusBadRequest, "Tags must be a string or an array"},
		{"duplicate", `{"front":"2 + 2","back":"4"}`, http.StatusConflict, "Card already exists"},
		{"no suggester", `{"front":"a","back":"b","suggestHint":true}`, http.StatusServiceUnavailable, "Hint suggestions are not configured"},
		{"malformed", `[`, http.StatusBadRequest, "Invalid request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/api/cards", tt.body)
			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, tt.message, message(t, w))
		})
	}
}

func TestCatalogue(t *testing.T) {
	s, _ := newTestServer(t, Config{}, nil)
	do(t, s, http.MethodPost, "/api/update", `{"cardFront":"2 + 2","cardBack":"4","difficulty":"Easy"}`)

	w := do(t, s, http.MethodGet, "/api/cards", "")
	require.Equal(t, http.StatusOK, w.Code)
	cards := decode[[]struct {
		Front  string `json:"front"`
		Bucket int    `json:"bucket"`
	}](t, w)
	require.Len(t, cards, 4)
	assert.Equal(t, "2 + 2", cards[1].Front)
	assert.Equal(t, 1, cards[1].Bucket)

	w = do(t, s, http.MethodGet, "/api/tags", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"geography", "math", "literature", "science"}, decode[[]string](t, w))

	w = do(t, s, http.MethodGet, "/api/history", "")
	require.Equal(t, http.StatusOK, w.Code)
	history := decode[[]map[string]any](t, w)
	require.Len(t, history, 1)
	assert.Equal(t, "Easy", history[0]["difficulty"])
	assert.Equal(t, "2 + 2", history[0]["cardFront"])
}

func TestCORS(t *testing.T) {
	s, _ := newTestServer(t, Config{AllowOrigin: "http://localhost:5173"}, nil)

	w := do(t, s, http.MethodOptions, "/api/update", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Content-Type")

	w = do(t, s, http.MethodGet, "/api/tags", "")
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, Config{}, nil)
	w := do(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok\n", w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := metrics.NewPrometheus(reg, "leitner")
	s, _ := newTestServer(t, Config{Gatherer: reg}, rec)

	do(t, s, http.MethodGet, "/api/practice", "")
	do(t, s, http.MethodGet, "/nope", "")

	w := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `leitner_http_requests_total{code="200",method="GET",route="GET /api/practice"} 1`)
	assert.Contains(t, body, `route="unmatched"`)
}

func TestMetricsEndpointDisabled(t *testing.T) {
	s, _ := newTestServer(t, Config{}, nil)
	w := do(t, s, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	s, _ := newTestServer(t, Config{ShutdownTimeout: time.Second}, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}
