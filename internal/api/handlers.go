package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/abhisek/leitner/internal/deck"
	"github.com/abhisek/leitner/internal/flashcard"
	"github.com/abhisek/leitner/internal/leitner"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

type messageResponse struct {
	Message string `json:"message"`
}

type practiceResponse struct {
	Cards []*flashcard.Card `json:"cards"`
	Day   int               `json:"day"`
}

type updateRequest struct {
	CardFront  string              `json:"cardFront"`
	CardBack   string              `json:"cardBack"`
	Difficulty *leitner.Difficulty `json:"difficulty"`
	IsCorrect  *bool               `json:"isCorrect,omitempty"`
}

type updateResponse struct {
	Message string                 `json:"message"`
	Record  leitner.PracticeRecord `json:"record"`
}

type hintResponse struct {
	Hint string `json:"hint"`
}

type dayResponse struct {
	CurrentDay int `json:"currentDay"`
}

type addCardRequest struct {
	Front       string          `json:"front"`
	Back        string          `json:"back"`
	Hint        *string         `json:"hint,omitempty"`
	Tags        json.RawMessage `json:"tags,omitempty"`
	SuggestHint bool            `json:"suggestHint,omitempty"`
}

type cardView struct {
	*flashcard.Card
	Bucket int `json:"bucket"`
}

type addCardResponse struct {
	Message string   `json:"message"`
	Card    cardView `json:"card"`
}

func (s *Server) handlePractice(w http.ResponseWriter, _ *http.Request) {
	day, cards, err := s.deck.DueCards()
	if err != nil {
		s.internalError(w, "Error fetching practice cards", err)
		return
	}
	s.logger.Info("practice cards", "day", day, "count", len(cards))
	s.writeJSON(w, http.StatusOK, practiceResponse{Cards: cards, Day: day})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := decodeBody(w, r, &req); err != nil {
		if errors.Is(err, leitner.ErrInvalidDifficulty) {
			s.sendError(w, http.StatusBadRequest, "Invalid difficulty level")
			return
		}
		s.sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Difficulty == nil || !req.Difficulty.IsValid() {
		s.sendError(w, http.StatusBadRequest, "Invalid difficulty level")
		return
	}

	rec, err := s.deck.Answer(r.Context(), deck.AnswerInput{
		Front:      req.CardFront,
		Back:       req.CardBack,
		Difficulty: *req.Difficulty,
		Correct:    req.IsCorrect,
	})
	switch {
	case errors.Is(err, deck.ErrCardNotFound):
		s.sendError(w, http.StatusNotFound, "Card not found")
		return
	case err != nil:
		s.internalError(w, "Error updating card", err)
		return
	}

	s.writeJSON(w, http.StatusOK, updateResponse{Message: "Card updated successfully", Record: rec})
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("cardFront") || !q.Has("cardBack") {
		s.sendError(w, http.StatusBadRequest, "Missing cardFront or cardBack query parameter")
		return
	}

	hint, err := s.deck.Hint(q.Get("cardFront"), q.Get("cardBack"))
	switch {
	case errors.Is(err, deck.ErrCardNotFound):
		s.sendError(w, http.StatusNotFound, "Card not found")
		return
	case errors.Is(err, leitner.ErrMissingHint):
		s.sendError(w, http.StatusNotFound, "Card has no hint")
		return
	case err != nil:
		s.internalError(w, "Error getting hint", err)
		return
	}

	s.writeJSON(w, http.StatusOK, hintResponse{Hint: hint})
}

func (s *Server) handleProgress(w http.ResponseWriter, _ *http.Request) {
	p, err := s.deck.Progress()
	if err != nil {
		s.internalError(w, "Error computing progress", err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleNextDay(w http.ResponseWriter, r *http.Request) {
	day, err := s.deck.AdvanceDay(r.Context())
	if err != nil {
		s.internalError(w, "Error advancing to the next day", err)
		return
	}
	s.writeJSON(w, http.StatusOK, dayResponse{CurrentDay: day})
}

func (s *Server) handleAddCard(w http.ResponseWriter, r *http.Request) {
	var req addCardRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Front == "" || req.Back == "" {
		s.sendError(w, http.StatusBadRequest, "Front and back are required")
		return
	}
	tags, ok := parseTagsField(req.Tags)
	if !ok {
		s.sendError(w, http.StatusBadRequest, "Tags must be a string or an array")
		return
	}

	card, err := s.deck.AddCard(r.Context(), deck.NewCardInput{
		Front:       req.Front,
		Back:        req.Back,
		Hint:        req.Hint,
		Tags:        tags,
		SuggestHint: req.SuggestHint,
	})
	switch {
	case errors.Is(err, deck.ErrInvalidCard):
		s.sendError(w, http.StatusBadRequest, "Front and back are required")
		return
	case errors.Is(err, deck.ErrDuplicateCard):
		s.sendError(w, http.StatusConflict, "Card already exists")
		return
	case errors.Is(err, deck.ErrHintsUnavailable):
		s.sendError(w, http.StatusServiceUnavailable, "Hint suggestions are not configured")
		return
	case err != nil:
		s.internalError(w, "Error adding card", err)
		return
	}

	s.writeJSON(w, http.StatusCreated, addCardResponse{
		Message: "Card added successfully",
		Card:    cardView{Card: card, Bucket: 0},
	})
}

func (s *Server) handleListCards(w http.ResponseWriter, _ *http.Request) {
	cards := s.deck.Cards()
	out := make([]cardView, 0, len(cards))
	for _, c := range cards {
		b, _ := s.deck.CardBucket(c.ID)
		out = append(out, cardView{Card: c, Bucket: b})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTags(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.deck.Tags())
}

func (s *Server) handleHistory(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.deck.History())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

// parseTagsField accepts a comma-separated string, a list of strings, null
// or an absent field.
func parseTagsField(raw json.RawMessage) ([]string, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return flashcard.ParseTags(s), true
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return flashcard.NormalizeTags(list), true
	}
	return nil, false
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("writing JSON response", "error", err)
	}
}

func (s *Server) sendError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, messageResponse{Message: msg})
}

func (s *Server) internalError(w http.ResponseWriter, msg string, err error) {
	s.logger.Error(msg, "error", err)
	s.sendError(w, http.StatusInternalServerError, msg)
}
