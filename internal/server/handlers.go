package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/desertthunder/ytlink/internal/models"
	"github.com/desertthunder/ytlink/internal/shared"
)

// StatusClientClosedRequest is reported when the caller went away mid-conversion.
const StatusClientClosedRequest = 499

const maxRequestBytes = 1 << 20

type convertResponse struct {
	Kind      models.ResourceKind `json:"kind"`
	Label     string              `json:"label"`
	Link      string              `json:"link"`
	Query     string              `json:"query"`
	SourceURL string              `json:"source_url"`
}

type messageRequest struct {
	Author  string `json:"author"`
	Bot     bool   `json:"bot"`
	Content string `json:"content"`
}

type historyRequest struct {
	History []messageRequest `json:"history"`
}

type repliesResponse struct {
	Replies []string `json:"replies"`
}

// replyRecorder is a chat.Channel that buffers replies for the response body.
type replyRecorder struct {
	mu      sync.Mutex
	replies []string
}

func (c *replyRecorder) Send(_ context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replies = append(c.replies, text)
	return nil
}

func (c *replyRecorder) response() repliesResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	return repliesResponse{Replies: append([]string{}, c.replies...)}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": ServiceName,
	})
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	url := strings.TrimSpace(r.URL.Query().Get("url"))
	if url == "" {
		writeError(w, http.StatusBadRequest, "missing_argument", "url is required")
		return
	}
	if s.converter == nil {
		writeError(w, http.StatusServiceUnavailable, "unavailable", "converter not configured")
		return
	}

	result, err := s.converter.Resolve(r.Context(), url)
	if err != nil {
		writeError(w, statusFor(err), shared.ErrorKind(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, convertResponse{
		Kind:      result.Kind,
		Label:     result.Label,
		Link:      result.Link,
		Query:     result.Query,
		SourceURL: result.SourceURL,
	})
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var body messageRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if s.bot == nil {
		writeError(w, http.StatusServiceUnavailable, "unavailable", "bot not configured")
		return
	}

	ch := &replyRecorder{}
	if err := s.bot.OnMessage(r.Context(), ch, body.message()); err != nil {
		writeError(w, http.StatusInternalServerError, shared.ErrorKind(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ch.response())
}

func (s *Server) handleConvertCommand(w http.ResponseWriter, r *http.Request) {
	var body historyRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if s.bot == nil {
		writeError(w, http.StatusServiceUnavailable, "unavailable", "bot not configured")
		return
	}

	history := make([]models.Message, len(body.History))
	for i, m := range body.History {
		history[i] = m.message()
	}

	ch := &replyRecorder{}
	if err := s.bot.Convert(r.Context(), ch, history); err != nil {
		writeError(w, http.StatusInternalServerError, shared.ErrorKind(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ch.response())
}

func (m messageRequest) message() models.Message {
	return models.Message{
		ID:      shared.GenerateID(),
		Author:  m.Author,
		Bot:     m.Bot,
		Content: m.Content,
		SentAt:  time.Now(),
	}
}

// statusFor maps a conversion error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrUnrecognizedLink):
		return http.StatusUnprocessableEntity
	case errors.Is(err, shared.ErrMetadataNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrCancelled):
		return StatusClientClosedRequest
	case errors.Is(err, shared.ErrFetch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, map[string]string{
		"error":   kind,
		"message": message,
	})
}
