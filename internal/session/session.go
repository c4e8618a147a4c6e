// Package session implements the conversation session: single-turn and
// multi-turn prompting, the model override, and the last reply.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/nexuchat/nexuchat/internal/endpoint"
	"github.com/nexuchat/nexuchat/internal/schema"
	"github.com/nexuchat/nexuchat/internal/shared/stringutils"
)

const (
	// PromptRequired is returned for an empty prompt; no request is made.
	PromptRequired = "Please provide a prompt"
	// ServerDefault is reported by CurrentModel when no override is set.
	ServerDefault = "(server default)"
	// NoResponse is reported by LastResponse before the first successful call.
	NoResponse = "No response yet"

	chatTemperature = 0.7
	chatMaxTokens   = 100000

	logPreviewLen = 80
)

// ErrEmptyPrompt rejects an empty prompt before any request is built.
// Its rendered form is PromptRequired, without the "Error: " prefix.
var ErrEmptyPrompt = errors.New(PromptRequired)

// Requester is the part of the proxy client a session needs.
type Requester interface {
	Prompt(ctx context.Context, base, prompt, model string) (string, error)
	Chat(ctx context.Context, base string, body schema.ChatRequest) (string, error)
}

// Session holds one conversation's history, model override and last reply.
//
// Only one request is expected in flight at a time. mu guards state but is
// never held across a network call, so readers see either the pre-call or
// the post-call state.
type Session struct {
	ID string

	client   Requester
	endpoint *endpoint.Endpoint

	mu           sync.Mutex
	history      schema.History
	model        string // empty means defer to the server default
	lastResponse string

	loading atomic.Bool
}

// New creates an empty session that sends requests through client to
// whatever URL ep holds at call time.
func New(client Requester, ep *endpoint.Endpoint) *Session {
	return &Session{
		ID:       uuid.NewString(),
		client:   client,
		endpoint: ep,
		history:  schema.NewHistory(),
	}
}

// Ask sends a single-turn prompt. Failures come back as "Error: …" strings.
func (s *Session) Ask(ctx context.Context, prompt string) string {
	return s.AskResult(ctx, prompt).String()
}

// AskResult is Ask with the outcome kept as a structured Result.
// History is never touched.
func (s *Session) AskResult(ctx context.Context, prompt string) Result {
	if prompt == "" {
		return Result{Err: ErrEmptyPrompt}
	}

	s.loading.Store(true)
	defer s.loading.Store(false)

	model := s.Model()
	slog.Debug("session: ask", "session", s.ID, "model", model, "prompt", stringutils.Truncate(prompt, logPreviewLen))

	text, err := s.client.Prompt(ctx, s.endpoint.Get(), prompt, model)
	if err != nil {
		slog.Warn("session: ask failed", "session", s.ID, "err", err)
		return Result{Err: err}
	}

	s.mu.Lock()
	s.lastResponse = text
	s.mu.Unlock()
	return Result{Text: text}
}

// AskWithHistory sends prompt together with the whole conversation so far.
// Failures come back as "Error: …" strings.
func (s *Session) AskWithHistory(ctx context.Context, prompt string) string {
	return s.AskWithHistoryResult(ctx, prompt).String()
}

// AskWithHistoryResult appends the user turn before sending and either
// appends the assistant reply on success or removes the user turn on
// failure. The history never ends with an unanswered user turn once this
// returns.
func (s *Session) AskWithHistoryResult(ctx context.Context, prompt string) Result {
	if prompt == "" {
		return Result{Err: ErrEmptyPrompt}
	}

	s.loading.Store(true)
	defer s.loading.Store(false)

	s.mu.Lock()
	mark := s.history.Len()
	s.history.AddUser(prompt)
	body := schema.ChatRequest{
		Messages:    s.history.Clone().Turns,
		Temperature: chatTemperature,
		MaxTokens:   chatMaxTokens,
		Model:       s.model,
	}
	s.mu.Unlock()

	slog.Debug("session: ask with history", "session", s.ID, "model", body.Model, "turns", len(body.Messages))

	text, err := s.client.Chat(ctx, s.endpoint.Get(), body)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.history.Truncate(mark)
		slog.Warn("session: ask with history failed, rolled back", "session", s.ID, "turns", s.history.Len(), "err", err)
		return Result{Err: err}
	}

	s.lastResponse = text
	s.history.AddAssistant(text)
	return Result{Text: text}
}

// SetModel overrides the model for subsequent requests. The id is not
// checked against the catalog.
func (s *Session) SetModel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model = id
}

// Model returns the raw override, empty when unset.
func (s *Session) Model() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model
}

// CurrentModel returns the override or ServerDefault.
func (s *Session) CurrentModel() string {
	if m := s.Model(); m != "" {
		return m
	}
	return ServerDefault
}

func (s *Session) ResetModel() {
	s.SetModel("")
}

// LastResponse returns the most recent successful reply or NoResponse.
func (s *Session) LastResponse() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastResponse == "" {
		return NoResponse
	}
	return s.lastResponse
}

// ClearHistory drops all turns and the last reply. The model override is kept.
func (s *Session) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = schema.NewHistory()
	s.lastResponse = ""
}

// IsLoading reports whether a request is outstanding.
func (s *Session) IsLoading() bool {
	return s.loading.Load()
}

// HistoryLength counts turns, not exchanges.
func (s *Session) HistoryLength() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Len()
}

// History returns a snapshot of the conversation.
func (s *Session) History() []schema.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Clone().Turns
}
