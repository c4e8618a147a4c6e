package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexuchat/nexuchat/internal/endpoint"
	"github.com/nexuchat/nexuchat/internal/proxy"
	"github.com/nexuchat/nexuchat/internal/schema"
)

// fakeRequester records calls and replays scripted outcomes.
type fakeRequester struct {
	replies []string
	errs    []error
	calls   int

	prompts  []string
	models   []string
	bases    []string
	bodies   []schema.ChatRequest
	observed func() // runs while the request is "in flight"
}

func (f *fakeRequester) next() (string, error) {
	i := f.calls
	f.calls++
	if f.observed != nil {
		f.observed()
	}
	var reply string
	var err error
	if i < len(f.replies) {
		reply = f.replies[i]
	}
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return reply, err
}

func (f *fakeRequester) Prompt(_ context.Context, base, prompt, model string) (string, error) {
	f.bases = append(f.bases, base)
	f.prompts = append(f.prompts, prompt)
	f.models = append(f.models, model)
	return f.next()
}

func (f *fakeRequester) Chat(_ context.Context, base string, body schema.ChatRequest) (string, error) {
	f.bases = append(f.bases, base)
	f.bodies = append(f.bodies, body)
	return f.next()
}

func newTestSession(f *fakeRequester) *Session {
	return New(f, endpoint.New("http://proxy.test/"))
}

func TestAsk_EmptyPrompt(t *testing.T) {
	f := &fakeRequester{}
	s := newTestSession(f)

	assert.Equal(t, "Please provide a prompt", s.Ask(context.Background(), ""))
	assert.Equal(t, "Please provide a prompt", s.AskWithHistory(context.Background(), ""))
	assert.Zero(t, f.calls, "no request may be constructed")
	assert.Equal(t, 0, s.HistoryLength())
	assert.Equal(t, NoResponse, s.LastResponse())
}

func TestAskResult_EmptyPromptIsNotOK(t *testing.T) {
	f := &fakeRequester{}
	s := newTestSession(f)

	for _, res := range []Result{
		s.AskResult(context.Background(), ""),
		s.AskWithHistoryResult(context.Background(), ""),
	} {
		assert.False(t, res.OK())
		assert.ErrorIs(t, res.Err, ErrEmptyPrompt)
		assert.Empty(t, res.Text)
		assert.Equal(t, PromptRequired, res.String())
	}
	assert.Zero(t, f.calls)
}

func TestAsk_Success(t *testing.T) {
	f := &fakeRequester{replies: []string{"pong"}}
	s := newTestSession(f)
	s.SetModel("gpt-x")

	assert.Equal(t, "pong", s.Ask(context.Background(), "ping"))
	assert.Equal(t, "pong", s.LastResponse())
	assert.Equal(t, []string{"ping"}, f.prompts)
	assert.Equal(t, []string{"gpt-x"}, f.models)
	assert.Equal(t, 0, s.HistoryLength(), "single-turn never touches history")
}

func TestAsk_FailureLeavesState(t *testing.T) {
	f := &fakeRequester{replies: []string{"first"}, errs: []error{nil, &proxy.HTTPError{Status: 503}}}
	s := newTestSession(f)

	require.Equal(t, "first", s.Ask(context.Background(), "a"))
	res := s.AskResult(context.Background(), "b")

	assert.False(t, res.OK())
	assert.Equal(t, "Error: HTTP 503", res.String())
	assert.Equal(t, "first", s.LastResponse())
	assert.False(t, s.IsLoading())
}

func TestAsk_TransportError(t *testing.T) {
	f := &fakeRequester{errs: []error{errors.New("dial tcp: connection refused")}}
	s := newTestSession(f)

	assert.Equal(t, "Error: dial tcp: connection refused", s.Ask(context.Background(), "x"))
}

func TestAsk_ReadsEndpointAtCallTime(t *testing.T) {
	f := &fakeRequester{}
	ep := endpoint.New("http://one/")
	s := New(f, ep)

	s.Ask(context.Background(), "a")
	ep.Set("http://two/")
	s.AskWithHistory(context.Background(), "b")

	assert.Equal(t, []string{"http://one/", "http://two/"}, f.bases)
}

func TestLoadingFlag(t *testing.T) {
	var during []bool
	f := &fakeRequester{errs: []error{nil, errors.New("x"), nil, errors.New("y")}}
	s := newTestSession(f)
	f.observed = func() { during = append(during, s.IsLoading()) }

	assert.False(t, s.IsLoading())
	s.Ask(context.Background(), "1")
	assert.False(t, s.IsLoading())
	s.Ask(context.Background(), "2")
	assert.False(t, s.IsLoading())
	s.AskWithHistory(context.Background(), "3")
	assert.False(t, s.IsLoading())
	s.AskWithHistory(context.Background(), "4")
	assert.False(t, s.IsLoading())

	assert.Equal(t, []bool{true, true, true, true}, during)
}

func TestAskWithHistory_BuildsRequest(t *testing.T) {
	f := &fakeRequester{replies: []string{"Hello!", "Fine."}}
	s := newTestSession(f)

	s.AskWithHistory(context.Background(), "Hi")
	s.SetModel("gpt-x")
	s.AskWithHistory(context.Background(), "How are you?")

	require.Len(t, f.bodies, 2)
	first := f.bodies[0]
	assert.Equal(t, []schema.Turn{schema.NewUserTurn("Hi")}, first.Messages)
	assert.Equal(t, 0.7, first.Temperature)
	assert.Equal(t, 100000, first.MaxTokens)
	assert.Empty(t, first.Model)

	second := f.bodies[1]
	assert.Equal(t, []schema.Turn{
		schema.NewUserTurn("Hi"),
		schema.NewAssistantTurn("Hello!"),
		schema.NewUserTurn("How are you?"),
	}, second.Messages)
	assert.Equal(t, "gpt-x", second.Model)
}

func TestAskWithHistory_RequestBodyIsSnapshot(t *testing.T) {
	f := &fakeRequester{replies: []string{"ok"}}
	s := newTestSession(f)

	s.AskWithHistory(context.Background(), "Hi")
	require.Len(t, f.bodies, 1)
	assert.Len(t, f.bodies[0].Messages, 1, "the assistant turn must not leak into the sent body")
}

func TestAskWithHistory_TransportErrorRollsBack(t *testing.T) {
	f := &fakeRequester{
		replies: []string{"Hello!", ""},
		errs:    []error{nil, errors.New("dial tcp: connection refused")},
	}
	s := newTestSession(f)

	require.Equal(t, "Hello!", s.AskWithHistory(context.Background(), "Hi"))
	before := s.History()

	res := s.AskWithHistoryResult(context.Background(), "Still there?")
	assert.False(t, res.OK())
	assert.Equal(t, "Error: dial tcp: connection refused", res.String())
	assert.Equal(t, 2, s.HistoryLength())
	assert.Equal(t, before, s.History())
	assert.Equal(t, "Hello!", s.LastResponse())
}

func TestHistoryLength_RollbackProperty(t *testing.T) {
	// pattern[i] reports whether call i fails.
	patterns := [][]bool{
		{},
		{false},
		{true},
		{true, true, true},
		{false, true, false, true, false},
		{true, false, false, true, true, false, true},
	}

	for i, pattern := range patterns {
		t.Run(fmt.Sprintf("pattern-%d", i), func(t *testing.T) {
			f := &fakeRequester{}
			successes := 0
			for n, fail := range pattern {
				if fail {
					// alternate status failures with transport failures
					var err error = &proxy.HTTPError{Status: 500}
					if n%2 == 1 {
						err = fmt.Errorf("request failed: %w", errors.New("connection reset by peer"))
					}
					f.errs = append(f.errs, err)
					f.replies = append(f.replies, "")
				} else {
					successes++
					f.errs = append(f.errs, nil)
					f.replies = append(f.replies, fmt.Sprintf("reply-%d", n))
				}
			}

			s := newTestSession(f)
			for n := range pattern {
				s.AskWithHistory(context.Background(), fmt.Sprintf("prompt-%d", n))
			}

			assert.Equal(t, 2*successes, s.HistoryLength())
			hist := s.History()
			for j := 0; j < len(hist); j += 2 {
				assert.Equal(t, schema.RoleUser, hist[j].Role)
				assert.Equal(t, schema.RoleAssistant, hist[j+1].Role)
			}
		})
	}
}

func TestModelSelector(t *testing.T) {
	s := newTestSession(&fakeRequester{})

	assert.Equal(t, ServerDefault, s.CurrentModel())
	s.SetModel("gpt-x")
	assert.Equal(t, "gpt-x", s.CurrentModel())
	s.ResetModel()
	assert.Equal(t, "(server default)", s.CurrentModel())
	s.ResetModel()
	assert.Equal(t, "(server default)", s.CurrentModel())

	s.SetModel("")
	assert.Equal(t, ServerDefault, s.CurrentModel(), "empty id behaves as unset")
}

func TestClearHistory_KeepsModel(t *testing.T) {
	f := &fakeRequester{replies: []string{"a"}}
	s := newTestSession(f)
	s.SetModel("gpt-x")
	s.AskWithHistory(context.Background(), "q")
	require.Equal(t, 2, s.HistoryLength())

	s.ClearHistory()

	assert.Equal(t, 0, s.HistoryLength())
	assert.Equal(t, NoResponse, s.LastResponse())
	assert.Equal(t, "gpt-x", s.CurrentModel())
}

// The scenarios below run against a real HTTP server through proxy.Client.

func newHTTPSession(t *testing.T, h http.HandlerFunc) *Session {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(proxy.NewClient(srv.Client()), endpoint.New(srv.URL+"/"))
}

func TestScenario_HistorySuccess(t *testing.T) {
	s := newHTTPSession(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		_, _ = w.Write([]byte("Hello!"))
	})

	out := s.AskWithHistory(context.Background(), "Hi")

	assert.Equal(t, "Hello!", out)
	assert.Equal(t, []schema.Turn{
		{Role: schema.RoleUser, Content: "Hi"},
		{Role: schema.RoleAssistant, Content: "Hello!"},
	}, s.History())
	assert.Equal(t, "Hello!", s.LastResponse())
}

func TestScenario_HistoryHTTP500(t *testing.T) {
	s := newHTTPSession(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	before := s.LastResponse()

	out := s.AskWithHistory(context.Background(), "Hi")

	assert.Equal(t, "Error: HTTP 500", out)
	assert.Empty(t, s.History())
	assert.Equal(t, before, s.LastResponse())
	assert.False(t, s.IsLoading())
}
