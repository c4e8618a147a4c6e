package session

import "errors"

// Result is the outcome of a prompt. Exactly one of Text or Err is
// meaningful; an empty Text with a nil Err is a valid empty reply.
type Result struct {
	Text string
	Err  error
}

func (r Result) OK() bool { return r.Err == nil }

// String renders the result in the form handed back to the host:
// the reply text, or "Error: <message>". An empty prompt renders as the
// bare PromptRequired message.
func (r Result) String() string {
	if errors.Is(r.Err, ErrEmptyPrompt) {
		return PromptRequired
	}
	if r.Err != nil {
		return "Error: " + r.Err.Error()
	}
	return r.Text
}
