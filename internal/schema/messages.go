package schema

// History is the ordered list of turns exchanged with the proxy service.
// It owns typed append methods so callers never build turns by hand.
type History struct {
	Turns []Turn
}

// NewHistory returns a History initialised with the given turns.
// Called with no arguments it returns an empty History ready for use.
func NewHistory(turns ...Turn) History {
	if len(turns) == 0 {
		return History{Turns: make([]Turn, 0)}
	}
	out := make([]Turn, len(turns))
	copy(out, turns)
	return History{Turns: out}
}

// AddUser appends a user turn.
func (h *History) AddUser(content string) {
	h.Turns = append(h.Turns, NewUserTurn(content))
}

// AddAssistant appends an assistant turn.
func (h *History) AddAssistant(content string) {
	h.Turns = append(h.Turns, NewAssistantTurn(content))
}

// Len returns the number of turns, counting each user and assistant turn
// separately.
func (h *History) Len() int {
	return len(h.Turns)
}

// Truncate drops every turn at position n and beyond.
// It is a no-op when the history already holds n turns or fewer.
func (h *History) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if len(h.Turns) <= n {
		return
	}
	clear(h.Turns[n:])
	h.Turns = h.Turns[:n]
}

// Clone returns a copy of h with an independent backing slice.
func (h *History) Clone() History {
	cloned := make([]Turn, len(h.Turns))
	copy(cloned, h.Turns)
	return History{Turns: cloned}
}
