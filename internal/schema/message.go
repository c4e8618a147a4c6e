package schema

// Role identifies who authored a Turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry in the conversation history.
// Turns are never edited after being appended; the only mutation is removal
// of a trailing user turn when its exchange fails.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

func NewUserTurn(content string) Turn {
	return Turn{Role: RoleUser, Content: content}
}

func NewAssistantTurn(content string) Turn {
	return Turn{Role: RoleAssistant, Content: content}
}
