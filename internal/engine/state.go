package engine

type State struct {
	History  []ChatMessage // Conversation history
	Step     int           // Current step (increments only on success)
	Retries  int           // Retry attempts (tracked separately from steps)
	Done     bool          // True when LLM provides final answer (no tool calls)
	Model    string        // LLM model name
	MaxSteps int           // Maximum steps before stopping
	Totals   Usage         // Accumulated token usage across all calls
}

func (s *State) Append(msg ChatMessage) { s.History = append(s.History, msg) }
