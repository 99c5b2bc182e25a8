package engine

import (
	"context"

	"github.com/ChamsBouzaiene/voyager/internal/prompts"
)

// Agent represents an agent instance that can run conversations.
type Agent struct {
	llm       LLMClient
	tools     ToolRegistry
	config    AgentConfig
	hooks     Hooks
	prompt    *prompts.Prompt
	lastState *State
}

// Run executes a single user message through the agent.
// It maintains conversation history across multiple calls.
func (a *Agent) Run(ctx context.Context, userMessage string) error {
	var st *State

	// Reuse previous state so conversation history carries across turns
	if a.lastState != nil && len(a.lastState.History) > 0 {
		st = &State{
			History:  make([]ChatMessage, len(a.lastState.History)),
			Model:    a.config.Model,
			MaxSteps: a.config.MaxSteps,
			Totals:   a.lastState.Totals, // Preserve accumulated token usage
		}
		copy(st.History, a.lastState.History)
	} else {
		// First run: seed with system prompt
		st = &State{
			History: []ChatMessage{
				{Role: RoleSystem, Content: a.prompt.Content},
			},
			Model:    a.config.Model,
			MaxSteps: a.config.MaxSteps,
		}
	}

	st.Append(ChatMessage{
		Role:    RoleUser,
		Content: userMessage,
	})

	maxOutputTokens := a.config.MaxOutputTokens
	if maxOutputTokens == 0 {
		maxOutputTokens = 8192
	}
	opts := ChatOptions{
		MaxOutputTokens: maxOutputTokens,
		RetryConfig:     a.config.RetryConfig,
	}

	err := Run(ctx, a.llm, a.tools, st, a.hooks, opts)
	a.lastState = st
	return err
}

// Append adds a message to the agent's conversation history.
// Messages appended here will be preserved in the next Run() call.
func (a *Agent) Append(msg ChatMessage) {
	if a.lastState == nil {
		history := []ChatMessage{}
		if a.prompt != nil {
			history = append(history, ChatMessage{Role: RoleSystem, Content: a.prompt.Content})
		}
		a.lastState = &State{
			History:  history,
			Model:    a.config.Model,
			MaxSteps: a.config.MaxSteps,
		}
	}

	a.lastState.Append(msg)
}

// LastState returns the most recent conversation state after Run completes.
// Callers should treat the returned state as read-only.
func (a *Agent) LastState() *State {
	return a.lastState
}

// SetLLM replaces the agent's LLM client and model name at runtime.
// Conversation history is preserved across the swap.
func (a *Agent) SetLLM(client LLMClient, modelName string) {
	a.llm = client
	a.config.Model = modelName

	if a.lastState != nil {
		a.lastState.Model = modelName
	}
}
