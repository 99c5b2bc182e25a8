package engine

import (
	"github.com/ChamsBouzaiene/voyager/internal/prompts"
)

// AgentConfig holds configuration for an agent instance.
type AgentConfig struct {
	Model           string
	MaxSteps        int
	RetryConfig     *RetryConfig
	ToolSet         ToolSet
	PromptID        string
	PromptVersion   prompts.PromptVersion
	MaxOutputTokens int // Maximum tokens for LLM output (0 = use default)
}

// DefaultAgentConfig returns a default agent configuration.
func DefaultAgentConfig() AgentConfig {
	return AgentConfig{
		Model:           "gpt-4o-mini",
		MaxSteps:        30,
		ToolSet:         DefaultToolSet(),
		PromptID:        "planner",
		MaxOutputTokens: 8192,
	}
}
