package engine

import (
	"context"
	"fmt"
	"log"

	"github.com/ChamsBouzaiene/voyager/internal/prompts"
)

// AgentBuilder helps construct an Agent with a fluent API.
type AgentBuilder struct {
	config AgentConfig
	llm    LLMClient
	tools  ToolRegistry
	hooks  Hooks
	prompt *prompts.Prompt
}

// NewAgentBuilder creates a new agent builder with default configuration.
func NewAgentBuilder() *AgentBuilder {
	return &AgentBuilder{
		config: DefaultAgentConfig(),
	}
}

// WithModel sets the model name.
func (b *AgentBuilder) WithModel(model string) *AgentBuilder {
	b.config.Model = model
	return b
}

// WithLLM sets the LLM client.
func (b *AgentBuilder) WithLLM(llm LLMClient) *AgentBuilder {
	b.llm = llm
	return b
}

// WithMaxSteps sets the maximum number of steps.
func (b *AgentBuilder) WithMaxSteps(maxSteps int) *AgentBuilder {
	b.config.MaxSteps = maxSteps
	return b
}

// WithMaxOutputTokens sets the maximum output tokens for LLM responses.
// If not set, defaults to 8192.
func (b *AgentBuilder) WithMaxOutputTokens(tokens int) *AgentBuilder {
	b.config.MaxOutputTokens = tokens
	return b
}

// WithRetryConfig sets the retry configuration.
func (b *AgentBuilder) WithRetryConfig(retryConfig *RetryConfig) *AgentBuilder {
	b.config.RetryConfig = retryConfig
	return b
}

// WithToolRegistry allows callers to provide a fully constructed tool registry.
func (b *AgentBuilder) WithToolRegistry(reg ToolRegistry, set ToolSet) *AgentBuilder {
	b.tools = reg
	b.config.ToolSet = set
	return b
}

// WithPrompt sets the prompt ID and version.
func (b *AgentBuilder) WithPrompt(id string, version prompts.PromptVersion) (*AgentBuilder, error) {
	registry := prompts.DefaultRegistry()
	prompt, err := registry.Get(id, version)
	if err != nil {
		return nil, err
	}
	b.prompt = prompt
	b.config.PromptID = id
	b.config.PromptVersion = version
	return b, nil
}

// WithRenderedPrompt supplies a prompt whose template variables have
// already been substituted, bypassing the registry lookup.
func (b *AgentBuilder) WithRenderedPrompt(p *prompts.Prompt) *AgentBuilder {
	b.prompt = p
	b.config.PromptID = p.ID
	b.config.PromptVersion = p.Version
	return b
}

// WithHooks sets custom hooks.
func (b *AgentBuilder) WithHooks(hooks Hooks) *AgentBuilder {
	b.hooks = hooks
	return b
}

// Build constructs the Agent instance.
func (b *AgentBuilder) Build(ctx context.Context) (*Agent, error) {
	if b.llm == nil {
		return nil, fmt.Errorf("LLM client not configured: use WithLLM")
	}

	if b.tools == nil {
		return nil, fmt.Errorf("tools not configured: use WithToolRegistry")
	}

	// Get prompt if not set
	if b.prompt == nil {
		registry := prompts.DefaultRegistry()
		prompt, err := registry.GetLatest(b.config.PromptID)
		if err != nil {
			return nil, err
		}
		b.prompt = prompt
	}

	// Create default hooks if not set
	if b.hooks == nil {
		b.hooks = DefaultHooks()
	}

	log.Printf("prompt: %s@%s, tools: %d available", b.prompt.ID, b.prompt.Version, len(b.tools))

	return &Agent{
		llm:    b.llm,
		tools:  b.tools,
		config: b.config,
		hooks:  b.hooks,
		prompt: b.prompt,
	}, nil
}
