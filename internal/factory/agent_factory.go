// Package factory assembles a ready-to-run planner agent from its parts:
// the itinerary store, the search clients, the LLM provider, and the
// planner prompt.
package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/ChamsBouzaiene/voyager/internal/engine"
	"github.com/ChamsBouzaiene/voyager/internal/itinerary"
	"github.com/ChamsBouzaiene/voyager/internal/prompts"
	"github.com/ChamsBouzaiene/voyager/internal/providers"
	"github.com/ChamsBouzaiene/voyager/internal/tools"
)

// BuildPlannerAgent creates a fully configured trip-planning agent.
// Search categories whose client is nil are left out of the tool set so
// the prompt never advertises a tool that would fail at call time.
func BuildPlannerAgent(ctx context.Context, store *itinerary.Store, clients tools.Clients, extraHooks ...engine.Hook) (*engine.Agent, error) {
	toolSet := engine.ToolSet{
		Trip:       true,
		Flights:    clients.Flights != nil,
		Hotels:     clients.Hotels != nil,
		Activities: clients.Activities != nil,
		Meta:       true,
	}

	registry, err := tools.NewToolRegistry(store, clients, toolSet)
	if err != nil {
		return nil, fmt.Errorf("failed to create tool registry: %w", err)
	}

	llm, modelName, err := providers.NewLLMClientFromEnv(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	prompt, err := renderPlannerPrompt()
	if err != nil {
		return nil, fmt.Errorf("failed to render planner prompt: %w", err)
	}

	hooks := append(engine.DefaultHooks(), extraHooks...)

	agent, err := engine.NewAgentBuilder().
		WithLLM(llm).
		WithModel(modelName).
		WithToolRegistry(registry, toolSet).
		WithRenderedPrompt(prompt).
		WithHooks(hooks).
		Build(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build planner agent: %w", err)
	}

	return agent, nil
}

// renderPlannerPrompt substitutes the system_time variable so the model
// can reason about relative dates like "next weekend".
func renderPlannerPrompt() (*prompts.Prompt, error) {
	builder, err := prompts.NewPromptBuilder(prompts.DefaultRegistry(), "planner", prompts.PromptV1)
	if err != nil {
		return nil, err
	}

	content, err := builder.
		SetVariable("system_time", time.Now().UTC().Format(time.RFC3339)).
		Build()
	if err != nil {
		return nil, err
	}

	return &prompts.Prompt{
		ID:      "planner",
		Version: prompts.PromptV1,
		Content: content,
	}, nil
}
