package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// scriptedLLM returns canned responses in sequence.
type scriptedLLM struct {
	responses []LLMResponse
	errs      []error
	calls     int
}

func (s *scriptedLLM) Chat(ctx context.Context, model string, messages []ChatMessage, toolSchemas []ToolSchema, opts ChatOptions) (LLMResponse, error) {
	idx := s.calls
	s.calls++
	if idx < len(s.errs) && s.errs[idx] != nil {
		return LLMResponse{}, s.errs[idx]
	}
	if idx >= len(s.responses) {
		return LLMResponse{Assistant: ChatMessage{Role: RoleAssistant, Content: "done"}, FinishReason: "stop"}, nil
	}
	return s.responses[idx], nil
}

func echoTool() Tool {
	return Tool{
		Name:        "echo",
		Description: "Echoes the message back",
		SchemaJSON:  `{"type":"object","properties":{"message":{"type":"string"}},"required":["message"]}`,
		Retryable:   true,
		Fn: func(ctx context.Context, args map[string]any) (string, error) {
			return args["message"].(string), nil
		},
	}
}

func TestRunStopsOnFinalAnswer(t *testing.T) {
	llm := &scriptedLLM{
		responses: []LLMResponse{
			{Assistant: ChatMessage{Role: RoleAssistant, Content: "Here is your plan"}, FinishReason: "stop"},
		},
	}
	st := &State{Model: "test-model", MaxSteps: 5}
	st.Append(ChatMessage{Role: RoleUser, Content: "hello"})

	if err := Run(context.Background(), llm, ToolRegistry{}, st, Hooks{NopHook{}}, ChatOptions{}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !st.Done {
		t.Errorf("Expected Done after final answer")
	}
	if st.Step != 1 {
		t.Errorf("Expected 1 step, got %d", st.Step)
	}
	last := st.History[len(st.History)-1]
	if last.Role != RoleAssistant || last.Content != "Here is your plan" {
		t.Errorf("Unexpected last message: %+v", last)
	}
}

func TestRunExecutesToolsThenFinishes(t *testing.T) {
	llm := &scriptedLLM{
		responses: []LLMResponse{
			{
				Assistant: ChatMessage{Role: RoleAssistant},
				ToolCalls: []ToolCall{
					{ID: "call_1", Name: "echo", Args: map[string]any{"message": "ping"}},
				},
				FinishReason: "tool_calls",
			},
			{Assistant: ChatMessage{Role: RoleAssistant, Content: "all done"}, FinishReason: "stop"},
		},
	}
	reg := ToolRegistry{"echo": echoTool()}
	st := &State{Model: "test-model", MaxSteps: 5}
	st.Append(ChatMessage{Role: RoleUser, Content: "use the tool"})

	if err := Run(context.Background(), llm, reg, st, Hooks{NopHook{}}, ChatOptions{}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if st.Step != 2 {
		t.Errorf("Expected 2 steps, got %d", st.Step)
	}

	var toolMsg *ChatMessage
	for i := range st.History {
		if st.History[i].Role == RoleTool {
			toolMsg = &st.History[i]
		}
	}
	if toolMsg == nil {
		t.Fatalf("Expected a tool message in history")
	}
	if toolMsg.Name != "call_1" {
		t.Errorf("Expected tool message keyed by call ID, got %q", toolMsg.Name)
	}
	if toolMsg.Content != "ping" {
		t.Errorf("Expected tool result 'ping', got %q", toolMsg.Content)
	}
}

func TestRunRecordsToolErrorAsMessage(t *testing.T) {
	llm := &scriptedLLM{
		responses: []LLMResponse{
			{
				Assistant: ChatMessage{Role: RoleAssistant},
				ToolCalls: []ToolCall{
					{ID: "call_1", Name: "echo", Args: map[string]any{}}, // missing required arg
				},
				FinishReason: "tool_calls",
			},
			{Assistant: ChatMessage{Role: RoleAssistant, Content: "recovered"}, FinishReason: "stop"},
		},
	}
	reg := ToolRegistry{"echo": echoTool()}
	st := &State{Model: "test-model", MaxSteps: 5}
	st.Append(ChatMessage{Role: RoleUser, Content: "break the tool"})

	if err := Run(context.Background(), llm, reg, st, Hooks{NopHook{}}, ChatOptions{}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var toolMsg string
	for _, m := range st.History {
		if m.Role == RoleTool {
			toolMsg = m.Content
		}
	}
	if !strings.HasPrefix(toolMsg, "ERROR:") {
		t.Errorf("Expected validation failure surfaced to the model, got %q", toolMsg)
	}
}

func TestRunSurfacesNonRetryableLLMError(t *testing.T) {
	llm := &scriptedLLM{
		errs: []error{errors.New("401 unauthorized")},
	}
	st := &State{Model: "test-model", MaxSteps: 5}
	st.Append(ChatMessage{Role: RoleUser, Content: "hello"})

	err := Run(context.Background(), llm, ToolRegistry{}, st, Hooks{NopHook{}}, ChatOptions{})
	if err == nil {
		t.Fatalf("Expected error from Run")
	}
	if llm.calls != 1 {
		t.Errorf("Expected no retries for auth error, got %d calls", llm.calls)
	}
	var ctxErr *EngineContextError
	if !errors.As(err, &ctxErr) || ctxErr.Operation != "llm_call" {
		t.Errorf("Expected llm_call context on error, got %v", err)
	}
}

func TestRunStopsAtMaxSteps(t *testing.T) {
	// Every response requests another tool call, never finishing.
	loop := LLMResponse{
		Assistant:    ChatMessage{Role: RoleAssistant},
		ToolCalls:    []ToolCall{{ID: "c", Name: "echo", Args: map[string]any{"message": "again"}}},
		FinishReason: "tool_calls",
	}
	llm := &scriptedLLM{responses: []LLMResponse{loop, loop, loop, loop, loop}}
	reg := ToolRegistry{"echo": echoTool()}
	st := &State{Model: "test-model", MaxSteps: 3}
	st.Append(ChatMessage{Role: RoleUser, Content: "loop"})

	if err := Run(context.Background(), llm, reg, st, Hooks{NopHook{}}, ChatOptions{}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if st.Done {
		t.Errorf("Expected Done=false when stopping at max steps")
	}
	if st.Step != 3 {
		t.Errorf("Expected 3 steps, got %d", st.Step)
	}
}
