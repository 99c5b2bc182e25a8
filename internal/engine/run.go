package engine

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Run executes the ReAct loop until completion, max steps reached, or an
// error occurs. It orchestrates multiple reasoning/acting cycles, handling
// retries internally.
//
// Step counting: Steps increment only on successful completion. Retries are
// tracked separately.
func Run(ctx context.Context, llm LLMClient, reg ToolRegistry, st *State, hooks Hooks, opts ChatOptions) error {
	st.Step = 0

	for st.Step < st.MaxSteps && !st.Done {
		select {
		case <-ctx.Done():
			return fmt.Errorf("execution cancelled: %w", ctx.Err())
		default:
		}

		// stepOnce handles retries internally, so an error here means
		// retries were exhausted or a non-retryable error occurred.
		if err := stepOnce(ctx, llm, reg, st, hooks, opts); err != nil {
			return err
		}
		st.Step++
	}
	if st.Done {
		hooks.OnDone(ctx, st)
	}
	return nil
}

func stepOnce(ctx context.Context, llm LLMClient, reg ToolRegistry, st *State, hooks Hooks, opts ChatOptions) error {
	hooks.OnStepStart(ctx, st)

	msgs := append([]ChatMessage(nil), st.History...)
	retryConfig := getRetryConfig(opts)
	toolSchemas := reg.Schemas()

	hooks.OnBeforeLLM(ctx, st, msgs, toolSchemas)

	resp, err := callLLMWithRetry(ctx, llm, st.Model, msgs, toolSchemas, opts, retryConfig, hooks, st)
	if err != nil {
		return WrapWithContext(err, st, "llm_call", "")
	}

	processLLMResponse(resp, st, hooks, ctx)

	// No tool calls means the model produced its final answer
	if len(resp.ToolCalls) == 0 {
		st.Done = true
		return nil
	}

	if err := executeToolCalls(ctx, resp.ToolCalls, reg, retryConfig, hooks, st); err != nil {
		return WrapWithContext(err, st, "tool_execution", "")
	}

	return nil // next loop iteration continues the ReAct flow
}

// getRetryConfig returns the retry configuration, using defaults if not provided.
func getRetryConfig(opts ChatOptions) *RetryConfig {
	if opts.RetryConfig != nil {
		return opts.RetryConfig
	}
	defaultConfig := DefaultRetryConfig()
	return &defaultConfig
}

// callLLMWithRetry calls the LLM with retry logic and returns the response.
func callLLMWithRetry(ctx context.Context, llm LLMClient, model string, msgs []ChatMessage, schemas []ToolSchema, opts ChatOptions, retryConfig *RetryConfig, hooks Hooks, st *State) (LLMResponse, error) {
	resp, err := RetryLLMCall(
		ctx,
		retryConfig.LLMPolicy,
		llm,
		model,
		msgs,
		schemas,
		opts,
		func(attempt int, delay time.Duration, retryErr error) {
			hooks.OnRetryAttempt(ctx, st, attempt, retryConfig.LLMPolicy.MaxRetries, delay, retryErr)
		},
	)
	if err != nil {
		if IsRetryExhausted(err) {
			hooks.OnRetryExhausted(ctx, st, err)
		}
		return LLMResponse{}, err
	}
	return resp, nil
}

// processLLMResponse updates state, appends to history, and tracks usage.
func processLLMResponse(resp LLMResponse, st *State, hooks Hooks, ctx context.Context) {
	hooks.OnAfterLLM(ctx, st, resp)

	st.Totals.Prompt += resp.Usage.Prompt
	st.Totals.Completion += resp.Usage.Completion
	st.Totals.Total += resp.Usage.Total

	// Always append assistant message with tool calls (if any); providers
	// require tool_calls in assistant messages when reconstructing history.
	assistantMsg := resp.Assistant
	assistantMsg.ToolCalls = resp.ToolCalls
	st.Append(assistantMsg)
	hooks.OnHistoryChanged(ctx, st)
}

// toolResult represents the result of executing a tool call.
type toolResult struct {
	idx     int
	content string
	err     error
	call    ToolCall
}

// executeToolCalls executes tool calls concurrently and appends results to
// history in call order.
func executeToolCalls(ctx context.Context, calls []ToolCall, reg ToolRegistry, retryConfig *RetryConfig, hooks Hooks, st *State) error {
	if len(calls) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	results := make([]toolResult, len(calls))

	for i, call := range calls {
		wg.Add(1)
		go func(i int, c ToolCall) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[i] = toolResult{idx: i, err: ctx.Err(), call: c}
				return
			default:
			}

			hooks.OnToolCall(ctx, st, c)

			res, err := RetryToolCall(
				ctx,
				retryConfig.ToolPolicy,
				c,
				reg,
				func(attempt int, delay time.Duration, retryErr error) {
					hooks.OnRetryAttempt(ctx, st, attempt, retryConfig.ToolPolicy.MaxRetries, delay, retryErr)
				},
			)
			if IsRetryExhausted(err) {
				hooks.OnRetryExhausted(ctx, st, err)
			}
			results[i] = toolResult{idx: i, content: res, err: err, call: c}
		}(i, call)
	}

	wg.Wait()

	// Append tool results in order. Use tool call ID (not name) so
	// providers can match tool messages to tool calls.
	for _, o := range results {
		if o.err != nil {
			o.content = "ERROR: " + o.err.Error()
		}
		toolCallID := o.call.ID
		if toolCallID == "" {
			toolCallID = o.call.Name
		}
		st.Append(ChatMessage{Role: RoleTool, Name: toolCallID, Content: o.content})
		hooks.OnToolResult(ctx, st, o.call, o.content, o.err)
	}
	hooks.OnHistoryChanged(ctx, st)

	return nil
}

func executeTool(ctx context.Context, call ToolCall, reg ToolRegistry) (string, error) {
	t, ok := reg[call.Name]
	if !ok {
		return "", fmt.Errorf("tool not found: %s (available tools: %v)", call.Name, getToolNames(reg))
	}

	if err := t.ValidateArgs(call.Args); err != nil {
		return "", fmt.Errorf("validation failed for tool %s: %w", call.Name, err)
	}

	result, err := t.Fn(ctx, call.Args)
	if err != nil {
		return "", fmt.Errorf("execution failed for tool %s: %w", call.Name, err)
	}

	return result, nil
}

// getToolNames returns a list of available tool names for error messages.
func getToolNames(reg ToolRegistry) []string {
	names := make([]string, 0, len(reg))
	for name := range reg {
		names = append(names, name)
	}
	return names
}
